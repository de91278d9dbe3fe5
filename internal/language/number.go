package language

import "fmt"

// readNumber reads an Int or Float literal:
//
//	-? (0 | [1-9][0-9]*) (\.[0-9]+)? ([eE][+-]?[0-9]+)?
//
// A literal immediately followed by '.' or a name start is rejected, so
// "1.2.3" and "123abc" fail instead of splitting into several tokens.
func (l *Lexer) readNumber(start, line, col int) (*Token, error) {
	body := l.body
	pos := start
	isFloat := false

	if l.byteAt(pos) == '-' {
		pos++
	}

	if l.byteAt(pos) == '0' {
		pos++
		if isDigit(l.byteAt(pos)) {
			return nil, l.syntaxError(pos, fmt.Sprintf("Invalid number, unexpected digit after 0: %s.", printCharAt(body, pos)))
		}
	} else {
		var err error
		if pos, err = l.readDigits(pos); err != nil {
			return nil, err
		}
	}

	if l.byteAt(pos) == '.' {
		isFloat = true
		var err error
		if pos, err = l.readDigits(pos + 1); err != nil {
			return nil, err
		}
	}

	if c := l.byteAt(pos); c == 'e' || c == 'E' {
		isFloat = true
		pos++
		if c := l.byteAt(pos); c == '+' || c == '-' {
			pos++
		}
		var err error
		if pos, err = l.readDigits(pos); err != nil {
			return nil, err
		}
	}

	if c := l.byteAt(pos); c == '.' || isNameStart(c) {
		return nil, l.syntaxError(pos, fmt.Sprintf("Invalid number, expected digit but got: %s.", printCharAt(body, pos)))
	}

	kind := TokenInt
	if isFloat {
		kind = TokenFloat
	}
	return &Token{Kind: kind, Start: start, End: pos, Line: line, Column: col, Value: body[start:pos]}, nil
}

// readDigits consumes one or more digits starting at pos and returns the
// position after the last one.
func (l *Lexer) readDigits(pos int) (int, error) {
	if !isDigit(l.byteAt(pos)) {
		return pos, l.syntaxError(pos, fmt.Sprintf("Invalid number, expected digit but got: %s.", printCharAt(l.body, pos)))
	}
	for isDigit(l.byteAt(pos)) {
		pos++
	}
	return pos, nil
}

// byteAt returns the byte at pos, or 0 past the end of the body.
func (l *Lexer) byteAt(pos int) byte {
	if pos >= len(l.body) {
		return 0
	}
	return l.body[pos]
}
