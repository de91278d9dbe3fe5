package language

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// readString reads a single-line "..." literal and decodes its escapes.
func (l *Lexer) readString(start, line, col int) (*Token, error) {
	body := l.body
	pos := start + 1
	chunkStart := pos
	var value strings.Builder

	for pos < len(body) {
		c := body[pos]
		if c == '\n' || c == '\r' {
			break
		}
		if c == '"' {
			value.WriteString(body[chunkStart:pos])
			return &Token{Kind: TokenString, Start: start, End: pos + 1, Line: line, Column: col, Value: value.String()}, nil
		}
		if c < 0x20 && c != '\t' {
			return nil, l.syntaxError(pos, fmt.Sprintf("Invalid character within String: %s.", printCharAt(body, pos)))
		}
		if c == '\\' {
			value.WriteString(body[chunkStart:pos])
			r, size, err := l.readEscape(pos)
			if err != nil {
				return nil, err
			}
			value.WriteRune(r)
			pos += size
			chunkStart = pos
			continue
		}
		pos++
	}

	return nil, l.syntaxError(pos, "Unterminated string.")
}

// readEscape decodes the escape sequence whose backslash is at pos and
// returns the decoded rune and the number of bytes consumed. Errors point at
// the character following the backslash.
func (l *Lexer) readEscape(pos int) (rune, int, error) {
	switch l.byteAt(pos + 1) {
	case '"':
		return '"', 2, nil
	case '/':
		return '/', 2, nil
	case '\\':
		return '\\', 2, nil
	case 'b':
		return '\b', 2, nil
	case 'f':
		return '\f', 2, nil
	case 'n':
		return '\n', 2, nil
	case 'r':
		return '\r', 2, nil
	case 't':
		return '\t', 2, nil
	case 'u':
		return l.readUnicodeEscape(pos)
	}

	end := pos + 1
	if end < len(l.body) {
		_, size := utf8.DecodeRuneInString(l.body[end:])
		end += size
	}
	return 0, 0, l.syntaxError(pos+1, fmt.Sprintf("Invalid character escape sequence: '%s'.", l.body[pos:end]))
}

// readUnicodeEscape decodes \uXXXX, joining a UTF-16 surrogate pair written
// as two consecutive escapes into one code point.
func (l *Lexer) readUnicodeEscape(pos int) (rune, int, error) {
	body := l.body

	code, ok := readHex4(body, pos+2)
	if !ok {
		end := min(pos+6, len(body))
		return 0, 0, l.syntaxError(pos+1, fmt.Sprintf("Invalid character escape sequence: '%s'.", body[pos:end]))
	}

	r := rune(code)
	if !utf16.IsSurrogate(r) {
		return r, 6, nil
	}
	if r < 0xDC00 && strings.HasPrefix(body[pos+6:], `\u`) {
		if low, ok := readHex4(body, pos+8); ok {
			if pair := utf16.DecodeRune(r, rune(low)); pair != utf8.RuneError {
				return pair, 12, nil
			}
		}
	}
	return 0, 0, l.syntaxError(pos+1, fmt.Sprintf("Invalid Unicode escape sequence: '%s'.", body[pos:pos+6]))
}

func readHex4(body string, pos int) (int, bool) {
	if pos+4 > len(body) {
		return 0, false
	}
	code := 0
	for i := pos; i < pos+4; i++ {
		d, ok := hexValue(body[i])
		if !ok {
			return 0, false
		}
		code = code<<4 | d
	}
	return code, true
}

func hexValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	}
	return 0, false
}

// readBlockString reads a """...""" literal. Line breaks inside it advance
// the lexer's line counter and are normalized to '\n' before dedenting.
func (l *Lexer) readBlockString(start, line, col int) (*Token, error) {
	body := l.body
	pos := start + 3
	chunkStart := pos
	var raw strings.Builder

	for pos < len(body) {
		c := body[pos]
		switch {
		case c == '"' && strings.HasPrefix(body[pos:], `"""`):
			raw.WriteString(body[chunkStart:pos])
			return &Token{
				Kind:   TokenBlockString,
				Start:  start,
				End:    pos + 3,
				Line:   line,
				Column: col,
				Value:  BlockStringValue(raw.String()),
			}, nil
		case c == '\\' && strings.HasPrefix(body[pos+1:], `"""`):
			raw.WriteString(body[chunkStart:pos])
			raw.WriteString(`"""`)
			pos += 4
			chunkStart = pos
		case c == '\n':
			pos++
			l.newLine(pos)
		case c == '\r':
			raw.WriteString(body[chunkStart:pos])
			raw.WriteByte('\n')
			if l.byteAt(pos+1) == '\n' {
				pos += 2
			} else {
				pos++
			}
			chunkStart = pos
			l.newLine(pos)
		case c < 0x20 && c != '\t':
			return nil, l.syntaxError(pos, fmt.Sprintf("Invalid character within String: %s.", printCharAt(body, pos)))
		default:
			pos++
		}
	}

	return nil, l.syntaxError(pos, "Unterminated string.")
}
