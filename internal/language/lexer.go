// Package language turns GraphQL source text into a stream of tokens.
package language

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gqllex/gqllex/internal/gqlerror"
	"github.com/gqllex/gqllex/internal/source"
)

const byteOrderMark = "\uFEFF"

// Lexer reads tokens from a Source on demand. Every token it produces stays
// in an append-only chain, so tokens already handed out remain valid and are
// never rescanned. A Lexer must not be used from more than one goroutine.
type Lexer struct {
	source *source.Source
	body   string
	tokens []*Token

	token     *Token
	lastToken *Token

	line      int
	lineStart int

	err error
}

func NewLexer(src *source.Source) *Lexer {
	sof := &Token{Kind: TokenSOF, Line: 1, Column: 1}
	return &Lexer{
		source:    src,
		body:      src.Body,
		tokens:    []*Token{sof},
		token:     sof,
		lastToken: sof,
		line:      1,
	}
}

func (l *Lexer) Source() *source.Source { return l.source }

// Token returns the current token, the SOF token before the first Advance.
func (l *Lexer) Token() *Token { return l.token }

// LastToken returns the token that was current before the last Advance.
func (l *Lexer) LastToken() *Token { return l.lastToken }

// Advance moves to the next non-comment token and returns it.
func (l *Lexer) Advance() (*Token, error) {
	tok, err := l.Lookahead()
	if err != nil {
		return nil, err
	}
	l.lastToken = l.token
	l.token = tok
	return tok, nil
}

// Lookahead returns the next non-comment token without moving the current
// token. Once EOF is current it keeps returning that EOF token.
func (l *Lexer) Lookahead() (*Token, error) {
	tok := l.token
	if tok.Kind == TokenEOF {
		return tok, nil
	}
	for {
		next, err := l.next(tok)
		if err != nil {
			return nil, err
		}
		tok = next
		if tok.Kind != TokenComment {
			return tok, nil
		}
	}
}

// Prev returns the token scanned before t, or nil for the SOF token.
func (l *Lexer) Prev(t *Token) *Token {
	if t.Index <= 0 {
		return nil
	}
	return l.tokens[t.Index-1]
}

// Next returns the token scanned after t, or nil if it has not been read yet.
func (l *Lexer) Next(t *Token) *Token {
	if t.Index+1 >= len(l.tokens) {
		return nil
	}
	return l.tokens[t.Index+1]
}

// Tokens returns every token read so far, SOF and comments included.
func (l *Lexer) Tokens() []*Token {
	out := make([]*Token, len(l.tokens))
	copy(out, l.tokens)
	return out
}

// next resolves the token following tok, reading it from the body at most
// once. A failed read is remembered and returned by every later call.
func (l *Lexer) next(tok *Token) (*Token, error) {
	if tok.Index+1 < len(l.tokens) {
		return l.tokens[tok.Index+1], nil
	}
	if tok.Kind == TokenEOF {
		return tok, nil
	}
	if l.err != nil {
		return nil, l.err
	}

	read, err := l.readToken(tok)
	if err != nil {
		l.err = err
		return nil, err
	}
	read.Index = len(l.tokens)
	l.tokens = append(l.tokens, read)
	return read, nil
}

func (l *Lexer) readToken(prev *Token) (*Token, error) {
	body := l.body

	pos := l.positionAfterWhitespace(prev.End)
	line := l.line
	col := 1 + pos - l.lineStart

	if pos >= len(body) {
		return &Token{Kind: TokenEOF, Start: len(body), End: len(body), Line: line, Column: col}, nil
	}

	c := body[pos]
	if kind, ok := punctuators[c]; ok {
		return &Token{Kind: kind, Start: pos, End: pos + 1, Line: line, Column: col}, nil
	}

	switch {
	case c == '#':
		return l.readComment(pos, line, col), nil
	case c == '.':
		if strings.HasPrefix(body[pos:], "...") {
			return &Token{Kind: TokenSpread, Start: pos, End: pos + 3, Line: line, Column: col}, nil
		}
	case isNameStart(c):
		return l.readName(pos, line, col), nil
	case isDigit(c) || c == '-':
		return l.readNumber(pos, line, col)
	case c == '"':
		if strings.HasPrefix(body[pos:], `"""`) {
			return l.readBlockString(pos, line, col)
		}
		return l.readString(pos, line, col)
	}

	return nil, l.syntaxError(pos, unexpectedCharacterMessage(body, pos))
}

// positionAfterWhitespace skips ignored input from start, counting line
// breaks as it goes. "\r\n" is a single line break.
func (l *Lexer) positionAfterWhitespace(start int) int {
	body := l.body
	pos := start
	for pos < len(body) {
		switch c := body[pos]; {
		case c == ' ' || c == '\t' || c == ',':
			pos++
		case c == '\n':
			pos++
			l.newLine(pos)
		case c == '\r':
			if pos+1 < len(body) && body[pos+1] == '\n' {
				pos += 2
			} else {
				pos++
			}
			l.newLine(pos)
		case strings.HasPrefix(body[pos:], byteOrderMark):
			pos += len(byteOrderMark)
		default:
			return pos
		}
	}
	return pos
}

func (l *Lexer) newLine(lineStart int) {
	l.line++
	l.lineStart = lineStart
}

// readComment reads from '#' up to the next control character other than tab.
func (l *Lexer) readComment(start, line, col int) *Token {
	body := l.body
	pos := start + 1
	for pos < len(body) {
		c := body[pos]
		if c < 0x20 && c != '\t' {
			break
		}
		pos++
	}
	return &Token{Kind: TokenComment, Start: start, End: pos, Line: line, Column: col, Value: body[start+1 : pos]}
}

func (l *Lexer) readName(start, line, col int) *Token {
	body := l.body
	pos := start + 1
	for pos < len(body) && isNameContinue(body[pos]) {
		pos++
	}
	return &Token{Kind: TokenName, Start: start, End: pos, Line: line, Column: col, Value: body[start:pos]}
}

func (l *Lexer) syntaxError(pos int, description string) error {
	return gqlerror.NewSyntaxError(l.source, pos, description)
}

func unexpectedCharacterMessage(body string, pos int) string {
	r, size := utf8.DecodeRuneInString(body[pos:])
	switch {
	case r == utf8.RuneError && size == 1:
		return fmt.Sprintf("Cannot parse the unexpected character %s.", printCharAt(body, pos))
	case r < 0x20 && r != '\t' && r != '\n' && r != '\r':
		return fmt.Sprintf("Cannot contain the invalid character %s.", printCharAt(body, pos))
	case r == '\'':
		return `Unexpected single quote character ('), did you mean to use a double quote (")?`
	}
	return fmt.Sprintf("Cannot parse the unexpected character %s.", string(r))
}

// printCharAt quotes the character at pos for an error message.
func printCharAt(body string, pos int) string {
	if pos >= len(body) {
		return "<EOF>"
	}
	r, size := utf8.DecodeRuneInString(body[pos:])
	switch {
	case r == utf8.RuneError && size == 1:
		return fmt.Sprintf(`'\x%02x'`, body[pos])
	case r < 0x20 || r == 0x7f:
		return fmt.Sprintf(`'\x%02x'`, r)
	case r == '\'':
		return `"'"`
	}
	return "'" + string(r) + "'"
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isNameContinue(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

// Tokenize reads src to the end and returns its non-comment tokens, ending
// with EOF.
func Tokenize(src *source.Source) ([]*Token, error) {
	lexer := NewLexer(src)
	var tokens []*Token
	for {
		tok, err := lexer.Advance()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}
