package language

import "strconv"

type TokenKind int

const (
	TokenSOF TokenKind = iota
	TokenEOF
	TokenBang
	TokenDollar
	TokenAmp
	TokenParenL
	TokenParenR
	TokenSpread
	TokenColon
	TokenEquals
	TokenAt
	TokenBracketL
	TokenBracketR
	TokenBraceL
	TokenPipe
	TokenBraceR
	TokenName
	TokenInt
	TokenFloat
	TokenString
	TokenBlockString
	TokenComment
)

func (k TokenKind) String() string {
	switch k {
	case TokenSOF:
		return "<SOF>"
	case TokenEOF:
		return "<EOF>"
	case TokenBang:
		return "!"
	case TokenDollar:
		return "$"
	case TokenAmp:
		return "&"
	case TokenParenL:
		return "("
	case TokenParenR:
		return ")"
	case TokenSpread:
		return "..."
	case TokenColon:
		return ":"
	case TokenEquals:
		return "="
	case TokenAt:
		return "@"
	case TokenBracketL:
		return "["
	case TokenBracketR:
		return "]"
	case TokenBraceL:
		return "{"
	case TokenPipe:
		return "|"
	case TokenBraceR:
		return "}"
	case TokenName:
		return "Name"
	case TokenInt:
		return "Int"
	case TokenFloat:
		return "Float"
	case TokenString:
		return "String"
	case TokenBlockString:
		return "BlockString"
	case TokenComment:
		return "Comment"
	default:
		return "UNKNOWN"
	}
}

// IsPunctuator reports whether k is one of the fixed punctuation marks.
func (k TokenKind) IsPunctuator() bool {
	return k >= TokenBang && k <= TokenBraceR
}

// HasValue reports whether tokens of kind k carry a text value.
func (k TokenKind) HasValue() bool {
	return k >= TokenName
}

var punctuators = map[byte]TokenKind{
	'!': TokenBang,
	'$': TokenDollar,
	'&': TokenAmp,
	'(': TokenParenL,
	')': TokenParenR,
	':': TokenColon,
	'=': TokenEquals,
	'@': TokenAt,
	'[': TokenBracketL,
	']': TokenBracketR,
	'{': TokenBraceL,
	'|': TokenPipe,
	'}': TokenBraceR,
}

// Token is one lexical unit. Start and End are byte offsets of the half-open
// range [Start, End); Line and Column locate Start. Index is the token's slot
// in the owning Lexer's chain.
type Token struct {
	Kind   TokenKind
	Start  int
	End    int
	Line   int
	Column int
	Value  string
	Index  int
}

// Desc describes the token for diagnostics, e.g. `Name "foo"` or `"{"`.
func (t *Token) Desc() string {
	if t.Kind.HasValue() {
		return t.Kind.String() + " " + strconv.Quote(t.Value)
	}
	if t.Kind.IsPunctuator() {
		return strconv.Quote(t.Kind.String())
	}
	return t.Kind.String()
}
