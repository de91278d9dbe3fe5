// Package highlight renders GraphQL documents with terminal colors chosen
// per token class.
package highlight

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gqllex/gqllex/internal/language"
	"github.com/gqllex/gqllex/internal/source"
)

type Class int

const (
	ClassPlain Class = iota
	ClassPunctuation
	ClassKeyword
	ClassName
	ClassVariable
	ClassDirective
	ClassNumber
	ClassString
	ClassComment
)

var keywords = map[string]bool{
	"query": true, "mutation": true, "subscription": true, "fragment": true, "on": true,
	"schema": true, "scalar": true, "type": true, "interface": true, "union": true,
	"enum": true, "input": true, "directive": true, "extend": true, "implements": true,
	"repeatable": true, "true": true, "false": true, "null": true,
}

// ClassOf classifies tok. prev is the token scanned before it, which decides
// whether a name is a variable ($id) or a directive (@skip).
func ClassOf(tok, prev *language.Token) Class {
	switch tok.Kind {
	case language.TokenName:
		if prev != nil && prev.End == tok.Start {
			switch prev.Kind {
			case language.TokenDollar:
				return ClassVariable
			case language.TokenAt:
				return ClassDirective
			}
		}
		if keywords[tok.Value] {
			return ClassKeyword
		}
		return ClassName
	case language.TokenDollar:
		return ClassVariable
	case language.TokenAt:
		return ClassDirective
	case language.TokenInt, language.TokenFloat:
		return ClassNumber
	case language.TokenString, language.TokenBlockString:
		return ClassString
	case language.TokenComment:
		return ClassComment
	}
	if tok.Kind.IsPunctuator() {
		return ClassPunctuation
	}
	return ClassPlain
}

type Theme map[Class]lipgloss.Style

func DefaultTheme() Theme {
	return Theme{
		ClassPunctuation: lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")),
		ClassKeyword:     lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true),
		ClassName:        lipgloss.NewStyle().Foreground(lipgloss.Color("#E2E8F0")),
		ClassVariable:    lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
		ClassDirective:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		ClassNumber:      lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
		ClassString:      lipgloss.NewStyle().Foreground(lipgloss.Color("#84CC16")),
		ClassComment:     lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B")).Italic(true),
	}
}

type Highlighter struct {
	theme Theme
}

func New(theme Theme) *Highlighter {
	styled := make(Theme, len(theme))
	for class, style := range theme {
		styled[class] = style.TabWidth(lipgloss.NoTabConversion)
	}
	return &Highlighter{theme: styled}
}

// Highlight renders src with every token styled by its class. Text between
// tokens is copied unchanged. It fails with the lexer's error when src is
// not lexically valid.
func (h *Highlighter) Highlight(src *source.Source) (string, error) {
	lexer := language.NewLexer(src)
	for {
		tok, err := lexer.Advance()
		if err != nil {
			return "", err
		}
		if tok.Kind == language.TokenEOF {
			break
		}
	}

	body := src.Body
	var b strings.Builder
	pos := 0
	for _, tok := range lexer.Tokens() {
		if tok.Kind == language.TokenSOF || tok.Kind == language.TokenEOF {
			continue
		}
		b.WriteString(body[pos:tok.Start])
		b.WriteString(h.render(ClassOf(tok, lexer.Prev(tok)), body[tok.Start:tok.End]))
		pos = tok.End
	}
	b.WriteString(body[pos:])
	return b.String(), nil
}

// render styles text one line at a time so multi-line block strings keep
// their own layout.
func (h *Highlighter) render(class Class, text string) string {
	style, ok := h.theme[class]
	if !ok {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
