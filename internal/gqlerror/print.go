package gqlerror

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gqllex/gqllex/internal/source"
)

// Print renders err followed by an annotated excerpt of the source for each
// of its locations:
//
//	Syntax Error: Unterminated string.
//
//	GraphQL request:1:14
//	1 | "no end quote
//	  |              ^
func Print(err error) string {
	gqlErr, ok := As(err)
	if !ok {
		return err.Error()
	}

	var b strings.Builder
	b.WriteString(gqlErr.Message)
	if gqlErr.Source != nil {
		for _, loc := range gqlErr.Locations {
			b.WriteString("\n\n")
			b.WriteString(PrintLocation(gqlErr.Source, loc))
		}
	}
	return b.String()
}

// PrintLocation renders loc within src, shifted by the source's location
// offset so fragments report coordinates of the enclosing document.
func PrintLocation(src *source.Source, loc source.Location) string {
	firstLineColumnOffset := src.LocationOffset.Column - 1
	body := strings.Repeat(" ", firstLineColumnOffset) + src.Body

	lineIndex := loc.Line - 1
	lineNum := loc.Line + src.LocationOffset.Line - 1

	columnOffset := 0
	if loc.Line == 1 {
		columnOffset = firstLineColumnOffset
	}
	columnNum := loc.Column + columnOffset

	lines := strings.Split(body, "\n")
	lineAt := func(i int) (string, bool) {
		if i < 0 || i >= len(lines) {
			return "", false
		}
		return strings.TrimRight(lines[i], "\r"), true
	}

	var rows []prefixedLine
	if prev, ok := lineAt(lineIndex - 1); ok {
		rows = append(rows, prefixedLine{strconv.Itoa(lineNum-1) + " |", prev})
	}
	current, _ := lineAt(lineIndex)
	rows = append(rows,
		prefixedLine{strconv.Itoa(lineNum) + " |", current},
		prefixedLine{"|", strings.Repeat(" ", max(columnNum-1, 0)) + "^"},
	)
	if next, ok := lineAt(lineIndex + 1); ok {
		rows = append(rows, prefixedLine{strconv.Itoa(lineNum+1) + " |", next})
	}

	return fmt.Sprintf("%s:%d:%d\n", src.Name, lineNum, columnNum) + printPrefixedLines(rows)
}

type prefixedLine struct {
	prefix string
	line   string
}

func printPrefixedLines(rows []prefixedLine) string {
	width := 0
	for _, r := range rows {
		width = max(width, len(r.prefix))
	}

	out := make([]string, len(rows))
	for i, r := range rows {
		s := strings.Repeat(" ", width-len(r.prefix)) + r.prefix
		if r.line != "" {
			s += " " + r.line
		}
		out[i] = s
	}
	return strings.Join(out, "\n")
}
