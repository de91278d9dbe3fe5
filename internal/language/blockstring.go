package language

import "strings"

// BlockStringValue computes the value of a block string from its raw
// content: surrounding blank lines are dropped and the indentation common
// to the remaining lines is removed.
func BlockStringValue(raw string) string {
	return strings.Join(DedentBlockStringLines(strings.Split(raw, "\n")), "\n")
}

// DedentBlockStringLines applies block string dedenting to lines. The
// first line only counts toward the common indentation when leading blank
// lines were removed before it. lines is not modified.
func DedentBlockStringLines(lines []string) []string {
	leadingRemoved := false
	for len(lines) > 0 && isBlankLine(lines[0]) {
		lines = lines[1:]
		leadingRemoved = true
	}
	for len(lines) > 0 && isBlankLine(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}

	first := 1
	if leadingRemoved {
		first = 0
	}

	commonIndent := -1
	for i := first; i < len(lines); i++ {
		if isBlankLine(lines[i]) {
			continue
		}
		indent := leadingWhitespace(lines[i])
		if commonIndent < 0 || indent < commonIndent {
			commonIndent = indent
			if commonIndent == 0 {
				break
			}
		}
	}

	out := make([]string, len(lines))
	copy(out, lines)
	if commonIndent > 0 {
		for i := first; i < len(out); i++ {
			out[i] = out[i][min(commonIndent, len(out[i])):]
		}
	}
	return out
}

func isBlankLine(line string) bool {
	return leadingWhitespace(line) == len(line)
}

func leadingWhitespace(line string) int {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}
