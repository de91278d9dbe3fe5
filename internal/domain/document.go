package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gqllex/gqllex/internal/gqlerror"
	"github.com/gqllex/gqllex/internal/protocol"
	"github.com/gqllex/gqllex/internal/source"
)

// Document is a GraphQL text submitted for lexing.
type Document struct {
	Name         string
	Body         string
	LineOffset   int
	ColumnOffset int
}

func (d Document) name() string {
	if d.Name == "" {
		return source.DefaultName
	}
	return d.Name
}

func (d Document) offsets() (int, int) {
	line, column := d.LineOffset, d.ColumnOffset
	if line == 0 {
		line = 1
	}
	if column == 0 {
		column = 1
	}
	return line, column
}

// Source builds the source.Source for d. Zero offsets mean (1, 1).
func (d Document) Source() (*source.Source, error) {
	line, column := d.offsets()
	return source.New(d.Body, source.WithName(d.name()), source.WithLocationOffset(line, column))
}

// Key identifies the lexing outcome of d. Name and offsets take part because
// they appear in the reported error locations and messages.
func (d Document) Key() string {
	line, column := d.offsets()
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%d\x00%d\x00", d.name(), line, column)
	h.Write([]byte(d.Body))
	return hex.EncodeToString(h.Sum(nil))
}

// Result is the outcome of lexing a Document. Exactly one of Tokens and
// Err describes it: a syntax error leaves Tokens empty.
type Result struct {
	Key       string
	Name      string
	BodySize  int
	Tokens    []protocol.TokenRecord
	Err       *gqlerror.FormattedError
	CreatedAt time.Time
	Cached    bool
}

func (r *Result) OK() bool {
	return r.Err == nil
}
