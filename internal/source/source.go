// Package source holds GraphQL source text and maps byte offsets to
// human-readable line/column coordinates.
package source

import (
	"fmt"
	"strings"
)

// DefaultName is the display name used when none is supplied.
const DefaultName = "GraphQL request"

// Location is a 1-indexed line/column pair.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// ConfigError reports an invalid Source construction.
type ConfigError struct {
	Field string
	Value int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s in locationOffset is 1-indexed and must be positive, got %d", e.Field, e.Value)
}

// Source is an immutable in-memory GraphQL document.
type Source struct {
	Body           string
	Name           string
	LocationOffset Location
}

type Option func(*Source)

// WithName sets the display name reported in errors.
func WithName(name string) Option {
	return func(s *Source) { s.Name = name }
}

// WithLocationOffset marks the body as a fragment starting at line/column
// of an enclosing document.
func WithLocationOffset(line, column int) Option {
	return func(s *Source) { s.LocationOffset = Location{Line: line, Column: column} }
}

func New(body string, opts ...Option) (*Source, error) {
	s := &Source{
		Body:           body,
		Name:           DefaultName,
		LocationOffset: Location{Line: 1, Column: 1},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.LocationOffset.Line <= 0 {
		return nil, &ConfigError{Field: "line", Value: s.LocationOffset.Line}
	}
	if s.LocationOffset.Column <= 0 {
		return nil, &ConfigError{Field: "column", Value: s.LocationOffset.Column}
	}
	return s, nil
}

// MustNew is New for bodies built from constants; it panics on bad offsets.
func MustNew(body string, opts ...Option) *Source {
	s, err := New(body, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Location converts a byte offset into a line/column pair counted from the
// start of Body. Only '\n' terminates a line here.
func (s *Source) Location(position int) Location {
	if position < 0 {
		position = 0
	}
	if position > len(s.Body) {
		position = len(s.Body)
	}
	prefix := s.Body[:position]
	line := 1 + strings.Count(prefix, "\n")
	column := position - strings.LastIndexByte(prefix, '\n')
	return Location{Line: line, Column: column}
}

// Lines returns the body split on '\n'.
func (s *Source) Lines() []string {
	return strings.Split(s.Body, "\n")
}
