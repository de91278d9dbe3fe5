// Package gqlerror defines the error values reported while reading GraphQL
// documents and renders them with source context.
package gqlerror

import (
	"errors"

	"github.com/gqllex/gqllex/internal/source"
)

// GraphQLError describes a problem at one or more byte positions of a Source.
type GraphQLError struct {
	Message       string
	Source        *source.Source
	Positions     []int
	Locations     []source.Location
	OriginalError error
}

// New builds an error and resolves its locations when both a source and
// positions are present.
func New(message string, src *source.Source, positions ...int) *GraphQLError {
	e := &GraphQLError{
		Message:   message,
		Source:    src,
		Positions: positions,
	}
	if src != nil && len(positions) > 0 {
		e.Locations = make([]source.Location, len(positions))
		for i, pos := range positions {
			e.Locations[i] = src.Location(pos)
		}
	}
	return e
}

func (e *GraphQLError) Error() string { return e.Message }
func (e *GraphQLError) Unwrap() error { return e.OriginalError }

// SyntaxError is a lexical or grammatical malformation in a document.
type SyntaxError struct {
	GraphQLError
	Description string
}

const syntaxPrefix = "Syntax Error: "

func NewSyntaxError(src *source.Source, position int, description string) *SyntaxError {
	return &SyntaxError{
		GraphQLError: *New(syntaxPrefix+description, src, position),
		Description:  description,
	}
}

// Location returns the first resolved location, or the zero Location.
func (e *SyntaxError) Location() source.Location {
	if len(e.Locations) == 0 {
		return source.Location{}
	}
	return e.Locations[0]
}

// As extracts the GraphQLError carried by err, if any.
func As(err error) (*GraphQLError, bool) {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return &syntaxErr.GraphQLError, true
	}
	var gqlErr *GraphQLError
	if errors.As(err, &gqlErr) {
		return gqlErr, true
	}
	return nil, false
}

// FormattedError is the JSON shape of an error in a GraphQL response.
type FormattedError struct {
	Message   string            `json:"message"`
	Locations []source.Location `json:"locations,omitempty"`
}

func (e *GraphQLError) Format() FormattedError {
	return FormattedError{Message: e.Message, Locations: e.Locations}
}

// Format converts any error into its response shape. Errors that carry no
// GraphQL context keep only their message.
func Format(err error) FormattedError {
	if gqlErr, ok := As(err); ok {
		return gqlErr.Format()
	}
	return FormattedError{Message: err.Error()}
}
