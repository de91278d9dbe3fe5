package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gqllex/gqllex/internal/gqlerror"
	"github.com/gqllex/gqllex/internal/language"
)

type MessageType string

const (
	MsgToken MessageType = "token"
	MsgError MessageType = "error"
	MsgDone  MessageType = "done"
)

// TokenRecord is the wire form of a language.Token.
type TokenRecord struct {
	Kind   string  `json:"kind"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
	Line   int     `json:"line"`
	Column int     `json:"column"`
	Value  *string `json:"value,omitempty"`
}

func NewTokenRecord(tok *language.Token) TokenRecord {
	rec := TokenRecord{
		Kind:   tok.Kind.String(),
		Start:  tok.Start,
		End:    tok.End,
		Line:   tok.Line,
		Column: tok.Column,
	}
	if tok.Kind.HasValue() {
		v := tok.Value
		rec.Value = &v
	}
	return rec
}

func NewTokenRecords(tokens []*language.Token) []TokenRecord {
	records := make([]TokenRecord, len(tokens))
	for i, tok := range tokens {
		records[i] = NewTokenRecord(tok)
	}
	return records
}

type Message struct {
	Type     MessageType              `json:"type"`
	Document string                   `json:"document,omitempty"`
	Token    *TokenRecord             `json:"token,omitempty"`
	Error    *gqlerror.FormattedError `json:"error,omitempty"`
	Count    int                      `json:"count,omitempty"`
}

// TokenWriter emits one JSON message per line.
type TokenWriter struct {
	w   io.Writer
	enc *json.Encoder
}

func NewTokenWriter(w io.Writer) *TokenWriter {
	return &TokenWriter{w: w, enc: json.NewEncoder(w)}
}

func (s *TokenWriter) Token(document string, rec TokenRecord) error {
	return s.write(Message{Type: MsgToken, Document: document, Token: &rec})
}

func (s *TokenWriter) Error(document string, err gqlerror.FormattedError) error {
	return s.write(Message{Type: MsgError, Document: document, Error: &err})
}

func (s *TokenWriter) Done(document string, count int) error {
	return s.write(Message{Type: MsgDone, Document: document, Count: count})
}

func (s *TokenWriter) write(msg Message) error {
	return s.enc.Encode(msg)
}

func ParseStream(data []byte) ([]Message, error) {
	var msgs []Message
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		var msg Message
		if err := dec.Decode(&msg); err != nil {
			return msgs, fmt.Errorf("failed to decode token message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}
