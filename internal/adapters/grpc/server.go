package grpc

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gqllex/gqllex/internal/domain"
	"github.com/gqllex/gqllex/internal/engine"
	"github.com/gqllex/gqllex/internal/gqlerror"
	"github.com/gqllex/gqllex/internal/protocol"
	"github.com/gqllex/gqllex/internal/source"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type lexRequest struct {
	Body         string `json:"body"`
	Name         string `json:"name,omitempty"`
	LineOffset   int    `json:"line_offset,omitempty"`
	ColumnOffset int    `json:"column_offset,omitempty"`
}

type lexResponse struct {
	Key    string                   `json:"key"`
	Name   string                   `json:"name"`
	Tokens []protocol.TokenRecord   `json:"tokens"`
	Error  *gqlerror.FormattedError `json:"error,omitempty"`
	Cached bool                     `json:"cached"`
}

type LexServer struct {
	engine *engine.Engine
}

func NewLexServer(eng *engine.Engine) *LexServer {
	return &LexServer{engine: eng}
}

func (s *LexServer) Lex(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in lexRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "decoding request: %v", err)
	}

	result, err := s.engine.Lex(ctx, domain.Document{
		Name:         in.Name,
		Body:         in.Body,
		LineOffset:   in.LineOffset,
		ColumnOffset: in.ColumnOffset,
	})
	if err != nil {
		var cfgErr *source.ConfigError
		switch {
		case errors.As(err, &cfgErr):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, status.FromContextError(err).Err()
		}
		log.Printf("lex %s: %v", in.Name, err)
		return nil, status.Errorf(codes.Internal, "lexing: %v", err)
	}

	log.Printf("lex %s: %d tokens, cached=%t", result.Name, len(result.Tokens), result.Cached)

	resp, err := toStruct(lexResponse{
		Key:    result.Key,
		Name:   result.Name,
		Tokens: result.Tokens,
		Error:  result.Err,
		Cached: result.Cached,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding response: %v", err)
	}
	return resp, nil
}

// LexDocument sends doc to the server and decodes the reply.
func (c *LexerClient) LexDocument(ctx context.Context, doc domain.Document, opts ...grpc.CallOption) (*domain.Result, error) {
	req, err := toStruct(lexRequest{
		Body:         doc.Body,
		Name:         doc.Name,
		LineOffset:   doc.LineOffset,
		ColumnOffset: doc.ColumnOffset,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	resp, err := c.Lex(ctx, req, opts...)
	if err != nil {
		return nil, err
	}

	var out lexResponse
	if err := fromStruct(resp, &out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &domain.Result{
		Key:      out.Key,
		Name:     out.Name,
		BodySize: len(doc.Body),
		Tokens:   out.Tokens,
		Err:      out.Error,
		Cached:   out.Cached,
	}, nil
}
