package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gqllex/gqllex/internal/domain"
	"github.com/gqllex/gqllex/internal/gqlerror"
	"github.com/gqllex/gqllex/internal/language"
	"github.com/gqllex/gqllex/internal/ports"
	"github.com/gqllex/gqllex/internal/protocol"
)

// Engine lexes documents, consulting a result cache when one is configured.
// Syntax errors are results, not failures: the same body always yields the
// same error, so they are cached like token streams.
type Engine struct {
	store ports.ResultStore
	now   func() time.Time
}

// New returns an Engine backed by store. A nil store disables caching.
func New(store ports.ResultStore) *Engine {
	return &Engine{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

func (e *Engine) Lex(ctx context.Context, doc domain.Document) (*domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := doc.Source()
	if err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	key := doc.Key()

	if e.store != nil {
		cached, err := e.store.GetResult(ctx, key)
		if err == nil {
			cached.Cached = true
			return cached, nil
		}
		if !errors.Is(err, ports.ErrNotFound) {
			return nil, fmt.Errorf("reading cache: %w", err)
		}
	}

	result := &domain.Result{
		Key:       key,
		Name:      src.Name,
		BodySize:  len(doc.Body),
		CreatedAt: e.now(),
	}

	tokens, err := language.Tokenize(src)
	if err != nil {
		var syntaxErr *gqlerror.SyntaxError
		if !errors.As(err, &syntaxErr) {
			return nil, err
		}
		formatted := syntaxErr.Format()
		result.Err = &formatted
	} else {
		result.Tokens = protocol.NewTokenRecords(tokens)
	}

	if e.store != nil {
		if err := e.store.SaveResult(ctx, result); err != nil {
			return nil, fmt.Errorf("writing cache: %w", err)
		}
	}
	return result, nil
}
