package ports

import (
	"context"
	"errors"

	"github.com/gqllex/gqllex/internal/domain"
)

var ErrNotFound = errors.New("not found")

// ResultStore caches lexing results by document key.
type ResultStore interface {
	SaveResult(ctx context.Context, result *domain.Result) error
	GetResult(ctx context.Context, key string) (*domain.Result, error)
	DeleteResult(ctx context.Context, key string) error
	ListResults(ctx context.Context, limit int) ([]*domain.Result, error)
}
