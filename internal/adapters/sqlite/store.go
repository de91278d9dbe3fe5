package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gqllex/gqllex/internal/domain"
	"github.com/gqllex/gqllex/internal/gqlerror"
	"github.com/gqllex/gqllex/internal/ports"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

var _ ports.ResultStore = (*Store)(nil)

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	// WAL lets readers proceed while a result is being written.
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	// One connection: SQLite never sees concurrent writers, and ":memory:"
	// databases stay a single database.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS lex_results (
			key TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			body_size INTEGER NOT NULL,
			token_count INTEGER NOT NULL,
			tokens_json TEXT NOT NULL,
			error_json TEXT,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS lex_results_created_at ON lex_results(created_at);
	`)
	return err
}

func (s *Store) SaveResult(ctx context.Context, result *domain.Result) error {
	tokens, err := json.Marshal(result.Tokens)
	if err != nil {
		return fmt.Errorf("encoding tokens: %w", err)
	}

	var errJSON sql.NullString
	if result.Err != nil {
		data, err := json.Marshal(result.Err)
		if err != nil {
			return fmt.Errorf("encoding error: %w", err)
		}
		errJSON = sql.NullString{String: string(data), Valid: true}
	}

	createdAt := result.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO lex_results (key, name, body_size, token_count, tokens_json, error_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.Key, result.Name, result.BodySize, len(result.Tokens), string(tokens), errJSON, formatTime(createdAt),
	)
	return err
}

func (s *Store) GetResult(ctx context.Context, key string) (*domain.Result, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT key, name, body_size, tokens_json, error_json, created_at FROM lex_results WHERE key = ?`, key)

	result, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("result %q: %w", key, ports.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) DeleteResult(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lex_results WHERE key = ?`, key)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("result %q: %w", key, ports.ErrNotFound)
	}
	return nil
}

// ListResults returns up to limit results, newest first. A non-positive
// limit returns all of them.
func (s *Store) ListResults(ctx context.Context, limit int) ([]*domain.Result, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, name, body_size, tokens_json, error_json, created_at FROM lex_results
		 ORDER BY created_at DESC, key LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*domain.Result
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (*domain.Result, error) {
	result := &domain.Result{}
	var tokens, createdAt string
	var errJSON sql.NullString
	if err := row.Scan(&result.Key, &result.Name, &result.BodySize, &tokens, &errJSON, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tokens), &result.Tokens); err != nil {
		return nil, fmt.Errorf("decoding tokens of %q: %w", result.Key, err)
	}
	if errJSON.Valid {
		result.Err = &gqlerror.FormattedError{}
		if err := json.Unmarshal([]byte(errJSON.String), result.Err); err != nil {
			return nil, fmt.Errorf("decoding error of %q: %w", result.Key, err)
		}
	}
	result.CreatedAt = parseTime(createdAt)
	return result, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

