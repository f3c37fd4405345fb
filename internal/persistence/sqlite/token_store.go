// Package sqlite persists the operator's session token across dashboard
// restarts. The store is a single-slot table: the dashboard acts for exactly
// one operator at a time, so there is never more than one row.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/example/frontdesk/internal/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_token (
	slot INTEGER PRIMARY KEY CHECK (slot = 0),
	token TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// TokenStore implements session.Store on top of a SQLite database.
type TokenStore struct {
	db  *sql.DB
	now func() time.Time
}

// Open connects to the database identified by dsn and ensures the schema
// exists.
func Open(dsn string) (*TokenStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialise session_token schema: %w", err)
	}
	return &TokenStore{db: db, now: time.Now}, nil
}

// Close releases the underlying database handle.
func (s *TokenStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the stored token, or session.ErrNoSession when the slot is
// empty.
func (s *TokenStore) Get(ctx context.Context) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx, `SELECT token FROM session_token WHERE slot = 0`).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", session.ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("read session token: %w", err)
	}
	return token, nil
}

// Set stores the token, replacing any previous value.
func (s *TokenStore) Set(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_token (slot, token, updated_at) VALUES (0, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at
	`, token, s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write session token: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an empty slot succeeds.
func (s *TokenStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_token WHERE slot = 0`); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

var _ session.Store = (*TokenStore)(nil)
