package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/obradev/obra/internal/auth"
)

// SQLiteCredentials implements auth.Provider on the local SQLite store,
// backing remember-me logins that survive the process.
type SQLiteCredentials struct {
	db *sql.DB
}

// NewSQLiteCredentials creates a persisted credential provider.
func NewSQLiteCredentials(db *sql.DB) *SQLiteCredentials {
	return &SQLiteCredentials{db: db}
}

func (r *SQLiteCredentials) Current(ctx context.Context) (*auth.Credentials, error) {
	query := `SELECT token, language, remember FROM credentials WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var c auth.Credentials
	var remember int
	if err := row.Scan(&c.Token, &c.Language, &remember); err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrNoCredentials
		}
		return nil, fmt.Errorf("scanning credentials: %w", err)
	}
	c.Remember = remember != 0
	return &c, nil
}

func (r *SQLiteCredentials) Save(ctx context.Context, c *auth.Credentials) error {
	query := `INSERT OR REPLACE INTO credentials (id, token, language, remember, updated_at)
		VALUES ('default', ?, ?, ?, ?)`
	remember := 0
	if c.Remember {
		remember = 1
	}
	_, err := r.db.ExecContext(ctx, query, c.Token, c.Language, remember,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return nil
}

func (r *SQLiteCredentials) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = 'default'`); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}
