package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/obradev/obra/internal/domain"
)

// SQLiteProjectCache implements ProjectCacheRepo on the local SQLite store.
// The whole list is kept as one JSON document; the cache is a fallback, not
// a queryable replica.
type SQLiteProjectCache struct {
	db *sql.DB
}

// NewSQLiteProjectCache creates a new SQLiteProjectCache.
func NewSQLiteProjectCache(db *sql.DB) *SQLiteProjectCache {
	return &SQLiteProjectCache{db: db}
}

func (r *SQLiteProjectCache) Put(ctx context.Context, projects []*domain.Project) error {
	payload, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("encoding project cache: %w", err)
	}
	query := `INSERT OR REPLACE INTO project_cache (id, payload, fetched_at) VALUES ('default', ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, string(payload), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("writing project cache: %w", err)
	}
	return nil
}

func (r *SQLiteProjectCache) Get(ctx context.Context) ([]*domain.Project, time.Time, error) {
	query := `SELECT payload, fetched_at FROM project_cache WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var payload, fetchedAt string
	if err := row.Scan(&payload, &fetchedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, time.Time{}, ErrNotFound
		}
		return nil, time.Time{}, fmt.Errorf("scanning project cache: %w", err)
	}

	var projects []*domain.Project
	if err := json.Unmarshal([]byte(payload), &projects); err != nil {
		return nil, time.Time{}, fmt.Errorf("decoding project cache: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		ts = time.Time{}
	}
	return projects, ts, nil
}

func (r *SQLiteProjectCache) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM project_cache WHERE id = 'default'`); err != nil {
		return fmt.Errorf("clearing project cache: %w", err)
	}
	return nil
}
