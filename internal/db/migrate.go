package db

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS credentials (
		id TEXT PRIMARY KEY,
		token TEXT NOT NULL,
		language TEXT NOT NULL DEFAULT 'en',
		remember INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS project_cache (
		id TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ui_state (
		id TEXT PRIMARY KEY,
		selected_project TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pending_changes (
		project_id TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}

// Migrate runs all schema migrations for the local store.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
