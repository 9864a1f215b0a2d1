package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/obradev/obra/internal/domain"
)

// SQLiteUIState persists the small bits of client state that must survive
// process restarts: the selected project and the staged dirty set. One row
// each; the staged changes are one JSON document per project.
type SQLiteUIState struct {
	db *sql.DB
}

// NewSQLiteUIState creates a new SQLiteUIState.
func NewSQLiteUIState(db *sql.DB) *SQLiteUIState {
	return &SQLiteUIState{db: db}
}

// SelectedProject returns the persisted project selection, or "" when none.
func (r *SQLiteUIState) SelectedProject(ctx context.Context) (string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT selected_project FROM ui_state WHERE id = 'default'`)
	var id string
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("scanning ui state: %w", err)
	}
	return id, nil
}

// SetSelectedProject persists the project selection. An empty ID clears it.
func (r *SQLiteUIState) SetSelectedProject(ctx context.Context, id string) error {
	query := `INSERT OR REPLACE INTO ui_state (id, selected_project, updated_at) VALUES ('default', ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("writing ui state: %w", err)
	}
	return nil
}

// PutChanges stages the dirty set for a project. An empty set clears the row.
func (r *SQLiteUIState) PutChanges(ctx context.Context, projectID string, changes []domain.PendingChange) error {
	if len(changes) == 0 {
		return r.ClearChanges(ctx, projectID)
	}
	payload, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("encoding staged changes: %w", err)
	}
	query := `INSERT OR REPLACE INTO pending_changes (project_id, payload, updated_at) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, projectID, string(payload), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("writing staged changes: %w", err)
	}
	return nil
}

// GetChanges returns the staged dirty set for a project, or nil when clean.
func (r *SQLiteUIState) GetChanges(ctx context.Context, projectID string) ([]domain.PendingChange, error) {
	row := r.db.QueryRowContext(ctx, `SELECT payload FROM pending_changes WHERE project_id = ?`, projectID)
	var payload string
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning staged changes: %w", err)
	}
	var changes []domain.PendingChange
	if err := json.Unmarshal([]byte(payload), &changes); err != nil {
		return nil, fmt.Errorf("decoding staged changes: %w", err)
	}
	return changes, nil
}

// ClearChanges drops the staged dirty set for a project.
func (r *SQLiteUIState) ClearChanges(ctx context.Context, projectID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM pending_changes WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing staged changes: %w", err)
	}
	return nil
}
