package store

import (
	"context"
	"errors"
	"time"

	"github.com/obradev/obra/internal/domain"
)

// ErrNotFound indicates the requested row does not exist in the local store.
var ErrNotFound = errors.New("not found in local store")

// ProjectCacheRepo persists the last successfully fetched project list so a
// failed fetch can degrade to the prior list instead of an empty view.
type ProjectCacheRepo interface {
	Put(ctx context.Context, projects []*domain.Project) error
	Get(ctx context.Context) ([]*domain.Project, time.Time, error)
	Clear(ctx context.Context) error
}

// UIStateRepo persists the active selection and the staged dirty set so an
// edit session resumes across invocations.
type UIStateRepo interface {
	SelectedProject(ctx context.Context) (string, error)
	SetSelectedProject(ctx context.Context, id string) error

	PutChanges(ctx context.Context, projectID string, changes []domain.PendingChange) error
	GetChanges(ctx context.Context, projectID string) ([]domain.PendingChange, error)
	ClearChanges(ctx context.Context, projectID string) error
}
