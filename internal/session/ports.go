package session

import (
	"context"

	"github.com/obradev/obra/internal/domain"
)

// Persister commits a batch of pending changes for one project to the
// backend. The project carries the full post-edit collections; changes is
// the merged dirty set that produced them.
type Persister interface {
	SaveProject(ctx context.Context, p *domain.Project, changes []domain.PendingChange) error
}
