package testutil

import (
	"context"

	"github.com/obradev/obra/internal/domain"
)

// RecordingPersister captures save calls for assertions. Setting Err makes
// every save fail with that error.
type RecordingPersister struct {
	Err   error
	Calls []SaveCall
}

// SaveCall is one recorded SaveProject invocation.
type SaveCall struct {
	Project *domain.Project
	Changes []domain.PendingChange
}

func (p *RecordingPersister) SaveProject(ctx context.Context, project *domain.Project, changes []domain.PendingChange) error {
	if p.Err != nil {
		return p.Err
	}
	p.Calls = append(p.Calls, SaveCall{Project: project, Changes: changes})
	return nil
}
