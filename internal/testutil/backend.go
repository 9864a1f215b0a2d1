package testutil

import (
	"context"

	"github.com/obradev/obra/internal/api"
	"github.com/obradev/obra/internal/domain"
)

// FakeBackend is an in-memory api.Client for CLI and TUI tests. Setting
// Offline makes every call fail with api.ErrBackendUnavailable; SaveErr
// fails only saves.
type FakeBackend struct {
	Projects      []*domain.Project
	Notifications []*domain.Notification
	Token         string

	Offline bool
	SaveErr error

	Saves []SaveCall
}

func NewFakeBackend(projects ...*domain.Project) *FakeBackend {
	return &FakeBackend{Projects: projects, Token: "test-token"}
}

func (f *FakeBackend) Login(ctx context.Context, email, password string) (string, error) {
	if f.Offline {
		return "", api.ErrBackendUnavailable
	}
	return f.Token, nil
}

func (f *FakeBackend) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	if f.Offline {
		return nil, api.ErrBackendUnavailable
	}
	out := make([]*domain.Project, len(f.Projects))
	for i, p := range f.Projects {
		out[i] = p.Clone()
	}
	return out, nil
}

func (f *FakeBackend) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	if f.Offline {
		return nil, api.ErrBackendUnavailable
	}
	for _, p := range f.Projects {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return nil, api.ErrNotFound
}

func (f *FakeBackend) CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if f.Offline {
		return nil, api.ErrBackendUnavailable
	}
	f.Projects = append(f.Projects, p.Clone())
	return p.Clone(), nil
}

func (f *FakeBackend) SaveProject(ctx context.Context, p *domain.Project, changes []domain.PendingChange) error {
	if f.Offline {
		return api.ErrBackendUnavailable
	}
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.Saves = append(f.Saves, SaveCall{Project: p, Changes: changes})
	for i, existing := range f.Projects {
		if existing.ID == p.ID {
			f.Projects[i] = p.Clone()
			break
		}
	}
	return nil
}

func (f *FakeBackend) ListNotifications(ctx context.Context) ([]*domain.Notification, error) {
	if f.Offline {
		return nil, api.ErrBackendUnavailable
	}
	return f.Notifications, nil
}

func (f *FakeBackend) MarkNotificationRead(ctx context.Context, id string) error {
	if f.Offline {
		return api.ErrBackendUnavailable
	}
	for _, n := range f.Notifications {
		if n.ID == id {
			n.Read = true
		}
	}
	return nil
}

func (f *FakeBackend) MarkAllNotificationsRead(ctx context.Context, projectID string) error {
	if f.Offline {
		return api.ErrBackendUnavailable
	}
	for _, n := range f.Notifications {
		if n.ProjectID == projectID {
			n.Read = true
		}
	}
	return nil
}

func (f *FakeBackend) Available(ctx context.Context) bool { return !f.Offline }
