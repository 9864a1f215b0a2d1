package cli

import (
	"context"

	"github.com/obradev/obra/internal/auth"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App    *App
	Claims *auth.Claims

	// Terminal dimensions
	Width  int
	Height int
}

// Persist writes the selection and staged changes to the local store.
// Views call it after every session mutation.
func (s *SharedState) Persist() {
	_ = persistSession(context.Background(), s.App)
}

// ContentHeight returns the available height for view content,
// accounting for the header (2 lines) and status bar (2 lines).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
