package session

import "errors"

var (
	// ErrNoProject indicates a mutation was attempted with no project selected.
	ErrNoProject = errors.New("no project selected")

	// ErrUnsavedChanges indicates a project switch was attempted while the
	// dirty set is non-empty; the caller must resolve via the switch protocol.
	ErrUnsavedChanges = errors.New("unsaved changes on selected project")

	// ErrSaveInFlight indicates a save is already running; mutations and
	// further saves are rejected until it completes.
	ErrSaveInFlight = errors.New("save already in progress")

	// ErrEntityNotFound indicates an update/delete targeted an entity that is
	// not in the selected project's collections.
	ErrEntityNotFound = errors.New("entity not found in selected project")

	// ErrNoSwitchPending indicates ResolveSwitch was called without a
	// preceding RequestSwitch needing resolution.
	ErrNoSwitchPending = errors.New("no project switch pending")
)
