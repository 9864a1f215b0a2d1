package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/obradev/obra/internal/domain"
	"github.com/obradev/obra/internal/session"
)

// saveSessionCmd saves the staged changes of the selected project to the
// backend and persists the now-clean session locally.
func saveSessionCmd(state *SharedState) tea.Cmd {
	return func() tea.Msg {
		sess := state.App.Session
		sel := sess.Selected()
		if sel == nil {
			return statusMsg{text: state.App.T("project.none_selected"), isErr: true}
		}
		count := len(sess.PendingChanges())
		if count == 0 {
			return statusMsg{text: state.App.T("session.nothing_to_save")}
		}
		if err := sess.SaveChanges(context.Background()); err != nil {
			if errors.Is(err, session.ErrSaveInFlight) {
				return statusMsg{text: state.App.T("session.save_in_flight"), isErr: true}
			}
			return statusMsg{text: err.Error(), isErr: true}
		}
		state.Persist()
		return statusMsg{text: state.App.T("session.saved", count, sel.Title)}
	}
}

// discardSessionCmd reverts the working copy to the saved snapshot.
func discardSessionCmd(state *SharedState) tea.Cmd {
	return func() tea.Msg {
		sess := state.App.Session
		count := len(sess.PendingChanges())
		if count == 0 {
			return statusMsg{text: state.App.T("session.nothing_to_discard")}
		}
		sess.DiscardChanges()
		state.Persist()
		return statusMsg{text: state.App.T("session.discarded", count)}
	}
}

// notificationsLoadedMsg carries the async notification fetch result.
type notificationsLoadedMsg struct {
	items []*domain.Notification
	err   error
}

// loadNotificationsCmd fetches the caller's notification feed.
func loadNotificationsCmd(state *SharedState) tea.Cmd {
	return func() tea.Msg {
		items, err := state.App.API.ListNotifications(context.Background())
		return notificationsLoadedMsg{items: items, err: err}
	}
}

// mutate runs fn against the session, persists on success and reports the
// outcome on the status line. Views use it for every single-shot edit.
func mutate(state *SharedState, okText string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return statusMsg{text: err.Error(), isErr: true}
		}
		state.Persist()
		return statusMsg{text: okText}
	}
}
