package cli

import (
	"github.com/spf13/cobra"

	"github.com/obradev/obra/internal/api"
	"github.com/obradev/obra/internal/auth"
	"github.com/obradev/obra/internal/i18n"
	"github.com/obradev/obra/internal/session"
	"github.com/obradev/obra/internal/store"
)

// App holds references to everything CLI commands and TUI views need.
type App struct {
	Session *session.Manager
	API     api.Client
	Auth    auth.Provider
	Cache   store.ProjectCacheRepo
	State   store.UIStateRepo
	Bundle  *i18n.Bundle

	// Interactive is true when stdout is a terminal; forms and the TUI
	// are only offered then.
	Interactive bool
}

// T resolves a message key through the app's language bundle.
func (a *App) T(key string, args ...any) string {
	return a.Bundle.T(key, args...)
}

// NewRootCmd creates the top-level "obra" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "obra",
		Short: app.T("app.tagline"),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare "obra" opens the dashboard in a terminal, prints help
			// otherwise.
			if app.Interactive {
				return runBoard(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newLangCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newExpenseCmd(app),
		newInventoryCmd(app),
		newTeamCmd(app),
		newNotificationsCmd(app),
		newReportCmd(app),
		newSaveCmd(app),
		newDiscardCmd(app),
		newChangesCmd(app),
		newBoardCmd(app),
	)

	return root
}
