package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// newBoardCmd starts the full-screen TUI. Bare "obra" routes here too.
func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd.Context(), app)
		},
	}
}

func runBoard(ctx context.Context, app *App) error {
	if !app.Interactive {
		return errors.New("the dashboard needs an interactive terminal")
	}

	claims, err := currentUser(ctx, app)
	if err != nil {
		return err
	}
	if err := hydrateProjects(ctx, app); err != nil {
		return err
	}

	model := newAppModel(app, claims)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
