package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obradev/obra/internal/cli/formatter"
	"github.com/obradev/obra/internal/session"
)

func newSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Push staged changes to the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := currentUser(ctx, app); err != nil {
				return err
			}
			if err := hydrateProjects(ctx, app); err != nil {
				return err
			}

			if !app.Session.HasChanges() {
				fmt.Println(app.T("session.nothing_to_save"))
				return nil
			}

			count := len(app.Session.PendingChanges())
			title := app.Session.Selected().Title
			if err := app.Session.SaveChanges(ctx); err != nil {
				if errors.Is(err, session.ErrSaveInFlight) {
					return errors.New(app.T("session.save_in_flight"))
				}
				return err
			}
			if err := persistSession(ctx, app); err != nil {
				return err
			}

			fmt.Println(app.T("session.saved", count, title))
			return nil
		},
	}
}

func newDiscardCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "discard",
		Short: "Drop staged changes and revert to the last-saved state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := currentUser(ctx, app); err != nil {
				return err
			}
			if err := hydrateProjects(ctx, app); err != nil {
				return err
			}

			count := len(app.Session.PendingChanges())
			if count == 0 {
				fmt.Println(app.T("session.nothing_to_discard"))
				return nil
			}

			if !force && app.Interactive {
				confirmed := false
				form := confirmForm(app.T("conflict.prompt", count), &confirmed)
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					return nil
				}
			}

			app.Session.DiscardChanges()
			if err := persistSession(ctx, app); err != nil {
				return err
			}

			fmt.Println(app.T("session.discarded", count))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}

func newChangesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "changes",
		Short: "Show the staged changes for the selected project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := currentUser(ctx, app); err != nil {
				return err
			}
			if err := hydrateProjects(ctx, app); err != nil {
				return err
			}

			sel := app.Session.Selected()
			if sel == nil {
				fmt.Println(app.T("project.none_selected"))
				return nil
			}

			changes := app.Session.PendingChanges()
			fmt.Println(formatter.Header(sel.Title))
			fmt.Println(formatter.FormatPendingChanges(changes))
			return nil
		},
	}
}
