package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obradev/obra/internal/access"
	"github.com/obradev/obra/internal/cli/formatter"
)

func newNotificationsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notify"},
		Short:   "View and acknowledge notifications",
	}

	cmd.AddCommand(
		newNotificationsListCmd(app),
		newNotificationsReadCmd(app),
		newNotificationsReadAllCmd(app),
	)

	return cmd
}

func newNotificationsListCmd(app *App) *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := requireSection(ctx, app, access.SectionNotifications); err != nil {
				return err
			}

			notes, err := app.API.ListNotifications(ctx)
			if err != nil {
				return err
			}
			if unreadOnly {
				filtered := notes[:0]
				for _, n := range notes {
					if !n.Read {
						filtered = append(filtered, n)
					}
				}
				notes = filtered
			}
			if len(notes) == 0 {
				fmt.Println(app.T("notify.empty"))
				return nil
			}

			fmt.Println(formatter.FormatNotifications(notes))
			return nil
		},
	}

	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Show unread only")

	return cmd
}

func newNotificationsReadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read ID",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := requireSection(ctx, app, access.SectionNotifications); err != nil {
				return err
			}
			if err := app.API.MarkNotificationRead(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println(app.T("notify.marked_read", 1))
			return nil
		},
	}
}

func newNotificationsReadAllCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark all notifications for the selected project as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := requireSection(ctx, app, access.SectionNotifications); err != nil {
				return err
			}
			if err := requireSelected(ctx, app); err != nil {
				return err
			}

			projectID := app.Session.Selected().ID
			notes, err := app.API.ListNotifications(ctx)
			if err != nil {
				return err
			}
			unread := 0
			for _, n := range notes {
				if n.ProjectID == projectID && !n.Read {
					unread++
				}
			}

			if err := app.API.MarkAllNotificationsRead(ctx, projectID); err != nil {
				return err
			}
			fmt.Println(app.T("notify.marked_read", unread))
			return nil
		},
	}
}
