package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/obradev/obra/internal/access"
	"github.com/obradev/obra/internal/cli/formatter"
	"github.com/obradev/obra/internal/domain"
)

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage the selected project's team",
	}

	cmd.AddCommand(
		newTeamListCmd(app),
		newTeamAddCmd(app),
		newTeamRemoveCmd(app),
	)

	return cmd
}

func teamContext(ctx context.Context, app *App) error {
	if _, err := requireSection(ctx, app, access.SectionTeam); err != nil {
		return err
	}
	return requireSelected(ctx, app)
}

// resolveWorkerID matches by exact ID or case-insensitive name.
func resolveWorkerID(app *App, input string) (string, error) {
	for _, w := range app.Session.Selected().Team {
		if w.ID == input {
			return w.ID, nil
		}
	}
	for _, w := range app.Session.Selected().Team {
		if strings.EqualFold(w.Name, input) {
			return w.ID, nil
		}
	}
	return "", fmt.Errorf("team member not found: %q", input)
}

func newTeamListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the team roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := teamContext(ctx, app); err != nil {
				return err
			}
			fmt.Println(formatter.FormatTeamList(app.Session.Selected().Team))
			return nil
		},
	}
}

func newTeamAddCmd(app *App) *cobra.Command {
	var name, role, phone, contact, availability string
	var skills []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Stage adding a member to the team",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := teamContext(ctx, app); err != nil {
				return err
			}
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			for _, member := range app.Session.Selected().Team {
				if strings.EqualFold(member.Name, name) {
					fmt.Println(app.T("team.already_member", member.Name))
					return nil
				}
			}

			w := domain.Worker{
				ID:           uuid.New().String(),
				Name:         name,
				Role:         role,
				Phone:        phone,
				Contact:      contact,
				Skills:       skills,
				Availability: availability,
			}
			added, err := app.Session.AddTeamMember(w)
			if err != nil {
				return err
			}
			if !added {
				fmt.Println(app.T("team.already_member", name))
				return nil
			}
			if err := persistSession(ctx, app); err != nil {
				return err
			}

			fmt.Println(app.T("team.added", name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Member name")
	cmd.Flags().StringVar(&role, "role", "", "Trade or position, e.g. Electrician")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&contact, "contact", "", "Email or other contact")
	cmd.Flags().StringSliceVar(&skills, "skill", nil, "Skills (repeatable)")
	cmd.Flags().StringVar(&availability, "availability", "", "Availability, e.g. Full-time")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTeamRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID-OR-NAME",
		Short: "Stage removing a member from the team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := teamContext(ctx, app); err != nil {
				return err
			}
			id, err := resolveWorkerID(app, args[0])
			if err != nil {
				return err
			}

			name := args[0]
			for _, w := range app.Session.Selected().Team {
				if w.ID == id {
					name = w.Name
					break
				}
			}

			if err := app.Session.RemoveTeamMember(id); err != nil {
				return err
			}
			if err := persistSession(ctx, app); err != nil {
				return err
			}

			fmt.Println(app.T("team.removed", name))
			return nil
		},
	}
}
