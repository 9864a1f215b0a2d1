package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/obradev/obra/internal/access"
	"github.com/obradev/obra/internal/cli/formatter"
	"github.com/obradev/obra/internal/domain"
	"github.com/obradev/obra/internal/session"
)

// resolveProjectID matches input against known project IDs: exact first,
// then unique prefix, then case-insensitive title.
func resolveProjectID(app *App, input string) (string, error) {
	if input == "" {
		return "", errors.New("project ID is required")
	}

	projects := app.Session.Projects()

	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}

	for _, p := range projects {
		if strings.EqualFold(p.Title, input) {
			return p.ID, nil
		}
	}

	return "", fmt.Errorf("project not found: %q", input)
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Browse and select projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectSelectCmd(app),
		newProjectInspectCmd(app),
		newProjectAddCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := requireSection(ctx, app, access.SectionProjects); err != nil {
				return err
			}
			if err := hydrateProjects(ctx, app); err != nil {
				return err
			}

			projects := app.Session.Projects()
			if len(projects) == 0 {
				fmt.Println(app.T("project.list.empty"))
				return nil
			}

			selectedID := ""
			if sel := app.Session.Selected(); sel != nil {
				selectedID = sel.ID
			}
			fmt.Println(formatter.FormatProjectList(projects, selectedID))
			return nil
		},
	}
}

func newProjectSelectCmd(app *App) *cobra.Command {
	var saveFirst, discardFirst bool

	cmd := &cobra.Command{
		Use:   "select ID",
		Short: "Select the project to work on",
		Long: "Select the project to work on. With unsaved changes on the current\n" +
			"project you must resolve them: pass --save or --discard, or answer the\n" +
			"prompt in interactive mode.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := requireSection(ctx, app, access.SectionProjects); err != nil {
				return err
			}
			if err := hydrateProjects(ctx, app); err != nil {
				return err
			}

			id, err := resolveProjectID(app, args[0])
			if err != nil {
				return err
			}

			previousID := ""
			if sel := app.Session.Selected(); sel != nil {
				previousID = sel.ID
			}

			if app.Session.RequestSwitch(id) {
				choice, err := switchChoice(app, saveFirst, discardFirst)
				if err != nil {
					return err
				}
				if err := app.Session.ResolveSwitch(ctx, choice); err != nil {
					return err
				}
				if choice == session.CancelSwitch {
					fmt.Println(formatter.Dim(app.T("conflict.cancel")))
					return nil
				}
				// The previous project's staged set was saved or discarded.
				if previousID != "" {
					_ = app.State.ClearChanges(ctx, previousID)
				}
			}

			if err := persistSession(ctx, app); err != nil {
				return err
			}
			sel := app.Session.Selected()
			fmt.Println(app.T("project.selected", sel.Title))
			return nil
		},
	}

	cmd.Flags().BoolVar(&saveFirst, "save", false, "Save unsaved changes before switching")
	cmd.Flags().BoolVar(&discardFirst, "discard", false, "Discard unsaved changes before switching")
	cmd.MarkFlagsMutuallyExclusive("save", "discard")

	return cmd
}

// switchChoice resolves the three-way conflict from flags or, interactively,
// from a select prompt showing the staged changes.
func switchChoice(app *App, saveFirst, discardFirst bool) (session.SwitchChoice, error) {
	if saveFirst {
		return session.SaveAndSwitch, nil
	}
	if discardFirst {
		return session.DiscardAndSwitch, nil
	}
	if !app.Interactive {
		return session.CancelSwitch, fmt.Errorf("%s: pass --save or --discard", app.T("session.dirty"))
	}

	changes := app.Session.PendingChanges()
	fmt.Println(formatter.Header(app.T("conflict.title", app.Session.Selected().Title)))
	fmt.Println(formatter.FormatPendingChanges(changes))
	fmt.Println()

	choice := session.CancelSwitch
	form := conflictForm(app, len(changes), &choice)
	if err := form.Run(); err != nil {
		return session.CancelSwitch, err
	}
	return choice, nil
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [ID]",
		Short: "Show project details",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := requireSection(ctx, app, access.SectionProjects); err != nil {
				return err
			}
			if err := hydrateProjects(ctx, app); err != nil {
				return err
			}

			var p *domain.Project
			if len(args) == 1 {
				id, err := resolveProjectID(app, args[0])
				if err != nil {
					return err
				}
				p = app.Session.ProjectByID(id)
			} else {
				p = app.Session.Selected()
				if p == nil {
					return errors.New(app.T("project.none_selected"))
				}
			}

			fmt.Println(formatter.FormatProjectInspect(p))
			return nil
		},
	}
}

func newProjectAddCmd(app *App) *cobra.Command {
	var title, description, location, start, end string
	var budget float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			claims, err := requireSection(ctx, app, access.SectionProjects)
			if err != nil {
				return err
			}
			if claims.Role != domain.RoleAdmin {
				return fmt.Errorf("%s", app.T("access.denied", claims.Role, "project creation"))
			}

			startDate, err := time.Parse("2006-01-02", start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}

			p := &domain.Project{
				ID:          uuid.New().String(),
				Title:       title,
				Description: description,
				Admin:       claims.Name,
				BudgetLimit: budget,
				Location:    location,
				StartDate:   startDate,
				Status:      domain.ProjectPlanning,
			}
			if end != "" {
				endDate, err := time.Parse("2006-01-02", end)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}
				p.EndDate = &endDate
			}

			created, err := app.API.CreateProject(ctx, p)
			if err != nil {
				return err
			}

			fmt.Printf("Created project %s [%s]\n", created.Title, created.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Project title")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&location, "location", "", "Site location")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Budget limit")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}
