package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/obradev/obra/internal/access"
	"github.com/obradev/obra/internal/cli/formatter"
	"github.com/obradev/obra/internal/domain"
	"github.com/obradev/obra/internal/session"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks on the selected project",
	}

	cmd.AddCommand(
		newTaskListCmd(app),
		newTaskAddCmd(app),
		newTaskUpdateCmd(app),
		newTaskStatusCmd(app, "start", domain.TaskInProgress, "Move a task to in progress"),
		newTaskStatusCmd(app, "done", domain.TaskDone, "Mark a task done"),
		newTaskStatusCmd(app, "reopen", domain.TaskTodo, "Move a task back to todo"),
		newTaskRemoveCmd(app),
	)

	return cmd
}

// taskContext resolves auth, hydration and selection for task subcommands.
func taskContext(ctx context.Context, app *App) error {
	if _, err := requireSection(ctx, app, access.SectionTasks); err != nil {
		return err
	}
	return requireSelected(ctx, app)
}

// resolveTaskID matches input against task IDs by exact or unique prefix.
func resolveTaskID(app *App, input string) (string, error) {
	tasks := app.Session.Selected().Tasks
	for _, t := range tasks {
		if t.ID == input {
			return t.ID, nil
		}
	}
	var matches []string
	for _, t := range tasks {
		if len(input) >= 4 && len(t.ID) >= len(input) && t.ID[:len(input)] == input {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("task not found: %q", input)
	default:
		return "", fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks grouped by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := taskContext(ctx, app); err != nil {
				return err
			}
			fmt.Println(formatter.FormatTaskList(app.Session.Selected().Tasks, time.Now()))
			return nil
		},
	}
}

func newTaskAddCmd(app *App) *cobra.Command {
	var title, description, assignee, due string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Stage a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := taskContext(ctx, app); err != nil {
				return err
			}

			if title == "" {
				if !app.Interactive {
					return fmt.Errorf("--title is required in non-interactive mode")
				}
				status := string(domain.TaskTodo)
				form := taskForm(&title, &description, &assignee, &due, &status, app.Session.Selected().Team)
				if err := form.Run(); err != nil {
					return err
				}
			}

			t := domain.Task{
				Title:       title,
				Description: description,
				Assignee:    assignee,
				DueDate:     parseOptionalDate(due),
			}
			created, err := app.Session.AddTask(t)
			if err != nil {
				return err
			}
			if err := persistSession(ctx, app); err != nil {
				return err
			}

			fmt.Println(app.T("task.created", created.Title))
			fmt.Println(formatter.Dim(app.T("session.dirty") + ", run 'obra save' to push"))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee display name")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")

	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var title, description, assignee, due, status string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Stage changes to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := taskContext(ctx, app); err != nil {
				return err
			}
			id, err := resolveTaskID(app, args[0])
			if err != nil {
				return err
			}

			var patch session.TaskPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("assignee") {
				patch.Assignee = &assignee
			}
			if cmd.Flags().Changed("due") {
				d := parseOptionalDate(due)
				if d == nil {
					return fmt.Errorf("invalid due date %q", due)
				}
				patch.DueDate = d
			}
			if cmd.Flags().Changed("status") {
				if !domain.ValidTaskStatuses[status] {
					return fmt.Errorf("invalid status %q (todo|in_progress|done)", status)
				}
				s := domain.TaskStatus(status)
				patch.Status = &s
			}

			if err := app.Session.UpdateTask(id, patch); err != nil {
				return err
			}
			if err := persistSession(ctx, app); err != nil {
				return err
			}

			fmt.Println(app.T("task.updated", taskTitle(app, id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee display name")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "Task status (todo|in_progress|done)")

	return cmd
}

func newTaskStatusCmd(app *App, use string, status domain.TaskStatus, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := taskContext(ctx, app); err != nil {
				return err
			}
			id, err := resolveTaskID(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Session.UpdateTaskStatus(id, status); err != nil {
				return err
			}
			if err := persistSession(ctx, app); err != nil {
				return err
			}
			fmt.Println(app.T("task.updated", taskTitle(app, id)))
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Stage a task deletion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := taskContext(ctx, app); err != nil {
				return err
			}
			id, err := resolveTaskID(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Session.DeleteTask(id); err != nil {
				return err
			}
			if err := persistSession(ctx, app); err != nil {
				return err
			}
			fmt.Println(app.T("task.deleted"))
			return nil
		},
	}
}

func taskTitle(app *App, id string) string {
	for _, t := range app.Session.Selected().Tasks {
		if t.ID == id {
			return t.Title
		}
	}
	return id
}
