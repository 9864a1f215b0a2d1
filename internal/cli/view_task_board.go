package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/obradev/obra/internal/cli/formatter"
	"github.com/obradev/obra/internal/domain"
	"github.com/obradev/obra/internal/session"
)

var boardColumns = []domain.TaskStatus{
	domain.TaskTodo,
	domain.TaskInProgress,
	domain.TaskDone,
}

// taskBoardView renders the selected project's tasks as a three-column
// board. Edits stage into the session; nothing reaches the backend until an
// explicit save.
type taskBoardView struct {
	state  *SharedState
	column int
	cursor int
}

func newTaskBoardView(state *SharedState) *taskBoardView {
	return &taskBoardView{state: state}
}

func (v *taskBoardView) ID() ViewID    { return ViewTaskBoard }
func (v *taskBoardView) Title() string { return "Tasks" }

func (v *taskBoardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "advance")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	}
}

func (v *taskBoardView) Init() tea.Cmd { return nil }

func (v *taskBoardView) columnTasks(status domain.TaskStatus) []domain.Task {
	sel := v.state.App.Session.Selected()
	if sel == nil {
		return nil
	}
	var out []domain.Task
	for _, t := range sel.Tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func (v *taskBoardView) currentTask() *domain.Task {
	tasks := v.columnTasks(boardColumns[v.column])
	if v.cursor >= len(tasks) {
		return nil
	}
	t := tasks[v.cursor]
	return &t
}

func (v *taskBoardView) clampCursor() {
	n := len(v.columnTasks(boardColumns[v.column]))
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *taskBoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.clampCursor()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			if v.column > 0 {
				v.column--
				v.clampCursor()
			}
		case "right", "l":
			if v.column < len(boardColumns)-1 {
				v.column++
				v.clampCursor()
			}
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.columnTasks(boardColumns[v.column]))-1 {
				v.cursor++
			}
		case " ":
			return v, v.advanceTask()
		case "n":
			return v, v.newTaskWizard()
		case "e":
			return v, v.editTaskWizard()
		case "x":
			return v, v.deleteTaskWizard()
		case "s":
			return v, saveSessionCmd(v.state)
		}
	}
	return v, nil
}

// advanceTask moves the task under the cursor to the next column, wrapping
// done back to todo.
func (v *taskBoardView) advanceTask() tea.Cmd {
	t := v.currentTask()
	if t == nil {
		return nil
	}
	next := map[domain.TaskStatus]domain.TaskStatus{
		domain.TaskTodo:       domain.TaskInProgress,
		domain.TaskInProgress: domain.TaskDone,
		domain.TaskDone:       domain.TaskTodo,
	}[t.Status]

	app := v.state.App
	return tea.Batch(
		mutate(v.state, app.T("task.updated", t.Title), func() error {
			return app.Session.UpdateTaskStatus(t.ID, next)
		}),
		refreshViews(),
	)
}

func (v *taskBoardView) newTaskWizard() tea.Cmd {
	sel := v.state.App.Session.Selected()
	if sel == nil {
		return setStatus(v.state.App.T("project.none_selected"))
	}

	var title, description, assignee, due string
	status := string(boardColumns[v.column])

	form := taskForm(&title, &description, &assignee, &due, &status, sel.Team)
	return startWizard(v.state, "New Task", form, func() tea.Cmd {
		app := v.state.App
		return tea.Batch(
			mutate(v.state, app.T("task.created", title), func() error {
				_, err := app.Session.AddTask(domain.Task{
					Title:       title,
					Description: description,
					Assignee:    assignee,
					WorkerID:    workerIDByName(sel.Team, assignee),
					Status:      domain.TaskStatus(status),
					DueDate:     parseOptionalDate(due),
				})
				return err
			}),
			refreshViews(),
		)
	})
}

func (v *taskBoardView) editTaskWizard() tea.Cmd {
	t := v.currentTask()
	if t == nil {
		return nil
	}
	sel := v.state.App.Session.Selected()

	title := t.Title
	description := t.Description
	assignee := t.Assignee
	due := fmtOptionalDate(t.DueDate)
	status := string(t.Status)
	taskID := t.ID

	form := taskForm(&title, &description, &assignee, &due, &status, sel.Team)
	return startWizard(v.state, "Edit Task", form, func() tea.Cmd {
		app := v.state.App
		return tea.Batch(
			mutate(v.state, app.T("task.updated", title), func() error {
				newStatus := domain.TaskStatus(status)
				workerID := workerIDByName(sel.Team, assignee)
				patch := session.TaskPatch{
					Title:       &title,
					Description: &description,
					Assignee:    &assignee,
					WorkerID:    &workerID,
					Status:      &newStatus,
					DueDate:     parseOptionalDate(due),
				}
				return app.Session.UpdateTask(taskID, patch)
			}),
			refreshViews(),
		)
	})
}

func (v *taskBoardView) deleteTaskWizard() tea.Cmd {
	t := v.currentTask()
	if t == nil {
		return nil
	}
	taskID, title := t.ID, t.Title

	confirmed := false
	form := confirmForm(fmt.Sprintf("Delete task %q?", title), &confirmed)
	return startWizard(v.state, "Delete Task", form, func() tea.Cmd {
		if !confirmed {
			return nil
		}
		app := v.state.App
		return tea.Batch(
			mutate(v.state, app.T("task.deleted"), func() error {
				return app.Session.DeleteTask(taskID)
			}),
			refreshViews(),
		)
	})
}

func workerIDByName(team []domain.Worker, name string) string {
	for _, w := range team {
		if w.Name == name {
			return w.ID
		}
	}
	return ""
}

var columnTitles = map[domain.TaskStatus]string{
	domain.TaskTodo:       "TODO",
	domain.TaskInProgress: "IN PROGRESS",
	domain.TaskDone:       "DONE",
}

func (v *taskBoardView) View() string {
	sel := v.state.App.Session.Selected()
	if sel == nil {
		return "\n  " + formatter.Dim(v.state.App.T("project.none_selected"))
	}
	if len(sel.Tasks) == 0 {
		return "\n  " + formatter.Dim(v.state.App.T("task.board.empty")) +
			"  " + formatter.Dim("(press 'n' to add one)")
	}

	colWidth := (v.state.Width - 6) / len(boardColumns)
	if colWidth < 18 {
		colWidth = 18
	}

	now := time.Now()
	cols := make([]string, 0, len(boardColumns))
	for ci, status := range boardColumns {
		tasks := v.columnTasks(status)

		var b strings.Builder
		header := fmt.Sprintf("%s (%d)", columnTitles[status], len(tasks))
		if ci == v.column {
			b.WriteString(formatter.StyleHeader.Render(header) + "\n\n")
		} else {
			b.WriteString(formatter.Dim(header) + "\n\n")
		}

		for ti, t := range tasks {
			cursor := "  "
			style := formatter.StyleFg
			if ci == v.column && ti == v.cursor {
				cursor = formatter.StyleGreen.Render("▸ ")
				style = formatter.StyleBold
			}

			line := cursor + style.Render(formatter.PadRight(t.Title, colWidth-6))
			if t.Overdue(now) {
				line += formatter.StyleRed.Render(" !")
			}
			b.WriteString(line + "\n")

			if t.Assignee != "" {
				b.WriteString("    " + formatter.Dim(t.Assignee) + "\n")
			}
			if t.DueDate != nil {
				b.WriteString("    " + formatter.RelativeDateStyled(*t.DueDate) + "\n")
			}
		}

		cols = append(cols, lipgloss.NewStyle().Width(colWidth).Render(b.String()))
	}

	return "\n" + lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}
