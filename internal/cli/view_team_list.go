package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/obradev/obra/internal/cli/formatter"
	"github.com/obradev/obra/internal/domain"
)

// teamListView lists the selected project's crew roster.
type teamListView struct {
	state  *SharedState
	cursor int
}

func newTeamListView(state *SharedState) *teamListView {
	return &teamListView{state: state}
}

func (v *teamListView) ID() ViewID    { return ViewTeamList }
func (v *teamListView) Title() string { return "Team" }

func (v *teamListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add member")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	}
}

func (v *teamListView) Init() tea.Cmd { return nil }

func (v *teamListView) team() []domain.Worker {
	sel := v.state.App.Session.Selected()
	if sel == nil {
		return nil
	}
	return sel.Team
}

func (v *teamListView) currentWorker() *domain.Worker {
	team := v.team()
	if v.cursor >= len(team) {
		return nil
	}
	w := team[v.cursor]
	return &w
}

func (v *teamListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		if n := len(v.team()); v.cursor >= n && v.cursor > 0 {
			v.cursor = n - 1
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.team())-1 {
				v.cursor++
			}
		case "n":
			return v, v.addMemberWizard()
		case "x":
			return v, v.removeMemberWizard()
		case "s":
			return v, saveSessionCmd(v.state)
		}
	}
	return v, nil
}

func (v *teamListView) addMemberWizard() tea.Cmd {
	if v.state.App.Session.Selected() == nil {
		return setStatus(v.state.App.T("project.none_selected"))
	}

	var name, role, phone, contact string
	form := workerForm(&name, &role, &phone, &contact)
	return startWizard(v.state, "Add Team Member", form, func() tea.Cmd {
		app := v.state.App
		return func() tea.Msg {
			added, err := app.Session.AddTeamMember(domain.Worker{
				ID:      uuid.New().String(),
				Name:    name,
				Role:    role,
				Phone:   phone,
				Contact: contact,
			})
			if err != nil {
				return statusMsg{text: err.Error(), isErr: true}
			}
			if !added {
				return statusMsg{text: app.T("team.already_member", name)}
			}
			v.state.Persist()
			return statusMsg{text: app.T("team.added", name)}
		}
	})
}

func (v *teamListView) removeMemberWizard() tea.Cmd {
	w := v.currentWorker()
	if w == nil {
		return nil
	}
	workerID, name := w.ID, w.Name

	confirmed := false
	form := confirmForm(fmt.Sprintf("Remove %s from the team?", name), &confirmed)
	return startWizard(v.state, "Remove Team Member", form, func() tea.Cmd {
		if !confirmed {
			return nil
		}
		app := v.state.App
		return tea.Batch(
			mutate(v.state, app.T("team.removed", name), func() error {
				return app.Session.RemoveTeamMember(workerID)
			}),
			refreshViews(),
		)
	})
}

func (v *teamListView) View() string {
	sel := v.state.App.Session.Selected()
	if sel == nil {
		return "\n  " + formatter.Dim(v.state.App.T("project.none_selected"))
	}

	team := v.team()
	if len(team) == 0 {
		return "\n  " + formatter.Dim("No team members yet.") +
			"  " + formatter.Dim("(press 'n' to add one)")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, w := range team {
		cursor := "  "
		style := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			style = formatter.StyleBold
		}

		role := w.Role
		if role == "" {
			role = "—"
		}
		workload := fmt.Sprintf("%d active / %d done", w.TasksInProgress, w.TasksCompleted)

		b.WriteString(fmt.Sprintf("%s%s  %s  %s\n",
			cursor,
			style.Render(formatter.PadRight(w.Name, 22)),
			formatter.Dim(formatter.PadRight(role, 16)),
			formatter.Dim(workload),
		))
		if len(w.Skills) > 0 {
			b.WriteString("    " + formatter.StyleBlue.Render(strings.Join(w.Skills, ", ")) + "\n")
		}
	}

	return b.String()
}
