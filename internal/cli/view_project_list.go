package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/obradev/obra/internal/cli/formatter"
	"github.com/obradev/obra/internal/domain"
)

// projectListView shows a navigable list of the account's projects. Selecting
// a dirty-session switch target routes through the conflict view.
type projectListView struct {
	state  *SharedState
	cursor int

	filtering bool
	filter    string
}

func newProjectListView(state *SharedState) *projectListView {
	return &projectListView{state: state}
}

func (v *projectListView) ID() ViewID    { return ViewProjectList }
func (v *projectListView) Title() string { return "Projects" }

func (v *projectListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *projectListView) Init() tea.Cmd { return nil }

func (v *projectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		if visible := v.visibleProjects(); v.cursor >= len(visible) && v.cursor > 0 {
			v.cursor = len(visible) - 1
		}
		return v, nil

	case tea.KeyMsg:
		if v.filtering {
			return v.updateFilter(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *projectListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := v.visibleProjects()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(visible) {
			return v, v.selectProject(visible[v.cursor])
		}
	case "/":
		v.filtering = true
		v.filter = ""
	}
	return v, nil
}

func (v *projectListView) selectProject(p *domain.Project) tea.Cmd {
	sess := v.state.App.Session
	if sel := sess.Selected(); sel != nil && sel.ID == p.ID {
		return setStatus(v.state.App.T("project.selected", p.Title))
	}

	previousID := ""
	if sel := sess.Selected(); sel != nil {
		previousID = sel.ID
	}

	if sess.RequestSwitch(p.ID) {
		return pushView(newConflictView(v.state, previousID))
	}

	v.state.Persist()
	return tea.Batch(
		setStatus(v.state.App.T("project.selected", p.Title)),
		refreshViews(),
	)
}

func (v *projectListView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.filtering = false
		v.filter = ""
		v.cursor = 0
		return v, nil
	case tea.KeyEnter:
		v.filtering = false
		return v, nil
	case tea.KeyBackspace:
		if len(v.filter) > 0 {
			v.filter = v.filter[:len(v.filter)-1]
			v.cursor = 0
		}
	default:
		if len(msg.String()) == 1 {
			v.filter += msg.String()
			v.cursor = 0
		}
	}
	return v, nil
}

func (v *projectListView) visibleProjects() []*domain.Project {
	projects := v.state.App.Session.Projects()
	if v.filter == "" {
		return projects
	}
	lf := strings.ToLower(v.filter)
	var filtered []*domain.Project
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Title), lf) ||
			strings.Contains(strings.ToLower(p.ID), lf) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (v *projectListView) View() string {
	visible := v.visibleProjects()

	var b strings.Builder
	b.WriteString("\n")

	if v.filtering {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.filter + "█\n\n")
	}

	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim(v.state.App.T("project.list.empty")) + "\n")
		return b.String()
	}

	selectedID := ""
	if sel := v.state.App.Session.Selected(); sel != nil {
		selectedID = sel.ID
	}

	for i, p := range visible {
		cursor := "  "
		titleStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			titleStyle = formatter.StyleBold
		}

		marker := " "
		if p.ID == selectedID {
			marker = formatter.StyleGreen.Render("●")
		}

		budget := formatter.MoneyStyled(p.Spend, p.BudgetLimit)
		b.WriteString(fmt.Sprintf("%s%s %-7s %s  %s  %s\n",
			cursor,
			marker,
			formatter.StyleGreen.Render(formatter.TruncID(p.ID)),
			titleStyle.Render(formatter.PadRight(p.Title, 24)),
			formatter.StatusPill(p.Status),
			budget,
		))
	}

	return b.String()
}
