package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/obradev/obra/internal/access"
	"github.com/obradev/obra/internal/cli/formatter"
)

// dashboardView is the home screen of the TUI: a split-pane layout with the
// sections the user's role may open on the left and a summary of the
// selected project on the right.
type dashboardView struct {
	state    *SharedState
	sections []access.Section
	cursor   int
}

func newDashboardView(state *SharedState) *dashboardView {
	v := &dashboardView{state: state}
	for _, s := range access.SectionsFor(state.Claims.Role) {
		if s == access.SectionDashboard {
			continue
		}
		v.sections = append(v.sections, s)
	}
	return v
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projects")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "discard")),
	}
}

func (v *dashboardView) Init() tea.Cmd { return nil }

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.sections)-1 {
				v.cursor++
			}
		case "enter":
			if v.cursor < len(v.sections) {
				return v, v.openSection(v.sections[v.cursor])
			}
		case "p":
			return v, pushView(newProjectListView(v.state))
		case "s":
			return v, saveSessionCmd(v.state)
		case "d":
			return v, discardSessionCmd(v.state)
		}
	}
	return v, nil
}

func (v *dashboardView) openSection(s access.Section) tea.Cmd {
	switch s {
	case access.SectionProjects:
		return pushView(newProjectListView(v.state))
	case access.SectionNotifications:
		return pushView(newNotificationsView(v.state))
	}

	// The remaining sections need a selected project.
	if v.state.App.Session.Selected() == nil {
		return setStatus(v.state.App.T("project.none_selected"))
	}
	switch s {
	case access.SectionTasks:
		return pushView(newTaskBoardView(v.state))
	case access.SectionExpenses:
		return pushView(newExpenseListView(v.state))
	case access.SectionInventory:
		return pushView(newInventoryListView(v.state))
	case access.SectionTeam:
		return pushView(newTeamListView(v.state))
	case access.SectionReports:
		return setStatus("run 'obra report' to export a report")
	}
	return nil
}

const dashLeftPaneWidth = 28

func (v *dashboardView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	leftPane := v.renderSectionList()
	rightPane := v.renderProjectSummary()

	if v.state.Width < 80 {
		b.WriteString(leftPane)
		b.WriteString("\n")
		b.WriteString(rightPane)
		return b.String()
	}

	rightWidth := v.state.Width - dashLeftPaneWidth - 3
	if rightWidth < 20 {
		rightWidth = 20
	}

	leftCol := lipgloss.NewStyle().Width(dashLeftPaneWidth).Render(leftPane)
	divider := lipgloss.NewStyle().Foreground(formatter.ColorDim).Render("│")
	rightCol := lipgloss.NewStyle().Width(rightWidth).Render(rightPane)

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, leftCol, " "+divider+" ", rightCol))
	return b.String()
}

func (v *dashboardView) renderSectionList() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("SECTIONS") + "\n\n")

	labels := map[access.Section]string{
		access.SectionProjects:      "Projects",
		access.SectionTasks:         "Tasks",
		access.SectionExpenses:      "Expenses",
		access.SectionInventory:     "Inventory",
		access.SectionTeam:          "Team",
		access.SectionNotifications: "Notifications",
		access.SectionReports:       "Reports",
	}

	for i, s := range v.sections {
		cursor := "  "
		style := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			style = formatter.StyleBold
		}
		b.WriteString(cursor + style.Render(labels[s]) + "\n")
	}

	return b.String()
}

func (v *dashboardView) renderProjectSummary() string {
	sel := v.state.App.Session.Selected()
	if sel == nil {
		return formatter.Dim("No project selected. Open Projects to pick one.")
	}

	var b strings.Builder
	b.WriteString(formatter.StyleBold.Render(sel.Title) + "\n")
	b.WriteString(formatter.StatusPill(sel.Status) + "\n\n")

	b.WriteString(formatter.Dim("Budget   "))
	b.WriteString(formatter.RenderBudgetBar(sel.Spend, sel.BudgetLimit, 16) + "\n")
	if sel.OverBudget() {
		b.WriteString("         " + formatter.StyleRed.Render(v.state.App.T("project.over_budget")) + "\n")
	}
	b.WriteString("\n")

	total := sel.Progress.Done + sel.Progress.InProgress + sel.Progress.Todo
	b.WriteString(formatter.Dim("Tasks    "))
	if total > 0 {
		b.WriteString(formatter.RenderProgress(float64(sel.Progress.Done)/float64(total), 16) + "\n")
	} else {
		b.WriteString(formatter.Dim("none") + "\n")
	}
	b.WriteString(fmt.Sprintf("         %s done  %s active  %s todo\n\n",
		formatter.StyleGreen.Render(fmt.Sprintf("%d", sel.Progress.Done)),
		formatter.StyleYellow.Render(fmt.Sprintf("%d", sel.Progress.InProgress)),
		formatter.StyleBlue.Render(fmt.Sprintf("%d", sel.Progress.Todo)),
	))

	b.WriteString(fmt.Sprintf("%s %d member(s)   %s %d item(s)   %s %d expense(s)\n",
		formatter.Dim("Team"), len(sel.Team),
		formatter.Dim("Inventory"), len(sel.Inventory),
		formatter.Dim("Expenses"), len(sel.Expenses),
	))

	if v.state.App.Session.HasChanges() {
		b.WriteString("\n" + formatter.StyleYellow.Render("● ") +
			formatter.Dim(fmt.Sprintf("%d staged change(s), press 's' to save", len(v.state.App.Session.PendingChanges()))))
	}

	return b.String()
}
