package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/obradev/obra/internal/cli/formatter"
	"github.com/obradev/obra/internal/domain"
)

// notificationsView shows the caller's notification feed, loaded async from
// the backend.
type notificationsView struct {
	state   *SharedState
	items   []*domain.Notification
	cursor  int
	loading bool
	err     error
}

func newNotificationsView(state *SharedState) *notificationsView {
	return &notificationsView{state: state, loading: true}
}

func (v *notificationsView) ID() ViewID    { return ViewNotifications }
func (v *notificationsView) Title() string { return "Notifications" }

func (v *notificationsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "mark read")),
		key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "mark all read")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *notificationsView) Init() tea.Cmd {
	return loadNotificationsCmd(v.state)
}

func (v *notificationsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case notificationsLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.items = msg.items
		if v.cursor >= len(v.items) {
			v.cursor = 0
		}
		return v, nil

	case refreshViewMsg:
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.items)-1 {
				v.cursor++
			}
		case "enter":
			return v, v.markRead()
		case "A":
			return v, v.markAllRead()
		}
	}
	return v, nil
}

func (v *notificationsView) markRead() tea.Cmd {
	if v.cursor >= len(v.items) {
		return nil
	}
	n := v.items[v.cursor]
	if n.Read {
		return nil
	}

	app := v.state.App
	return func() tea.Msg {
		if err := app.API.MarkNotificationRead(context.Background(), n.ID); err != nil {
			return statusMsg{text: err.Error(), isErr: true}
		}
		n.Read = true
		return statusMsg{text: app.T("notify.marked_read", 1)}
	}
}

func (v *notificationsView) markAllRead() tea.Cmd {
	sel := v.state.App.Session.Selected()
	if sel == nil {
		return setStatus(v.state.App.T("project.none_selected"))
	}

	app := v.state.App
	projectID := sel.ID
	return func() tea.Msg {
		count := 0
		for _, n := range v.items {
			if n.ProjectID == projectID && !n.Read {
				count++
			}
		}
		if err := app.API.MarkAllNotificationsRead(context.Background(), projectID); err != nil {
			return statusMsg{text: err.Error(), isErr: true}
		}
		for _, n := range v.items {
			if n.ProjectID == projectID {
				n.Read = true
			}
		}
		return statusMsg{text: app.T("notify.marked_read", count)}
	}
}

func (v *notificationsView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading notifications...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if len(v.items) == 0 {
		return "\n  " + formatter.Dim(v.state.App.T("notify.empty"))
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, n := range v.items {
		cursor := "  "
		style := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			style = formatter.StyleBold
		}

		marker := " "
		if !n.Read {
			marker = formatter.StyleYellow.Render("●")
			style = style.Bold(true)
		}

		project := ""
		if p := v.state.App.Session.ProjectByID(n.ProjectID); p != nil {
			project = formatter.Dim(" [" + p.Title + "]")
		}

		b.WriteString(fmt.Sprintf("%s%s %s%s  %s\n",
			cursor,
			marker,
			style.Render(n.Message),
			project,
			formatter.Dim(formatter.HumanTimestamp(n.CreatedAt)),
		))
	}

	return b.String()
}
