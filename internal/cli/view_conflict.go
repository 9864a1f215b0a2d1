package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/obradev/obra/internal/cli/formatter"
	"github.com/obradev/obra/internal/session"
)

// conflictView presents the three-way choice that guards a project switch
// while the session holds unsaved changes: save and switch, discard and
// switch, or stay.
type conflictView struct {
	state      *SharedState
	previousID string
	cursor     int
}

func newConflictView(state *SharedState, previousID string) *conflictView {
	return &conflictView{state: state, previousID: previousID}
}

func (v *conflictView) ID() ViewID    { return ViewConflict }
func (v *conflictView) Title() string { return "Unsaved changes" }

func (v *conflictView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stay")),
	}
}

func (v *conflictView) Init() tea.Cmd { return nil }

var conflictChoices = []session.SwitchChoice{
	session.SaveAndSwitch,
	session.DiscardAndSwitch,
	session.CancelSwitch,
}

func (v *conflictView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(conflictChoices)-1 {
			v.cursor++
		}
	case "esc":
		return v, v.resolve(session.CancelSwitch)
	case "enter":
		return v, v.resolve(conflictChoices[v.cursor])
	}
	return v, nil
}

func (v *conflictView) resolve(choice session.SwitchChoice) tea.Cmd {
	app := v.state.App
	sess := app.Session
	count := len(sess.PendingChanges())
	// After ResolveSwitch the selection points at the target project, but
	// the changes were saved to the one we are leaving.
	var prevTitle string
	if sel := sess.Selected(); sel != nil {
		prevTitle = sel.Title
	}

	if err := sess.ResolveSwitch(context.Background(), choice); err != nil {
		return setErrorStatus(err)
	}

	if choice == session.CancelSwitch {
		return popView()
	}

	// The held changes of the previous project are settled either way.
	if v.previousID != "" {
		_ = app.State.ClearChanges(context.Background(), v.previousID)
	}
	v.state.Persist()

	status := app.T("session.discarded", count)
	if choice == session.SaveAndSwitch {
		status = app.T("session.saved", count, prevTitle)
	}
	return tea.Batch(popView(), setStatus(status), refreshViews())
}

func (v *conflictView) View() string {
	app := v.state.App
	sess := app.Session
	sel := sess.Selected()
	changes := sess.PendingChanges()

	var b strings.Builder
	b.WriteString("\n")
	if sel != nil {
		b.WriteString("  " + formatter.StyleYellow.Render(app.T("conflict.title", sel.Title)) + "\n")
	}
	b.WriteString("  " + app.T("conflict.prompt", len(changes)) + "\n\n")

	b.WriteString(indentLines(formatter.FormatPendingChanges(changes), "  "))
	b.WriteString("\n")

	labels := []string{
		app.T("conflict.save_switch"),
		app.T("conflict.discard_switch"),
		app.T("conflict.cancel"),
	}
	for i, label := range labels {
		cursor := "  "
		style := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			style = formatter.StyleBold
		}
		b.WriteString("  " + cursor + style.Render(label) + "\n")
	}

	return b.String()
}

func indentLines(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n") + "\n"
}
