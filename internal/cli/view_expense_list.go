package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/obradev/obra/internal/cli/formatter"
	"github.com/obradev/obra/internal/domain"
	"github.com/obradev/obra/internal/session"
)

// expenseListView lists the selected project's expenses with add, edit and
// approval actions. Approval keys are admin-only.
type expenseListView struct {
	state  *SharedState
	cursor int
}

func newExpenseListView(state *SharedState) *expenseListView {
	return &expenseListView{state: state}
}

func (v *expenseListView) ID() ViewID    { return ViewExpenseList }
func (v *expenseListView) Title() string { return "Expenses" }

func (v *expenseListView) ShortHelp() []key.Binding {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
	if v.state.Claims.Role == domain.RoleAdmin {
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "approve")),
			key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reject")),
		)
	}
	return bindings
}

func (v *expenseListView) Init() tea.Cmd { return nil }

func (v *expenseListView) expenses() []domain.Expense {
	sel := v.state.App.Session.Selected()
	if sel == nil {
		return nil
	}
	return sel.Expenses
}

func (v *expenseListView) currentExpense() *domain.Expense {
	expenses := v.expenses()
	if v.cursor >= len(expenses) {
		return nil
	}
	e := expenses[v.cursor]
	return &e
}

func (v *expenseListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		if n := len(v.expenses()); v.cursor >= n && v.cursor > 0 {
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
			if v.cursor < len(v.expenses())-1 {
				v.cursor++
			}
		case "n":
			return v, v.newExpenseWizard()
		case "e":
			return v, v.editExpenseWizard()
		case "x":
			return v, v.deleteExpenseWizard()
		case "a":
			return v, v.decideCmd(domain.ExpenseApproved)
		case "r":
			return v, v.decideCmd(domain.ExpenseRejected)
		case "s":
			return v, saveSessionCmd(v.state)
		}
	}
	return v, nil
}

func (v *expenseListView) newExpenseWizard() tea.Cmd {
	if v.state.App.Session.Selected() == nil {
		return setStatus(v.state.App.T("project.none_selected"))
	}

	var title, amount, description, date string
	category := string(domain.ExpenseMaterials)

	form := expenseForm(&title, &amount, &category, &description, &date)
	return startWizard(v.state, "New Expense", form, func() tea.Cmd {
		app := v.state.App
		return tea.Batch(
			mutate(v.state, app.T("expense.created", title), func() error {
				e := domain.Expense{
					Title:       title,
					Amount:      parseAmount(amount),
					Category:    domain.ExpenseCategory(category),
					Description: description,
				}
				if d := parseOptionalDate(date); d != nil {
					e.Date = *d
				}
				_, err := app.Session.AddExpense(e)
				return err
			}),
			refreshViews(),
		)
	})
}

func (v *expenseListView) editExpenseWizard() tea.Cmd {
	e := v.currentExpense()
	if e == nil {
		return nil
	}

	title := e.Title
	amount := fmt.Sprintf("%.2f", e.Amount)
	category := string(e.Category)
	description := e.Description
	date := e.Date.Format("2006-01-02")
	expenseID := e.ID

	form := expenseForm(&title, &amount, &category, &description, &date)
	return startWizard(v.state, "Edit Expense", form, func() tea.Cmd {
		app := v.state.App
		return tea.Batch(
			mutate(v.state, app.T("expense.updated", title), func() error {
				amt := parseAmount(amount)
				cat := domain.ExpenseCategory(category)
				patch := session.ExpensePatch{
					Title:       &title,
					Amount:      &amt,
					Category:    &cat,
					Description: &description,
					Date:        parseOptionalDate(date),
				}
				return app.Session.UpdateExpense(expenseID, patch)
			}),
			refreshViews(),
		)
	})
}

func (v *expenseListView) deleteExpenseWizard() tea.Cmd {
	e := v.currentExpense()
	if e == nil {
		return nil
	}
	expenseID, title := e.ID, e.Title

	confirmed := false
	form := confirmForm(fmt.Sprintf("Delete expense %q?", title), &confirmed)
	return startWizard(v.state, "Delete Expense", form, func() tea.Cmd {
		if !confirmed {
			return nil
		}
		app := v.state.App
		return tea.Batch(
			mutate(v.state, app.T("expense.deleted"), func() error {
				return app.Session.DeleteExpense(expenseID)
			}),
			refreshViews(),
		)
	})
}

func (v *expenseListView) decideCmd(status domain.ExpenseStatus) tea.Cmd {
	if v.state.Claims.Role != domain.RoleAdmin {
		return setStatus(v.state.App.T("access.denied", string(v.state.Claims.Role), "expense approval"))
	}
	e := v.currentExpense()
	if e == nil {
		return nil
	}

	app := v.state.App
	expenseID, title := e.ID, e.Title
	reviewer := v.state.Claims.Name
	return tea.Batch(
		mutate(v.state, app.T("expense.updated", title), func() error {
			patch := session.ExpensePatch{
				Status:     &status,
				ApprovedBy: &reviewer,
			}
			return app.Session.UpdateExpense(expenseID, patch)
		}),
		refreshViews(),
	)
}

func (v *expenseListView) View() string {
	sel := v.state.App.Session.Selected()
	if sel == nil {
		return "\n  " + formatter.Dim(v.state.App.T("project.none_selected"))
	}

	expenses := v.expenses()
	if len(expenses) == 0 {
		return "\n  " + formatter.Dim("No expenses yet.") +
			"  " + formatter.Dim("(press 'n' to add one)")
	}

	var b strings.Builder
	b.WriteString("\n")

	total := 0.0
	for i, e := range expenses {
		cursor := "  "
		style := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			style = formatter.StyleBold
		}

		b.WriteString(fmt.Sprintf("%s%s  %s %s  %s  %s\n",
			cursor,
			style.Render(formatter.PadRight(e.Title, 26)),
			formatter.CategoryBadge(string(e.Category)),
			formatter.ExpenseStatusPill(e.Status),
			formatter.Money(e.Amount),
			formatter.Dim(formatter.HumanDate(e.Date)),
		))
		if e.Status != domain.ExpenseRejected {
			total += e.Amount
		}
	}

	b.WriteString("\n  " + formatter.Dim("Total (excl. rejected): ") + formatter.Bold(formatter.Money(total)) + "\n")
	return b.String()
}
