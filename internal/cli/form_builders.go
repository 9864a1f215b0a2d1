package cli

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/obradev/obra/internal/domain"
	"github.com/obradev/obra/internal/session"
)

func obraHuhTheme() *huh.Theme {
	return huh.ThemeBase16()
}

func validateRequired(s string) error {
	if s == "" {
		return errors.New("required")
	}
	return nil
}

// validateOptionalDate accepts empty input or a YYYY-MM-DD date.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func validatePositiveAmount(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return errors.New("enter a positive number")
	}
	return nil
}

func validateNonNegativeAmount(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return errors.New("enter a non-negative number")
	}
	return nil
}

func loginForm(app *App, email, password *string, remember *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(app.T("auth.login.email")).
				Placeholder("you@company.com").
				Value(email).
				Validate(validateRequired),
			huh.NewInput().
				Title(app.T("auth.login.password")).
				EchoMode(huh.EchoModePassword).
				Value(password).
				Validate(validateRequired),
			huh.NewConfirm().
				Title(app.T("auth.login.remember")).
				Value(remember),
		),
	).WithTheme(obraHuhTheme()).WithShowHelp(false)
}

// taskForm collects the fields of a new or edited task. assignees lists the
// current team for the worker picker; a blank option keeps it unassigned.
func taskForm(title, description, assignee, due *string, status *string, team []domain.Worker) *huh.Form {
	assigneeOpts := []huh.Option[string]{huh.NewOption("(unassigned)", "")}
	names := make([]string, 0, len(team))
	for _, w := range team {
		names = append(names, w.Name)
	}
	sort.Strings(names)
	for _, n := range names {
		assigneeOpts = append(assigneeOpts, huh.NewOption(n, n))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(title).
				Validate(validateRequired),
			huh.NewText().
				Title("Description").
				Lines(3).
				Value(description),
			huh.NewSelect[string]().
				Title("Assignee").
				Options(assigneeOpts...).
				Value(assignee),
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Todo", string(domain.TaskTodo)),
					huh.NewOption("In Progress", string(domain.TaskInProgress)),
					huh.NewOption("Done", string(domain.TaskDone)),
				).
				Value(status),
			huh.NewInput().
				Title("Due Date (YYYY-MM-DD, blank for none)").
				Placeholder("2026-09-30").
				Value(due).
				Validate(validateOptionalDate),
		),
	).WithTheme(obraHuhTheme()).WithShowHelp(false)
}

// expenseForm collects the fields of a new or edited expense.
func expenseForm(title, amount, category, description, date *string) *huh.Form {
	categoryOpts := make([]huh.Option[string], 0, len(domain.ValidExpenseCategories))
	for _, c := range []domain.ExpenseCategory{
		domain.ExpenseMaterials,
		domain.ExpenseProducts,
		domain.ExpenseLabour,
		domain.ExpenseTransport,
		domain.ExpenseOthers,
	} {
		categoryOpts = append(categoryOpts, huh.NewOption(string(c), string(c)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(title).
				Validate(validateRequired),
			huh.NewInput().
				Title("Amount").
				Placeholder("250.00").
				Value(amount).
				Validate(validatePositiveAmount),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOpts...).
				Value(category),
			huh.NewText().
				Title("Description").
				Lines(2).
				Value(description),
			huh.NewInput().
				Title("Date (YYYY-MM-DD, blank for today)").
				Value(date).
				Validate(validateOptionalDate),
		),
	).WithTheme(obraHuhTheme()).WithShowHelp(false)
}

// inventoryForm collects the fields of a new or edited inventory item.
func inventoryForm(name, category, totalQty, usedQty, unit, unitCost, supplier, status *string) *huh.Form {
	categoryOpts := make([]huh.Option[string], 0, 4)
	for _, c := range []domain.InventoryCategory{
		domain.InventoryServices,
		domain.InventoryMaterials,
		domain.InventoryProducts,
		domain.InventoryLabour,
	} {
		categoryOpts = append(categoryOpts, huh.NewOption(string(c), string(c)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(name).
				Validate(validateRequired),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOpts...).
				Value(category),
			huh.NewInput().
				Title("Total Quantity").
				Placeholder("100").
				Value(totalQty).
				Validate(validatePositiveAmount),
			huh.NewInput().
				Title("Used Quantity").
				Placeholder("0").
				Value(usedQty).
				Validate(validateNonNegativeAmount),
			huh.NewInput().
				Title("Unit").
				Placeholder("bags").
				Value(unit).
				Validate(validateRequired),
			huh.NewInput().
				Title("Unit Cost").
				Placeholder("8.50").
				Value(unitCost).
				Validate(validatePositiveAmount),
			huh.NewInput().
				Title("Supplier").
				Value(supplier),
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("In Budget", string(domain.InventoryInBudget)),
					huh.NewOption("Pending", string(domain.InventoryPending)),
					huh.NewOption("Installed", string(domain.InventoryInstalled)),
				).
				Value(status),
		),
	).WithTheme(obraHuhTheme()).WithShowHelp(false)
}

// conflictForm presents the three-way unsaved-changes choice.
func conflictForm(app *App, changeCount int, choice *session.SwitchChoice) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[session.SwitchChoice]().
				Title(app.T("conflict.prompt", changeCount)).
				Options(
					huh.NewOption(app.T("conflict.save_switch"), session.SaveAndSwitch),
					huh.NewOption(app.T("conflict.discard_switch"), session.DiscardAndSwitch),
					huh.NewOption(app.T("conflict.cancel"), session.CancelSwitch),
				).
				Value(choice),
		),
	).WithTheme(obraHuhTheme()).WithShowHelp(false)
}

// workerForm collects the contact fields of a new team member.
func workerForm(name, role, phone, contact *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(name).
				Validate(validateRequired),
			huh.NewInput().
				Title("Trade / Position").
				Placeholder("Electrician").
				Value(role),
			huh.NewInput().
				Title("Phone").
				Value(phone),
			huh.NewInput().
				Title("Email / Contact").
				Value(contact),
		),
	).WithTheme(obraHuhTheme()).WithShowHelp(false)
}

// quantityForm is a single positive-amount prompt.
func quantityForm(title string, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder("10").
				Value(value).
				Validate(validatePositiveAmount),
		),
	).WithTheme(obraHuhTheme()).WithShowHelp(false)
}

// confirmForm is a single yes/no prompt.
func confirmForm(title string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Value(value),
		),
	).WithTheme(obraHuhTheme()).WithShowHelp(false)
}

// parseAmount converts a validated form string to a float.
func parseAmount(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// parseOptionalDate converts a validated form string to a time pointer.
func parseOptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// fmtOptionalDate renders a time pointer back to form input format.
func fmtOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
