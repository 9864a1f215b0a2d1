package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obradev/obra/internal/access"
	"github.com/obradev/obra/internal/cli/formatter"
	"github.com/obradev/obra/internal/domain"
	"github.com/obradev/obra/internal/session"
)

func newExpenseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Manage expenses on the selected project",
	}

	cmd.AddCommand(
		newExpenseListCmd(app),
		newExpenseShowCmd(app),
		newExpenseAddCmd(app),
		newExpenseUpdateCmd(app),
		newExpenseDecisionCmd(app, "approve", domain.ExpenseApproved, "Approve a pending expense"),
		newExpenseDecisionCmd(app, "reject", domain.ExpenseRejected, "Reject a pending expense"),
		newExpenseRemoveCmd(app),
	)

	return cmd
}

func expenseContext(ctx context.Context, app *App) error {
	if _, err := requireSection(ctx, app, access.SectionExpenses); err != nil {
		return err
	}
	return requireSelected(ctx, app)
}

func resolveExpenseID(app *App, input string) (string, error) {
	expenses := app.Session.Selected().Expenses
	for _, e := range expenses {
		if e.ID == input {
			return e.ID, nil
		}
	}
	var matches []string
	for _, e := range expenses {
		if len(input) >= 4 && len(e.ID) >= len(input) && e.ID[:len(input)] == input {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("expense not found: %q", input)
	default:
		return "", fmt.Errorf("expense ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newExpenseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := expenseContext(ctx, app); err != nil {
				return err
			}
			fmt.Println(formatter.FormatExpenseList(app.Session.Selected().Expenses))
			return nil
		},
	}
}

func newExpenseShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one expense with its approval trail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := expenseContext(ctx, app); err != nil {
				return err
			}
			id, err := resolveExpenseID(app, args[0])
			if err != nil {
				return err
			}
			for _, e := range app.Session.Selected().Expenses {
				if e.ID == id {
					fmt.Println(formatter.FormatExpenseDetail(e))
					return nil
				}
			}
			return session.ErrEntityNotFound
		},
	}
}

func newExpenseAddCmd(app *App) *cobra.Command {
	var title, category, description, date string
	var amount float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Stage a new expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := expenseContext(ctx, app); err != nil {
				return err
			}

			if title == "" {
				if !app.Interactive {
					return fmt.Errorf("--title and --amount are required in non-interactive mode")
				}
				amountStr := ""
				category = string(domain.ExpenseMaterials)
				form := expenseForm(&title, &amountStr, &category, &description, &date)
				if err := form.Run(); err != nil {
					return err
				}
				amount = parseAmount(amountStr)
			}

			if category != "" && !domain.ValidExpenseCategories[category] {
				return fmt.Errorf("invalid category %q", category)
			}
			if category == "" {
				category = string(domain.ExpenseOthers)
			}

			e := domain.Expense{
				Title:       title,
				Category:    domain.ExpenseCategory(category),
				Description: description,
				Amount:      amount,
			}
			if d := parseOptionalDate(date); d != nil {
				e.Date = *d
			}

			created, err := app.Session.AddExpense(e)
			if err != nil {
				return err
			}
			if err := persistSession(ctx, app); err != nil {
				return err
			}

			fmt.Println(app.T("expense.created", created.Title))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Expense title")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount")
	cmd.Flags().StringVar(&category, "category", "", "Category (Materials|Products|Labour|Transport|Others)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, defaults to today)")

	return cmd
}

func newExpenseUpdateCmd(app *App) *cobra.Command {
	var title, category, description, date string
	var amount float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Stage changes to an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := expenseContext(ctx, app); err != nil {
				return err
			}
			id, err := resolveExpenseID(app, args[0])
			if err != nil {
				return err
			}

			var patch session.ExpensePatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("amount") {
				patch.Amount = &amount
			}
			if cmd.Flags().Changed("category") {
				if !domain.ValidExpenseCategories[category] {
					return fmt.Errorf("invalid category %q", category)
				}
				c := domain.ExpenseCategory(category)
				patch.Category = &c
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("date") {
				d := parseOptionalDate(date)
				if d == nil {
					return fmt.Errorf("invalid date %q", date)
				}
				patch.Date = d
			}

			if err := app.Session.UpdateExpense(id, patch); err != nil {
				return err
			}
			if err := persistSession(ctx, app); err != nil {
				return err
			}

			fmt.Println(app.T("expense.updated", expenseTitle(app, id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Expense title")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")

	return cmd
}

// newExpenseDecisionCmd builds the approve/reject commands. Only admins may
// decide; the decision records the reviewer and stamps the approval trail.
func newExpenseDecisionCmd(app *App, use string, status domain.ExpenseStatus, short string) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			claims, err := requireSection(ctx, app, access.SectionExpenses)
			if err != nil {
				return err
			}
			if claims.Role != domain.RoleAdmin {
				return fmt.Errorf("%s", app.T("access.denied", claims.Role, "expense approval"))
			}
			if err := requireSelected(ctx, app); err != nil {
				return err
			}
			id, err := resolveExpenseID(app, args[0])
			if err != nil {
				return err
			}

			s := status
			patch := session.ExpensePatch{
				Status:     &s,
				ApprovedBy: &claims.Name,
			}
			if notes != "" {
				patch.Notes = &notes
			}
			if err := app.Session.UpdateExpense(id, patch); err != nil {
				return err
			}
			if err := persistSession(ctx, app); err != nil {
				return err
			}

			fmt.Println(app.T("expense.updated", expenseTitle(app, id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Reviewer notes")

	return cmd
}

func newExpenseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Stage an expense deletion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := expenseContext(ctx, app); err != nil {
				return err
			}
			id, err := resolveExpenseID(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Session.DeleteExpense(id); err != nil {
				return err
			}
			if err := persistSession(ctx, app); err != nil {
				return err
			}
			fmt.Println(app.T("expense.deleted"))
			return nil
		},
	}
}

func expenseTitle(app *App, id string) string {
	for _, e := range app.Session.Selected().Expenses {
		if e.ID == id {
			return e.Title
		}
	}
	return id
}
