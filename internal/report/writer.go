package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// WriteJSON renders the report as indented JSON.
func WriteJSON(w io.Writer, r *ProjectReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteText renders a plain-text report suitable for terminals and files.
func WriteText(w io.Writer, r *ProjectReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Project Report: %s\n", r.Title)
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Status: %s", r.Status)
	if r.Location != "" {
		fmt.Fprintf(&b, "  Location: %s", r.Location)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Start: %s", r.StartDate.Format("2006-01-02"))
	if r.EndDate != nil {
		fmt.Fprintf(&b, "  End: %s", r.EndDate.Format("2006-01-02"))
	}
	b.WriteString("\n\n")

	b.WriteString("Budget\n")
	fmt.Fprintf(&b, "  Limit:     %12.2f\n", r.Budget.Limit)
	fmt.Fprintf(&b, "  Spend:     %12.2f\n", r.Budget.Spend)
	fmt.Fprintf(&b, "  Remaining: %12.2f\n", r.Budget.Remaining)
	if r.Budget.OverBudget {
		b.WriteString("  ** OVER BUDGET **\n")
	}
	if r.PendingApproval > 0 {
		fmt.Fprintf(&b, "  Awaiting approval: %.2f\n", r.PendingApproval)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Tasks (%d total, %.0f%% complete)\n", r.Tasks.Total, r.CompletionPct())
	fmt.Fprintf(&b, "  Done: %d  In progress: %d  Todo: %d", r.Tasks.Done, r.Tasks.InProgress, r.Tasks.Todo)
	if r.Tasks.Overdue > 0 {
		fmt.Fprintf(&b, "  Overdue: %d", r.Tasks.Overdue)
	}
	b.WriteString("\n\n")

	if len(r.ExpensesByCategory) > 0 {
		b.WriteString("Expenses by category\n")
		for _, ct := range r.ExpensesByCategory {
			fmt.Fprintf(&b, "  %-10s %3d item(s) %12.2f\n", ct.Category, ct.Count, ct.Amount)
		}
		b.WriteString("\n")
	}

	if len(r.Inventory) > 0 {
		b.WriteString("Inventory\n")
		for _, it := range r.Inventory {
			fmt.Fprintf(&b, "  %-24s %s  used %.1f, remaining %.1f %s  cost %.2f\n",
				it.Name, it.Status, it.Used, it.Remaining, it.Unit, it.TotalCost)
		}
		b.WriteString("\n")
	}

	if len(r.Team) > 0 {
		b.WriteString("Team\n")
		for _, m := range r.Team {
			fmt.Fprintf(&b, "  %-24s %-16s done %d, active %d, efficiency %.0f%%\n",
				m.Name, m.Role, m.TasksCompleted, m.TasksInProgress, m.Efficiency)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
