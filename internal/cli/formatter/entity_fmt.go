package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/obradev/obra/internal/domain"
)

// FormatTaskList renders the tasks of a project grouped by status.
func FormatTaskList(tasks []domain.Task, now time.Time) string {
	if len(tasks) == 0 {
		return Dim("No tasks.")
	}

	groups := []struct {
		status domain.TaskStatus
		label  string
	}{
		{domain.TaskInProgress, "In Progress"},
		{domain.TaskTodo, "Todo"},
		{domain.TaskDone, "Done"},
	}

	var b strings.Builder
	for _, g := range groups {
		var rows [][]string
		for _, t := range tasks {
			if t.Status != g.status {
				continue
			}
			due := Dim("--")
			if t.DueDate != nil {
				due = RelativeDateStyled(*t.DueDate)
				if t.Overdue(now) {
					due += " " + StyleRed.Render("!")
				}
			}
			assignee := Dim("unassigned")
			if t.Assignee != "" {
				assignee = StyleFg.Render(t.Assignee)
			}
			rows = append(rows, []string{TruncID(t.ID), Bold(t.Title), assignee, due})
		}
		if len(rows) == 0 {
			continue
		}
		b.WriteString(Header(g.label) + "\n")
		b.WriteString(RenderTable([]string{"ID", "TITLE", "ASSIGNEE", "DUE"}, rows))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatExpenseList renders the expense table for a project.
func FormatExpenseList(expenses []domain.Expense) string {
	if len(expenses) == 0 {
		return Dim("No expenses.")
	}

	headers := []string{"ID", "TITLE", "CATEGORY", "AMOUNT", "STATUS", "DATE"}
	rows := make([][]string, 0, len(expenses))
	var total float64

	for _, e := range expenses {
		rows = append(rows, []string{
			TruncID(e.ID),
			Bold(e.Title),
			CategoryBadge(string(e.Category)),
			Money(e.Amount),
			ExpenseStatusPill(e.Status),
			HumanDate(e.Date),
		})
		if e.Status != domain.ExpenseRejected {
			total += e.Amount
		}
	}

	table := RenderTable(headers, rows)
	footer := fmt.Sprintf("\n%s %s", Dim("Total (excl. rejected):"), Bold(Money(total)))
	return table + footer
}

// FormatExpenseDetail renders one expense with its approval trail.
func FormatExpenseDetail(e domain.Expense) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(e.Title) + "  " + ExpenseStatusPill(e.Status) + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("AMOUNT  "), Bold(Money(e.Amount))))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("CATEGORY"), CategoryBadge(string(e.Category))))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("DATE    "), HumanDate(e.Date)))
	if e.Description != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", Dim("NOTES   "), StyleFg.Render(e.Description)))
	}
	if e.Approval.ApprovedBy != "" {
		b.WriteString("\n" + Dim("Reviewed by ") + StyleFg.Render(e.Approval.ApprovedBy))
		if e.Approval.UpdatedAt != nil {
			b.WriteString(Dim(" " + HumanTimestamp(*e.Approval.UpdatedAt)))
		}
		b.WriteString("\n")
		if e.Approval.Notes != "" {
			b.WriteString(Dim("  " + e.Approval.Notes) + "\n")
		}
	}
	return RenderBox("Expense", strings.TrimRight(b.String(), "\n"))
}

// FormatInventoryList renders the inventory table for a project.
func FormatInventoryList(items []domain.InventoryItem) string {
	if len(items) == 0 {
		return Dim("No inventory items.")
	}

	headers := []string{"ID", "NAME", "CATEGORY", "USED", "REMAINING", "COST", "STATUS"}
	rows := make([][]string, 0, len(items))
	var totalCost float64

	for _, it := range items {
		rows = append(rows, []string{
			TruncID(it.ID),
			Bold(it.Name),
			CategoryBadge(string(it.Category)),
			Qty(it.UsedQty) + " " + Dim(it.Unit),
			Qty(it.RemainingQty()) + " " + Dim(it.Unit),
			Money(it.TotalCost()),
			InventoryStatusPill(it.Status),
		})
		totalCost += it.TotalCost()
	}

	table := RenderTable(headers, rows)
	footer := fmt.Sprintf("\n%s %s", Dim("Total stock value:"), Bold(Money(totalCost)))
	return table + footer
}

// FormatTeamList renders the team roster for a project.
func FormatTeamList(team []domain.Worker) string {
	if len(team) == 0 {
		return Dim("No team members.")
	}

	headers := []string{"NAME", "ROLE", "CONTACT", "DONE", "ACTIVE", "EFFICIENCY"}
	rows := make([][]string, 0, len(team))

	for _, w := range team {
		contact := w.Contact
		if contact == "" {
			contact = w.Phone
		}
		rows = append(rows, []string{
			Bold(w.Name),
			StyleFg.Render(w.Role),
			Dim(contact),
			StyleGreen.Render(fmt.Sprintf("%d", w.TasksCompleted)),
			StyleYellow.Render(fmt.Sprintf("%d", w.TasksInProgress)),
			RenderProgress(w.Efficiency/100, 8),
		})
	}

	return RenderTable(headers, rows)
}

// FormatNotifications renders the notification feed, unread entries bold.
func FormatNotifications(notes []*domain.Notification) string {
	if len(notes) == 0 {
		return Dim("No notifications.")
	}

	var b strings.Builder
	for _, n := range notes {
		marker := Dim("·")
		msgStyle := StyleDim
		if !n.Read {
			marker = StyleYellow.Render("●")
			msgStyle = StyleFg
		}
		b.WriteString(fmt.Sprintf("%s %s  %s %s\n",
			marker,
			msgStyle.Render(n.Message),
			Dim(string(n.Kind)),
			Dim(HumanTimestamp(n.CreatedAt)),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatPendingChanges renders the edit session's dirty set as a short
// summary for save previews and the switch-conflict prompt.
func FormatPendingChanges(changes []domain.PendingChange) string {
	if len(changes) == 0 {
		return Dim("No pending changes.")
	}

	var b strings.Builder
	for _, c := range changes {
		var label string
		switch c.Kind {
		case domain.KindTask:
			label = "task " + changeTitle(c.Task != nil, func() string { return c.Task.Title })
		case domain.KindExpense:
			label = "expense " + changeTitle(c.Expense != nil, func() string { return c.Expense.Title })
		case domain.KindInventory:
			label = "inventory " + changeTitle(c.Inventory != nil, func() string { return c.Inventory.Name })
		case domain.KindTeam:
			label = "team member " + changeTitle(c.Worker != nil, func() string { return c.Worker.Name })
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", opBadge(c.Op), StyleFg.Render(label)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func changeTitle(ok bool, title func() string) string {
	if ok {
		return "“" + title() + "”"
	}
	return "(removed)"
}

func opBadge(op domain.ChangeOp) string {
	switch op {
	case domain.OpCreate:
		return StyleGreen.Render("+")
	case domain.OpUpdate:
		return StyleYellow.Render("~")
	case domain.OpDelete:
		return StyleRed.Render("-")
	default:
		return Dim("?")
	}
}
