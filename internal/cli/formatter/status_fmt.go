package formatter

import (
	"fmt"
	"strings"

	"github.com/obradev/obra/internal/domain"
)

// StatusPill returns a colored status indicator for project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectPlanning:
		return StyleBlue.Render("◌ Planning")
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ On Hold")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	default:
		return StyleDim.Render(string(status))
	}
}

// TaskStatusPill returns a colored status indicator for task status.
func TaskStatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.TaskTodo:
		return StyleBlue.Render("○ Todo")
	case domain.TaskInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.TaskDone:
		return StyleGreen.Render("✔ Done")
	default:
		return StyleDim.Render(string(status))
	}
}

// ExpenseStatusPill returns a colored approval indicator for an expense.
func ExpenseStatusPill(status domain.ExpenseStatus) string {
	switch status {
	case domain.ExpensePending:
		return StyleYellow.Render("◌ Pending")
	case domain.ExpenseApproved:
		return StyleGreen.Render("✔ Approved")
	case domain.ExpenseRejected:
		return StyleRed.Render("✖ Rejected")
	default:
		return StyleDim.Render(string(status))
	}
}

// InventoryStatusPill returns a colored indicator for an inventory item.
func InventoryStatusPill(status domain.InventoryStatus) string {
	switch status {
	case domain.InventoryInstalled:
		return StyleGreen.Render("✔ Installed")
	case domain.InventoryPending:
		return StyleYellow.Render("◌ Pending")
	case domain.InventoryInBudget:
		return StyleBlue.Render("● In Budget")
	default:
		return StyleDim.Render(string(status))
	}
}

// CategoryBadge returns a purple-styled category label.
func CategoryBadge(c string) string {
	if c == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(c)
}

// RoleBadge returns a styled role label for headers.
func RoleBadge(r domain.Role) string {
	label := strings.ToUpper(string(r))
	switch r {
	case domain.RoleAdmin:
		return StyleHeader.Render(label)
	case domain.RoleClient:
		return StyleBlue.Render(label)
	case domain.RoleWorker:
		return StyleGreen.Render(label)
	default:
		return StyleDim.Render(label)
	}
}

// DirtyBadge returns the unsaved-changes marker for the header bar.
func DirtyBadge(count int) string {
	if count <= 0 {
		return ""
	}
	return StyleYellow.Render("●") + Dim(fmt.Sprintf(" %d unsaved", count))
}
