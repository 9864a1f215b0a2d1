package domain

import "time"

// ApprovalInfo carries the reviewer's decision details for an expense.
type ApprovalInfo struct {
	ApprovedBy string
	Notes      string
	UpdatedAt  *time.Time
}

type Expense struct {
	ID          string
	Title       string
	Date        time.Time
	Category    ExpenseCategory
	Description string
	Amount      float64
	Status      ExpenseStatus
	Approval    ApprovalInfo
}

// Clone returns a copy of the expense with no shared pointers.
func (e Expense) Clone() Expense {
	cp := e
	if e.Approval.UpdatedAt != nil {
		d := *e.Approval.UpdatedAt
		cp.Approval.UpdatedAt = &d
	}
	return cp
}
