package domain

import "time"

// Progress holds per-status task counters for a project.
type Progress struct {
	Done       int
	InProgress int
	Todo       int
}

type Project struct {
	ID          string
	Title       string
	Description string
	Admin       string
	BudgetLimit float64
	Spend       float64
	Progress    Progress
	Location    string
	StartDate   time.Time
	EndDate     *time.Time
	Status      ProjectStatus

	// Optional client account IDs with visibility into this project.
	Clients []string

	Tasks     []Task
	Team      []Worker
	Inventory []InventoryItem
	Expenses  []Expense

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy of the project, including all nested collections.
// Snapshots handed to the edit session must never alias the original slices.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	cp := *p
	if p.EndDate != nil {
		d := *p.EndDate
		cp.EndDate = &d
	}
	cp.Clients = append([]string(nil), p.Clients...)
	cp.Tasks = make([]Task, len(p.Tasks))
	for i := range p.Tasks {
		cp.Tasks[i] = p.Tasks[i].Clone()
	}
	cp.Team = make([]Worker, len(p.Team))
	for i := range p.Team {
		cp.Team[i] = p.Team[i].Clone()
	}
	cp.Inventory = make([]InventoryItem, len(p.Inventory))
	copy(cp.Inventory, p.Inventory)
	cp.Expenses = make([]Expense, len(p.Expenses))
	for i := range p.Expenses {
		cp.Expenses[i] = p.Expenses[i].Clone()
	}
	return &cp
}

// RefreshTotals recomputes the derived progress counters and current spend
// from the nested collections. Rejected expenses do not count toward spend.
func (p *Project) RefreshTotals() {
	var prog Progress
	for _, t := range p.Tasks {
		switch t.Status {
		case TaskDone:
			prog.Done++
		case TaskInProgress:
			prog.InProgress++
		default:
			prog.Todo++
		}
	}
	p.Progress = prog

	var spend float64
	for _, e := range p.Expenses {
		if e.Status != ExpenseRejected {
			spend += e.Amount
		}
	}
	p.Spend = spend
}

// OverBudget reports whether current spend exceeds the budget limit.
// Projects with no limit set are never over budget.
func (p *Project) OverBudget() bool {
	return p.BudgetLimit > 0 && p.Spend > p.BudgetLimit
}

// DisplayID returns a short identifier for headers and breadcrumbs.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
