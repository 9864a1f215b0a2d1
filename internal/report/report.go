// Package report assembles project summaries for export.
package report

import (
	"sort"
	"time"

	"github.com/obradev/obra/internal/domain"
)

// ProjectReport is a point-in-time financial and progress summary of a
// single project, assembled entirely from the in-memory model.
type ProjectReport struct {
	GeneratedAt time.Time `json:"generated_at"`

	ProjectID   string               `json:"project_id"`
	Title       string               `json:"title"`
	Status      domain.ProjectStatus `json:"status"`
	Location    string               `json:"location,omitempty"`
	StartDate   time.Time            `json:"start_date"`
	EndDate     *time.Time           `json:"end_date,omitempty"`

	Budget BudgetSummary `json:"budget"`
	Tasks  TaskSummary   `json:"tasks"`

	ExpensesByCategory []CategoryTotal `json:"expenses_by_category"`
	PendingApproval    float64         `json:"pending_approval"`

	Inventory []InventoryLine `json:"inventory"`
	Team      []TeamLine      `json:"team"`
}

type BudgetSummary struct {
	Limit      float64 `json:"limit"`
	Spend      float64 `json:"spend"`
	Remaining  float64 `json:"remaining"`
	OverBudget bool    `json:"over_budget"`
}

type TaskSummary struct {
	Total      int `json:"total"`
	Done       int `json:"done"`
	InProgress int `json:"in_progress"`
	Todo       int `json:"todo"`
	Overdue    int `json:"overdue"`
}

type CategoryTotal struct {
	Category domain.ExpenseCategory `json:"category"`
	Count    int                    `json:"count"`
	Amount   float64                `json:"amount"`
}

type InventoryLine struct {
	Name      string                   `json:"name"`
	Category  domain.InventoryCategory `json:"category"`
	Used      float64                  `json:"used"`
	Remaining float64                  `json:"remaining"`
	Unit      string                   `json:"unit"`
	TotalCost float64                  `json:"total_cost"`
	Status    domain.InventoryStatus   `json:"status"`
}

type TeamLine struct {
	Name            string  `json:"name"`
	Role            string  `json:"role"`
	TasksCompleted  int     `json:"tasks_completed"`
	TasksInProgress int     `json:"tasks_in_progress"`
	Efficiency      float64 `json:"efficiency"`
}

// Build assembles a report for p as of now. Rejected expenses are excluded
// from both the spend figure and the per-category totals.
func Build(p *domain.Project, now time.Time) *ProjectReport {
	r := &ProjectReport{
		GeneratedAt: now,
		ProjectID:   p.ID,
		Title:       p.Title,
		Status:      p.Status,
		Location:    p.Location,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
	}

	r.Tasks.Total = len(p.Tasks)
	for _, t := range p.Tasks {
		switch t.Status {
		case domain.TaskDone:
			r.Tasks.Done++
		case domain.TaskInProgress:
			r.Tasks.InProgress++
		default:
			r.Tasks.Todo++
		}
		if t.Overdue(now) {
			r.Tasks.Overdue++
		}
	}

	byCat := map[domain.ExpenseCategory]*CategoryTotal{}
	var spend float64
	for _, e := range p.Expenses {
		if e.Status == domain.ExpenseRejected {
			continue
		}
		spend += e.Amount
		if e.Status == domain.ExpensePending {
			r.PendingApproval += e.Amount
		}
		ct, ok := byCat[e.Category]
		if !ok {
			ct = &CategoryTotal{Category: e.Category}
			byCat[e.Category] = ct
		}
		ct.Count++
		ct.Amount += e.Amount
	}
	for _, ct := range byCat {
		r.ExpensesByCategory = append(r.ExpensesByCategory, *ct)
	}
	sort.Slice(r.ExpensesByCategory, func(i, j int) bool {
		return r.ExpensesByCategory[i].Amount > r.ExpensesByCategory[j].Amount
	})

	r.Budget = BudgetSummary{
		Limit:     p.BudgetLimit,
		Spend:     spend,
		Remaining: p.BudgetLimit - spend,
	}
	r.Budget.OverBudget = p.BudgetLimit > 0 && spend > p.BudgetLimit

	for _, it := range p.Inventory {
		r.Inventory = append(r.Inventory, InventoryLine{
			Name:      it.Name,
			Category:  it.Category,
			Used:      it.UsedQty,
			Remaining: it.RemainingQty(),
			Unit:      it.Unit,
			TotalCost: it.TotalCost(),
			Status:    it.Status,
		})
	}

	for _, w := range p.Team {
		r.Team = append(r.Team, TeamLine{
			Name:            w.Name,
			Role:            w.Role,
			TasksCompleted:  w.TasksCompleted,
			TasksInProgress: w.TasksInProgress,
			Efficiency:      w.Efficiency,
		})
	}

	return r
}

// CompletionPct returns task completion as a 0..100 percentage.
func (r *ProjectReport) CompletionPct() float64 {
	if r.Tasks.Total == 0 {
		return 0
	}
	return float64(r.Tasks.Done) / float64(r.Tasks.Total) * 100
}
