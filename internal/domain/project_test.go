package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProject() *Project {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return &Project{
		ID:          "p1",
		Title:       "Riverside Apartments",
		Admin:       "Ana",
		BudgetLimit: 50000,
		Clients:     []string{"c1"},
		Tasks: []Task{
			{ID: "t1", Title: "Pour foundation", Status: TaskDone},
			{ID: "t2", Title: "Frame walls", Status: TaskInProgress, DueDate: &due},
			{ID: "t3", Title: "Wiring", Status: TaskTodo},
		},
		Team: []Worker{
			{ID: "w1", Name: "Luis", Skills: []string{"concrete", "masonry"}},
		},
		Inventory: []InventoryItem{
			{ID: "i1", Name: "Cement", Category: InventoryMaterials, TotalQty: 100, UsedQty: 40, Unit: "bag", UnitCost: 8},
		},
		Expenses: []Expense{
			{ID: "e1", Title: "Cement delivery", Amount: 800, Status: ExpenseApproved},
			{ID: "e2", Title: "Crane rental", Amount: 1200, Status: ExpensePending},
			{ID: "e3", Title: "Duplicate invoice", Amount: 500, Status: ExpenseRejected},
		},
	}
}

func TestProjectClone_Independent(t *testing.T) {
	p := sampleProject()
	cp := p.Clone()

	require.Equal(t, p, cp)

	// Mutating the clone must not leak into the original.
	cp.Tasks[0].Status = TaskTodo
	cp.Team[0].Skills[0] = "demolition"
	cp.Expenses[1].Amount = 9999
	cp.Clients[0] = "other"
	*cp.Tasks[1].DueDate = cp.Tasks[1].DueDate.AddDate(1, 0, 0)

	assert.Equal(t, TaskDone, p.Tasks[0].Status)
	assert.Equal(t, "concrete", p.Team[0].Skills[0])
	assert.Equal(t, float64(1200), p.Expenses[1].Amount)
	assert.Equal(t, "c1", p.Clients[0])
	assert.Equal(t, 2026, p.Tasks[1].DueDate.Year())
}

func TestRefreshTotals(t *testing.T) {
	p := sampleProject()
	p.RefreshTotals()

	assert.Equal(t, Progress{Done: 1, InProgress: 1, Todo: 1}, p.Progress)
	// Rejected expenses are excluded from spend.
	assert.Equal(t, float64(2000), p.Spend)
	assert.False(t, p.OverBudget())

	p.BudgetLimit = 1500
	assert.True(t, p.OverBudget())
}

func TestInventoryItem_RemainingQty(t *testing.T) {
	i := InventoryItem{TotalQty: 10, UsedQty: 12}
	assert.Equal(t, float64(0), i.RemainingQty(), "overconsumption clamps to zero")

	i.UsedQty = 4
	assert.Equal(t, float64(6), i.RemainingQty())
}

func TestTask_Overdue(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3)

	assert.True(t, Task{DueDate: &past, Status: TaskTodo}.Overdue(now))
	assert.False(t, Task{DueDate: &past, Status: TaskDone}.Overdue(now), "done tasks are never overdue")
	assert.False(t, Task{Status: TaskTodo}.Overdue(now), "no due date means never overdue")
}
