package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/obradev/obra/internal/domain"
)

var fixtureCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithBudget(limit float64) ProjectOption {
	return func(p *domain.Project) {
		p.BudgetLimit = limit
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithProjectID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ID = id
	}
}

func WithTasks(tasks ...domain.Task) ProjectOption {
	return func(p *domain.Project) {
		p.Tasks = append(p.Tasks, tasks...)
		p.RefreshTotals()
	}
}

func WithExpenses(expenses ...domain.Expense) ProjectOption {
	return func(p *domain.Project) {
		p.Expenses = append(p.Expenses, expenses...)
		p.RefreshTotals()
	}
}

func WithTeam(workers ...domain.Worker) ProjectOption {
	return func(p *domain.Project) {
		p.Team = append(p.Team, workers...)
	}
}

func WithInventory(items ...domain.InventoryItem) ProjectOption {
	return func(p *domain.Project) {
		p.Inventory = append(p.Inventory, items...)
	}
}

// NewTestProject creates a project with sensible defaults for tests.
func NewTestProject(title string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:          uuid.New().String(),
		Title:       title,
		Admin:       "Test Admin",
		BudgetLimit: 10000,
		Location:    "Test Site",
		StartDate:   now.AddDate(0, -1, 0),
		Status:      domain.ProjectActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestTask creates a todo task with a unique ID.
func NewTestTask(title string) domain.Task {
	now := time.Now().UTC()
	return domain.Task{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    domain.TaskTodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestWorker creates a worker with a unique ID and name suffix.
func NewTestWorker(name string) domain.Worker {
	n := fixtureCounter.Add(1)
	return domain.Worker{
		ID:           uuid.New().String(),
		Name:         fmt.Sprintf("%s %d", name, n),
		Role:         "Labourer",
		Skills:       []string{"general"},
		Availability: "Full-time",
	}
}

// NewTestExpense creates a pending expense.
func NewTestExpense(title string, amount float64) domain.Expense {
	return domain.Expense{
		ID:       uuid.New().String(),
		Title:    title,
		Date:     time.Now().UTC(),
		Category: domain.ExpenseMaterials,
		Amount:   amount,
		Status:   domain.ExpensePending,
	}
}

// NewTestInventoryItem creates an in-budget inventory item.
func NewTestInventoryItem(name string) domain.InventoryItem {
	return domain.InventoryItem{
		ID:       uuid.New().String(),
		Name:     name,
		Category: domain.InventoryMaterials,
		TotalQty: 100,
		Unit:     "unit",
		UnitCost: 5,
		Status:   domain.InventoryInBudget,
	}
}
