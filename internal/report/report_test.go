package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obradev/obra/internal/domain"
	"github.com/obradev/obra/internal/testutil"
)

func sampleProject() *domain.Project {
	past := time.Now().UTC().AddDate(0, 0, -3)

	done := testutil.NewTestTask("Foundations")
	done.Status = domain.TaskDone
	active := testutil.NewTestTask("Framing")
	active.Status = domain.TaskInProgress
	overdue := testutil.NewTestTask("Permits")
	overdue.DueDate = &past

	cement := testutil.NewTestExpense("Cement", 400)
	cement.Status = domain.ExpenseApproved
	tools := testutil.NewTestExpense("Tool hire", 150)
	tools.Category = domain.ExpenseOthers
	rejected := testutil.NewTestExpense("Duplicate invoice", 9999)
	rejected.Status = domain.ExpenseRejected

	bricks := testutil.NewTestInventoryItem("Bricks")
	bricks.UsedQty = 40

	return testutil.NewTestProject("Riverside House",
		testutil.WithBudget(1000),
		testutil.WithTasks(done, active, overdue),
		testutil.WithExpenses(cement, tools, rejected),
		testutil.WithInventory(bricks),
		testutil.WithTeam(testutil.NewTestWorker("Mason")),
	)
}

func TestBuild(t *testing.T) {
	r := Build(sampleProject(), time.Now().UTC())

	assert.Equal(t, 3, r.Tasks.Total)
	assert.Equal(t, 1, r.Tasks.Done)
	assert.Equal(t, 1, r.Tasks.InProgress)
	assert.Equal(t, 1, r.Tasks.Todo)
	assert.Equal(t, 1, r.Tasks.Overdue)

	// Rejected expenses are excluded everywhere.
	assert.InDelta(t, 550, r.Budget.Spend, 0.001)
	assert.InDelta(t, 450, r.Budget.Remaining, 0.001)
	assert.False(t, r.Budget.OverBudget)
	assert.InDelta(t, 150, r.PendingApproval, 0.001)

	require.Len(t, r.ExpensesByCategory, 2)
	assert.Equal(t, domain.ExpenseMaterials, r.ExpensesByCategory[0].Category)
	assert.InDelta(t, 400, r.ExpensesByCategory[0].Amount, 0.001)

	require.Len(t, r.Inventory, 1)
	assert.InDelta(t, 60, r.Inventory[0].Remaining, 0.001)
	assert.InDelta(t, 500, r.Inventory[0].TotalCost, 0.001)

	require.Len(t, r.Team, 1)
	assert.InDelta(t, 100.0/3.0, r.CompletionPct(), 0.01)
}

func TestBuildOverBudget(t *testing.T) {
	approved := testutil.NewTestExpense("Steel", 2000)
	approved.Status = domain.ExpenseApproved
	p := testutil.NewTestProject("Tight Budget",
		testutil.WithBudget(500),
		testutil.WithExpenses(approved),
	)

	r := Build(p, time.Now().UTC())
	assert.True(t, r.Budget.OverBudget)
	assert.InDelta(t, -1500, r.Budget.Remaining, 0.001)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Build(sampleProject(), time.Now().UTC())))

	out := buf.String()
	assert.Contains(t, out, "Riverside House")
	assert.Contains(t, out, "Expenses by category")
	assert.Contains(t, out, "Bricks")
	assert.NotContains(t, out, "OVER BUDGET")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Build(sampleProject(), time.Now().UTC())))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Riverside House", decoded["title"])
	assert.Contains(t, decoded, "expenses_by_category")
}
