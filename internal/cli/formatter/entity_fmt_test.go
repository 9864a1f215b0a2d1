package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/obradev/obra/internal/domain"
	"github.com/obradev/obra/internal/testutil"
)

func TestFormatTaskListGroupsByStatus(t *testing.T) {
	done := testutil.NewTestTask("Pour slab")
	done.Status = domain.TaskDone
	todo := testutil.NewTestTask("Order rebar")

	out := FormatTaskList([]domain.Task{done, todo}, time.Now())
	assert.Contains(t, out, "Pour slab")
	assert.Contains(t, out, "Order rebar")
	assert.Contains(t, out, "DONE")
	assert.Contains(t, out, "TODO")
}

func TestFormatTaskListEmpty(t *testing.T) {
	assert.Contains(t, FormatTaskList(nil, time.Now()), "No tasks")
}

func TestFormatExpenseListExcludesRejectedFromTotal(t *testing.T) {
	kept := testutil.NewTestExpense("Cement", 300)
	rejected := testutil.NewTestExpense("Duplicate", 900)
	rejected.Status = domain.ExpenseRejected

	out := FormatExpenseList([]domain.Expense{kept, rejected})
	assert.Contains(t, out, "300.00")
	assert.Contains(t, out, "Total (excl. rejected)")
	assert.NotContains(t, out, "1,200.00")
}

func TestFormatInventoryList(t *testing.T) {
	item := testutil.NewTestInventoryItem("Bricks")
	item.UsedQty = 40

	out := FormatInventoryList([]domain.InventoryItem{item})
	assert.Contains(t, out, "Bricks")
	assert.Contains(t, out, "60")
	assert.Contains(t, out, "500.00")
}

func TestFormatPendingChanges(t *testing.T) {
	task := testutil.NewTestTask("Wiring")
	changes := []domain.PendingChange{
		{Kind: domain.KindTask, Op: domain.OpCreate, EntityID: task.ID, Task: &task},
		{Kind: domain.KindExpense, Op: domain.OpDelete, EntityID: "e1"},
	}

	out := FormatPendingChanges(changes)
	assert.Contains(t, out, "Wiring")
	assert.Contains(t, out, "expense")
	assert.Contains(t, out, "(removed)")
}
