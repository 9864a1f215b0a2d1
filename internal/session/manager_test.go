package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/obradev/obra/internal/domain"
	"github.com/obradev/obra/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, projects ...*domain.Project) (*Manager, *testutil.RecordingPersister) {
	t.Helper()
	p := &testutil.RecordingPersister{}
	m := NewManager(p)
	m.SetAllProjects(projects)
	return m, p
}

func TestSetAllProjects_EmptyInputIsNoOp(t *testing.T) {
	a := testutil.NewTestProject("Project A")
	m, _ := newTestManager(t, a)
	require.NoError(t, m.Select(a.ID))

	m.SetAllProjects(nil)
	m.SetAllProjects([]*domain.Project{})

	assert.Len(t, m.Projects(), 1, "existing list must not be clobbered")
	require.NotNil(t, m.Selected())
	assert.Equal(t, a.ID, m.Selected().ID)
}

func TestSetAllProjects_ResetsDirtySetAndRehydratesSelection(t *testing.T) {
	a := testutil.NewTestProject("Project A")
	m, _ := newTestManager(t, a)
	require.NoError(t, m.Select(a.ID))

	_, err := m.AddTask(domain.Task{Title: "Pour foundation"})
	require.NoError(t, err)
	require.True(t, m.HasChanges())

	refreshed := a.Clone()
	refreshed.Title = "Project A (renamed)"
	m.SetAllProjects([]*domain.Project{refreshed})

	assert.False(t, m.HasChanges())
	require.NotNil(t, m.Selected())
	assert.Equal(t, "Project A (renamed)", m.Selected().Title)
	assert.Empty(t, m.Selected().Tasks, "unsaved edits are dropped on full refresh")
}

func TestSelect_UnknownIDKeepsPreviousSelection(t *testing.T) {
	a := testutil.NewTestProject("Project A")
	m, _ := newTestManager(t, a)
	require.NoError(t, m.Select(a.ID))

	require.NoError(t, m.Select("no-such-id"))
	assert.Equal(t, a.ID, m.Selected().ID)
}

func TestSelect_WorkingCopyDoesNotAliasBaseline(t *testing.T) {
	a := testutil.NewTestProject("Project A", testutil.WithTasks(testutil.NewTestTask("Wiring")))
	m, _ := newTestManager(t, a)
	require.NoError(t, m.Select(a.ID))

	require.NoError(t, m.UpdateTaskStatus(a.Tasks[0].ID, domain.TaskDone))

	assert.Equal(t, domain.TaskDone, m.Selected().Tasks[0].Status)
	assert.Equal(t, domain.TaskTodo, m.ProjectByID(a.ID).Tasks[0].Status,
		"baseline list entry must stay untouched until save")
}

// Property 1: hasChanges becomes true after the first mutation and stays true
// until save or discard.
func TestDirtyFlag_LifecycleAcrossMutationKinds(t *testing.T) {
	a := testutil.NewTestProject("Project A",
		testutil.WithTasks(testutil.NewTestTask("Frame walls")),
		testutil.WithExpenses(testutil.NewTestExpense("Rebar", 300)),
		testutil.WithInventory(testutil.NewTestInventoryItem("Cement")),
	)
	m, _ := newTestManager(t, a)
	require.NoError(t, m.Select(a.ID))
	assert.False(t, m.HasChanges())

	_, err := m.AddTask(domain.Task{Title: "Pour slab"})
	require.NoError(t, err)
	assert.True(t, m.HasChanges())

	require.NoError(t, m.UpdateExpense(a.Expenses[0].ID, ExpensePatch{Amount: f64(450)}))
	require.NoError(t, m.UpdateInventoryItem(a.Inventory[0].ID, InventoryPatch{UsedQty: f64(10)}))
	_, err = m.AddTeamMember(testutil.NewTestWorker("Luis"))
	require.NoError(t, err)
	assert.True(t, m.HasChanges(), "stays dirty across further mutations")

	require.NoError(t, m.SaveChanges(context.Background()))
	assert.False(t, m.HasChanges())
}

// Property 2: discard restores the exact pre-mutation snapshot regardless of
// how many mutations were queued.
func TestDiscardChanges_RestoresExactSnapshot(t *testing.T) {
	a := testutil.NewTestProject("Project A",
		testutil.WithTasks(testutil.NewTestTask("Frame walls"), testutil.NewTestTask("Wiring")),
		testutil.WithExpenses(testutil.NewTestExpense("Rebar", 300)),
	)
	m, _ := newTestManager(t, a)
	require.NoError(t, m.Select(a.ID))
	before := m.Selected().Clone()

	_, err := m.AddTask(domain.Task{Title: "Plumbing"})
	require.NoError(t, err)
	require.NoError(t, m.DeleteTask(a.Tasks[1].ID))
	require.NoError(t, m.UpdateTaskStatus(a.Tasks[0].ID, domain.TaskDone))
	require.NoError(t, m.UpdateExpense(a.Expenses[0].ID, ExpensePatch{Status: expStatus(domain.ExpenseApproved)}))
	_, err = m.AddInventoryItem(domain.InventoryItem{Name: "Gravel", Unit: "t"})
	require.NoError(t, err)

	m.DiscardChanges()

	assert.False(t, m.HasChanges())
	assert.Equal(t, before, m.Selected(), "deep equality with the pre-mutation snapshot")
}

// Property 3: selection never changes while dirty without going through the
// three-way resolution, and cancel changes nothing.
func TestSwitch_RefusedWhileDirtyAndCancelKeepsState(t *testing.T) {
	a := testutil.NewTestProject("Project A")
	b := testutil.NewTestProject("Project B")
	m, _ := newTestManager(t, a, b)
	require.NoError(t, m.Select(a.ID))

	_, err := m.AddTask(domain.Task{Title: "Pour foundation"})
	require.NoError(t, err)

	assert.ErrorIs(t, m.Select(b.ID), ErrUnsavedChanges)
	assert.Equal(t, a.ID, m.Selected().ID)

	needsResolve := m.RequestSwitch(b.ID)
	require.True(t, needsResolve)
	assert.Equal(t, b.ID, m.PendingSwitchID())

	require.NoError(t, m.ResolveSwitch(context.Background(), CancelSwitch))
	assert.Equal(t, a.ID, m.Selected().ID)
	assert.True(t, m.HasChanges(), "cancel leaves the dirty set intact")
	assert.Empty(t, m.PendingSwitchID())
}

// Property 4: a second save right after a successful one is a no-op.
func TestSaveChanges_IdempotentWhenClean(t *testing.T) {
	a := testutil.NewTestProject("Project A")
	m, p := newTestManager(t, a)
	require.NoError(t, m.Select(a.ID))

	_, err := m.AddTask(domain.Task{Title: "Pour foundation"})
	require.NoError(t, err)

	require.NoError(t, m.SaveChanges(context.Background()))
	require.NoError(t, m.SaveChanges(context.Background()))

	assert.Len(t, p.Calls, 1, "clean save must not hit the backend")
}

// Property 5: add task, observe optimistic state, discard, observe revert.
func TestAddTaskThenDiscard_Scenario(t *testing.T) {
	a := testutil.NewTestProject("Project A")
	m, _ := newTestManager(t, a)
	require.NoError(t, m.Select(a.ID))

	created, err := m.AddTask(domain.Task{Title: "Pour foundation", Status: domain.TaskTodo})
	require.NoError(t, err)

	assert.True(t, m.HasChanges())
	assert.NotEmpty(t, created.ID, "a local ID is generated for optimistic creates")
	require.Len(t, m.Selected().Tasks, 1)
	assert.Equal(t, "Pour foundation", m.Selected().Tasks[0].Title)

	m.DiscardChanges()

	assert.False(t, m.HasChanges())
	assert.Empty(t, m.Selected().Tasks)
}

// Property 6: dirty project A, switch to B, discard-and-continue.
func TestSwitch_DiscardAndContinue_Scenario(t *testing.T) {
	a := testutil.NewTestProject("Project A", testutil.WithExpenses(testutil.NewTestExpense("Rebar", 300)))
	b := testutil.NewTestProject("Project B")
	m, p := newTestManager(t, a, b)
	require.NoError(t, m.Select(a.ID))

	require.NoError(t, m.UpdateExpense(a.Expenses[0].ID, ExpensePatch{Amount: f64(999)}))
	require.True(t, m.RequestSwitch(b.ID), "switching while dirty needs resolution")

	require.NoError(t, m.ResolveSwitch(context.Background(), DiscardAndSwitch))

	assert.Equal(t, b.ID, m.Selected().ID)
	assert.False(t, m.HasChanges())
	assert.Empty(t, p.Calls, "discard never calls the backend")
	assert.Equal(t, float64(300), m.ProjectByID(a.ID).Expenses[0].Amount,
		"the in-memory edit to A is gone from the snapshot")
}

// Property 7: adding the same worker twice keeps exactly one roster entry.
func TestAddTeamMember_DedupesByID(t *testing.T) {
	a := testutil.NewTestProject("Project A")
	m, _ := newTestManager(t, a)
	require.NoError(t, m.Select(a.ID))

	w := testutil.NewTestWorker("Luis")
	added, err := m.AddTeamMember(w)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = m.AddTeamMember(w)
	require.NoError(t, err)
	assert.False(t, added, "second add of the same worker is a no-op")

	assert.Len(t, m.Selected().Team, 1)
	assert.Len(t, m.PendingChanges(), 1)
}

func TestSaveChanges_FailureKeepsDirtySet(t *testing.T) {
	a := testutil.NewTestProject("Project A")
	m, p := newTestManager(t, a)
	require.NoError(t, m.Select(a.ID))

	created, err := m.AddTask(domain.Task{Title: "Pour foundation"})
	require.NoError(t, err)

	p.Err = errors.New("backend down")
	err = m.SaveChanges(context.Background())
	require.Error(t, err)

	assert.True(t, m.HasChanges(), "failed save must not discard user edits")
	assert.False(t, m.IsSaving())
	require.Len(t, m.Selected().Tasks, 1)
	assert.Equal(t, created.ID, m.Selected().Tasks[0].ID)

	// Explicit retry succeeds once the backend recovers.
	p.Err = nil
	require.NoError(t, m.SaveChanges(context.Background()))
	assert.False(t, m.HasChanges())
}

func TestResolveSwitch_FailedSaveDoesNotAdvance(t *testing.T) {
	a := testutil.NewTestProject("Project A")
	b := testutil.NewTestProject("Project B")
	m, p := newTestManager(t, a, b)
	require.NoError(t, m.Select(a.ID))

	_, err := m.AddTask(domain.Task{Title: "Pour foundation"})
	require.NoError(t, err)
	require.True(t, m.RequestSwitch(b.ID))

	p.Err = errors.New("backend down")
	err = m.ResolveSwitch(context.Background(), SaveAndSwitch)
	require.Error(t, err)

	assert.Equal(t, a.ID, m.Selected().ID, "failed save must not advance the switch")
	assert.True(t, m.HasChanges())
	assert.Equal(t, b.ID, m.PendingSwitchID(), "target stays held for an explicit retry")

	p.Err = nil
	require.NoError(t, m.ResolveSwitch(context.Background(), SaveAndSwitch))
	assert.Equal(t, b.ID, m.Selected().ID)
	assert.False(t, m.HasChanges())
}

func TestResolveSwitch_SaveAndSwitchCommitsA(t *testing.T) {
	a := testutil.NewTestProject("Project A")
	b := testutil.NewTestProject("Project B")
	m, p := newTestManager(t, a, b)
	require.NoError(t, m.Select(a.ID))

	_, err := m.AddTask(domain.Task{Title: "Pour foundation"})
	require.NoError(t, err)
	require.True(t, m.RequestSwitch(b.ID))

	require.NoError(t, m.ResolveSwitch(context.Background(), SaveAndSwitch))

	assert.Equal(t, b.ID, m.Selected().ID)
	require.Len(t, p.Calls, 1)
	assert.Equal(t, a.ID, p.Calls[0].Project.ID)
	require.Len(t, m.ProjectByID(a.ID).Tasks, 1, "saved state becomes A's new baseline")
}

func TestRequestSwitch_CleanSwitchesImmediately(t *testing.T) {
	a := testutil.NewTestProject("Project A")
	b := testutil.NewTestProject("Project B")
	m, _ := newTestManager(t, a, b)
	require.NoError(t, m.Select(a.ID))

	assert.False(t, m.RequestSwitch(b.ID))
	assert.Equal(t, b.ID, m.Selected().ID)
	assert.Empty(t, m.PendingSwitchID())
}

func TestMutators_RejectedWithoutSelection(t *testing.T) {
	m, _ := newTestManager(t, testutil.NewTestProject("Project A"))

	_, err := m.AddTask(domain.Task{Title: "orphan"})
	assert.ErrorIs(t, err, ErrNoProject)
	assert.ErrorIs(t, m.DeleteExpense("x"), ErrNoProject)
}

func TestUpdateTask_UnknownIDFails(t *testing.T) {
	a := testutil.NewTestProject("Project A")
	m, _ := newTestManager(t, a)
	require.NoError(t, m.Select(a.ID))

	assert.ErrorIs(t, m.UpdateTaskStatus("missing", domain.TaskDone), ErrEntityNotFound)
	assert.False(t, m.HasChanges())
}

func TestTaskMutations_KeepProgressCountersCurrent(t *testing.T) {
	a := testutil.NewTestProject("Project A", testutil.WithTasks(testutil.NewTestTask("Frame walls")))
	m, _ := newTestManager(t, a)
	require.NoError(t, m.Select(a.ID))

	require.NoError(t, m.UpdateTaskStatus(a.Tasks[0].ID, domain.TaskInProgress))
	assert.Equal(t, domain.Progress{InProgress: 1}, m.Selected().Progress)

	_, err := m.AddTask(domain.Task{Title: "Wiring"})
	require.NoError(t, err)
	assert.Equal(t, domain.Progress{InProgress: 1, Todo: 1}, m.Selected().Progress)
}

func TestExpenseStatusChange_StampsApproval(t *testing.T) {
	a := testutil.NewTestProject("Project A", testutil.WithExpenses(testutil.NewTestExpense("Rebar", 300)))
	m, _ := newTestManager(t, a)
	require.NoError(t, m.Select(a.ID))

	by := "Ana"
	require.NoError(t, m.UpdateExpense(a.Expenses[0].ID, ExpensePatch{
		Status:     expStatus(domain.ExpenseApproved),
		ApprovedBy: &by,
	}))

	e := m.Selected().Expenses[0]
	assert.Equal(t, domain.ExpenseApproved, e.Status)
	assert.Equal(t, "Ana", e.Approval.ApprovedBy)
	require.NotNil(t, e.Approval.UpdatedAt)
	assert.WithinDuration(t, time.Now().UTC(), *e.Approval.UpdatedAt, 5*time.Second)
}

func f64(v float64) *float64 { return &v }

func expStatus(s domain.ExpenseStatus) *domain.ExpenseStatus { return &s }

func TestRestoreChanges_ResumesStagedSession(t *testing.T) {
	existing := testutil.NewTestTask("Order rebar")
	a := testutil.NewTestProject("Project A", testutil.WithTasks(existing))
	m, _ := newTestManager(t, a)
	require.NoError(t, m.Select(a.ID))

	created, err := m.AddTask(domain.Task{Title: "Pour slab"})
	require.NoError(t, err)
	require.NoError(t, m.UpdateTaskStatus(existing.ID, domain.TaskDone))
	require.NoError(t, m.DeleteTask(existing.ID))
	staged := m.PendingChanges()

	// Fresh manager, as after a process restart.
	m2, _ := newTestManager(t, a.Clone())
	require.NoError(t, m2.Select(a.ID))
	require.NoError(t, m2.RestoreChanges(staged))

	require.True(t, m2.HasChanges())
	assert.Equal(t, staged, m2.PendingChanges())

	require.Len(t, m2.Selected().Tasks, 1)
	assert.Equal(t, created.ID, m2.Selected().Tasks[0].ID)
	assert.Equal(t, 1, m2.Selected().Progress.Todo)
}

func TestRestoreChanges_RequiresCleanSession(t *testing.T) {
	a := testutil.NewTestProject("Project A")
	m, _ := newTestManager(t, a)
	require.NoError(t, m.Select(a.ID))

	_, err := m.AddTask(domain.Task{Title: "Wiring"})
	require.NoError(t, err)

	err = m.RestoreChanges([]domain.PendingChange{{Kind: domain.KindTask, Op: domain.OpDelete, EntityID: "x"}})
	assert.ErrorIs(t, err, ErrUnsavedChanges)
}

func TestRestoreChanges_RequiresSelection(t *testing.T) {
	m := NewManager(&testutil.RecordingPersister{})
	err := m.RestoreChanges(nil)
	assert.ErrorIs(t, err, ErrNoProject)
}
