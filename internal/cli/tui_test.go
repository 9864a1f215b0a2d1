package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obradev/obra/internal/domain"
	"github.com/obradev/obra/internal/testutil"
)

func seededApp(t *testing.T) (*App, *testutil.FakeBackend) {
	t.Helper()
	backend := testutil.NewFakeBackend(
		testutil.NewTestProject("Riverside Apartments",
			testutil.WithProjectID("p1"),
			testutil.WithTasks(testutil.NewTestTask("Pour foundation")),
		),
		testutil.NewTestProject("Harbor Office Tower",
			testutil.WithProjectID("p2"),
		),
	)
	app := testApp(t, backend)
	projects, err := backend.ListProjects(t.Context())
	require.NoError(t, err)
	app.Session.SetAllProjects(projects)
	return app, backend
}

func TestTUI_StartsOnDashboard(t *testing.T) {
	app, _ := seededApp(t)
	d := newTUIDriver(t, app, adminClaims())

	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Equal(t, 1, d.StackLen())
	assert.Contains(t, d.View(), "SECTIONS")
	assert.Contains(t, d.View(), "No project selected")
}

func TestTUI_QuitWithQ(t *testing.T) {
	app, _ := seededApp(t)
	d := newTUIDriver(t, app, adminClaims())

	d.Press('q')

	assert.True(t, d.Quitting)
}

func TestTUI_QuitWithCtrlC(t *testing.T) {
	app, _ := seededApp(t)
	d := newTUIDriver(t, app, adminClaims())

	d.PressCtrlC()

	assert.True(t, d.Quitting)
}

func TestTUI_ProjectListAndBack(t *testing.T) {
	app, _ := seededApp(t)
	d := newTUIDriver(t, app, adminClaims())

	d.Press('p')
	assert.Equal(t, ViewProjectList, d.ActiveViewID())
	assert.Equal(t, 2, d.StackLen())
	assert.Contains(t, d.View(), "Riverside Apartments")
	assert.Contains(t, d.View(), "Harbor Office Tower")

	d.PressEsc()
	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Equal(t, 1, d.StackLen())
}

func TestTUI_SelectProjectWhenClean(t *testing.T) {
	app, _ := seededApp(t)
	d := newTUIDriver(t, app, adminClaims())

	d.Press('p')
	d.PressEnter()

	sel := app.Session.Selected()
	require.NotNil(t, sel)
	assert.Equal(t, "p1", sel.ID)
	assert.Contains(t, d.Status(), "Riverside Apartments")

	// Selection survives in local state for the next process.
	id, err := app.State.SelectedProject(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "p1", id)
}

func TestTUI_ProjectListFilter(t *testing.T) {
	app, _ := seededApp(t)
	d := newTUIDriver(t, app, adminClaims())

	d.Press('p')
	d.Press('/')
	d.Type("harbor")
	d.PressEnter()

	view := d.View()
	assert.Contains(t, view, "Harbor Office Tower")
	assert.NotContains(t, view, "Riverside Apartments")
}

func TestTUI_DirtySwitchOpensConflictView(t *testing.T) {
	app, _ := seededApp(t)
	require.NoError(t, app.Session.Select("p1"))
	_, err := app.Session.AddTask(domain.Task{Title: "Install windows"})
	require.NoError(t, err)

	d := newTUIDriver(t, app, adminClaims())

	d.Press('p')
	d.PressDown()
	d.PressEnter()

	assert.Equal(t, ViewConflict, d.ActiveViewID())
	assert.Contains(t, d.View(), "Install windows")
	assert.Contains(t, d.View(), "Save and switch")
}

func TestTUI_ConflictSaveAndSwitch(t *testing.T) {
	app, backend := seededApp(t)
	require.NoError(t, app.Session.Select("p1"))
	_, err := app.Session.AddTask(domain.Task{Title: "Install windows"})
	require.NoError(t, err)

	d := newTUIDriver(t, app, adminClaims())
	d.Press('p')
	d.PressDown()
	d.PressEnter()
	require.Equal(t, ViewConflict, d.ActiveViewID())

	d.PressEnter() // first choice: save and switch

	assert.Equal(t, ViewProjectList, d.ActiveViewID())
	require.Len(t, backend.Saves, 1)
	assert.Equal(t, "p2", app.Session.Selected().ID)
	assert.False(t, app.Session.HasChanges())
	// The status names the project the changes went to, not the new one.
	assert.Contains(t, d.Status(), "Riverside Apartments")
}

func TestTUI_ConflictCancelStays(t *testing.T) {
	app, backend := seededApp(t)
	require.NoError(t, app.Session.Select("p1"))
	_, err := app.Session.AddTask(domain.Task{Title: "Install windows"})
	require.NoError(t, err)

	d := newTUIDriver(t, app, adminClaims())
	d.Press('p')
	d.PressDown()
	d.PressEnter()
	require.Equal(t, ViewConflict, d.ActiveViewID())

	d.PressEsc()

	assert.Equal(t, ViewProjectList, d.ActiveViewID())
	assert.Empty(t, backend.Saves)
	assert.Equal(t, "p1", app.Session.Selected().ID)
	assert.True(t, app.Session.HasChanges())
}

func TestTUI_TaskBoardAdvanceStagesChange(t *testing.T) {
	app, backend := seededApp(t)
	require.NoError(t, app.Session.Select("p1"))

	d := newTUIDriver(t, app, adminClaims())
	d.PressDown() // Tasks is the second section
	d.PressEnter()

	assert.Equal(t, ViewTaskBoard, d.ActiveViewID())
	assert.Contains(t, d.View(), "Pour foundation")

	d.Press(' ')

	task := app.Session.Selected().Tasks[0]
	assert.Equal(t, domain.TaskInProgress, task.Status)
	assert.True(t, app.Session.HasChanges())
	assert.Empty(t, backend.Saves, "advancing a task must not hit the backend")

	// The staged change is persisted for crash recovery.
	changes, err := app.State.GetChanges(t.Context(), "p1")
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, domain.OpUpdate, changes[0].Op)
}

func TestTUI_DeleteTaskGoesThroughConfirmForm(t *testing.T) {
	app, _ := seededApp(t)
	require.NoError(t, app.Session.Select("p1"))

	d := newTUIDriver(t, app, adminClaims())
	d.PressDown()
	d.PressEnter()
	d.Press('x')

	assert.Equal(t, ViewForm, d.ActiveViewID())

	d.PressEsc() // cancel

	assert.Equal(t, ViewTaskBoard, d.ActiveViewID())
	assert.Len(t, app.Session.Selected().Tasks, 1)
	assert.False(t, app.Session.HasChanges())
}

func TestTUI_HeaderShowsDirtyBadge(t *testing.T) {
	app, _ := seededApp(t)
	require.NoError(t, app.Session.Select("p1"))
	_, err := app.Session.AddTask(domain.Task{Title: "Install windows"})
	require.NoError(t, err)

	d := newTUIDriver(t, app, adminClaims())

	assert.Contains(t, d.View(), "1 unsaved")
}

func TestTUI_DashboardDiscard(t *testing.T) {
	app, backend := seededApp(t)
	require.NoError(t, app.Session.Select("p1"))

	d := newTUIDriver(t, app, adminClaims())

	d.Press('d')
	assert.Contains(t, d.Status(), "Nothing to discard")

	_, err := app.Session.AddTask(domain.Task{Title: "Install windows"})
	require.NoError(t, err)
	d.Press('d')

	assert.False(t, app.Session.HasChanges())
	assert.Contains(t, d.Status(), "Discarded 1 change")
	assert.Empty(t, backend.Saves)
}

func TestTUI_WorkerSeesNoExpenseSection(t *testing.T) {
	app, _ := seededApp(t)
	claims := adminClaims()
	claims.Role = domain.RoleWorker

	d := newTUIDriver(t, app, claims)

	view := d.View()
	assert.Contains(t, view, "Tasks")
	assert.NotContains(t, view, "Expenses")
	assert.NotContains(t, view, "Reports")
}
