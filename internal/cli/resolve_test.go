package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obradev/obra/internal/domain"
	"github.com/obradev/obra/internal/testutil"
)

func resolverApp(t *testing.T) *App {
	t.Helper()
	backend := testutil.NewFakeBackend(
		testutil.NewTestProject("Riverside Apartments", testutil.WithProjectID("aaa111")),
		testutil.NewTestProject("Harbor Office Tower", testutil.WithProjectID("aab222")),
	)
	app := testApp(t, backend)
	projects, err := backend.ListProjects(t.Context())
	require.NoError(t, err)
	app.Session.SetAllProjects(projects)
	return app
}

func TestResolveProjectID_ExactMatch(t *testing.T) {
	app := resolverApp(t)

	id, err := resolveProjectID(app, "aaa111")
	require.NoError(t, err)
	assert.Equal(t, "aaa111", id)
}

func TestResolveProjectID_UniquePrefix(t *testing.T) {
	app := resolverApp(t)

	id, err := resolveProjectID(app, "aab")
	require.NoError(t, err)
	assert.Equal(t, "aab222", id)
}

func TestResolveProjectID_AmbiguousPrefix(t *testing.T) {
	app := resolverApp(t)

	_, err := resolveProjectID(app, "aa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestResolveProjectID_TitleMatchIsCaseInsensitive(t *testing.T) {
	app := resolverApp(t)

	id, err := resolveProjectID(app, "harbor office tower")
	require.NoError(t, err)
	assert.Equal(t, "aab222", id)
}

func TestResolveProjectID_NotFound(t *testing.T) {
	app := resolverApp(t)

	_, err := resolveProjectID(app, "zzz")
	assert.Error(t, err)

	_, err = resolveProjectID(app, "")
	assert.Error(t, err)
}

func TestResolveTaskID_PrefixNeedsFourChars(t *testing.T) {
	backend := testutil.NewFakeBackend(
		testutil.NewTestProject("Riverside Apartments",
			testutil.WithProjectID("p1"),
			testutil.WithTasks(domain.Task{ID: "task-12345", Title: "Pour foundation", Status: domain.TaskTodo}),
		),
	)
	app := testApp(t, backend)
	projects, err := backend.ListProjects(t.Context())
	require.NoError(t, err)
	app.Session.SetAllProjects(projects)
	require.NoError(t, app.Session.Select("p1"))

	_, err = resolveTaskID(app, "tas")
	assert.Error(t, err, "prefixes shorter than 4 chars never match")

	id, err := resolveTaskID(app, "task")
	require.NoError(t, err)
	assert.Equal(t, "task-12345", id)
}

func TestValidators(t *testing.T) {
	assert.Error(t, validateRequired(""))
	assert.NoError(t, validateRequired("x"))

	assert.NoError(t, validateOptionalDate(""))
	assert.NoError(t, validateOptionalDate("2026-09-30"))
	assert.Error(t, validateOptionalDate("30/09/2026"))

	assert.Error(t, validatePositiveAmount("0"))
	assert.Error(t, validatePositiveAmount("-5"))
	assert.Error(t, validatePositiveAmount("abc"))
	assert.NoError(t, validatePositiveAmount("250.50"))

	assert.NoError(t, validateNonNegativeAmount(""))
	assert.NoError(t, validateNonNegativeAmount("0"))
	assert.Error(t, validateNonNegativeAmount("-1"))
}

func TestParseOptionalDate(t *testing.T) {
	assert.Nil(t, parseOptionalDate(""))

	d := parseOptionalDate("2026-09-30")
	require.NotNil(t, d)
	assert.Equal(t, "2026-09-30", fmtOptionalDate(d))
}
