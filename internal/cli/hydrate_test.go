package cli

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obradev/obra/internal/auth"
	"github.com/obradev/obra/internal/domain"
	"github.com/obradev/obra/internal/testutil"
)

func bearerToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "u1",
		"name": "Ana",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestCurrentUser_SessionOnlyLoginEndsWithProcess(t *testing.T) {
	backend := testutil.NewFakeBackend()
	persisted := auth.NewMemoryProvider() // stands in for the SQLite row
	app := testApp(t, backend)
	app.Auth = auth.NewScopedProvider(persisted)

	require.NoError(t, app.Auth.Save(t.Context(), &auth.Credentials{Token: bearerToken(t)}))

	claims, err := currentUser(t.Context(), app)
	require.NoError(t, err)
	assert.Equal(t, "Ana", claims.Name)

	// A fresh process over the same stored row has no login anymore.
	app2 := testApp(t, backend)
	app2.Auth = auth.NewScopedProvider(persisted)
	_, err = currentUser(t.Context(), app2)
	assert.Error(t, err)
}

func TestCurrentUser_RememberedLoginSurvivesRestart(t *testing.T) {
	backend := testutil.NewFakeBackend()
	persisted := auth.NewMemoryProvider()
	app := testApp(t, backend)
	app.Auth = auth.NewScopedProvider(persisted)

	creds := &auth.Credentials{Token: bearerToken(t), Remember: true}
	require.NoError(t, app.Auth.Save(t.Context(), creds))

	app2 := testApp(t, backend)
	app2.Auth = auth.NewScopedProvider(persisted)
	claims, err := currentUser(t.Context(), app2)
	require.NoError(t, err)
	assert.Equal(t, "Ana", claims.Name)
}

func TestHydrateProjects_LoadsBackendAndFillsCache(t *testing.T) {
	backend := testutil.NewFakeBackend(
		testutil.NewTestProject("Riverside Apartments", testutil.WithProjectID("p1")),
	)
	app := testApp(t, backend)

	require.NoError(t, hydrateProjects(t.Context(), app))

	assert.Len(t, app.Session.Projects(), 1)

	cached, _, err := app.Cache.Get(t.Context())
	require.NoError(t, err)
	assert.Len(t, cached, 1)
	assert.Equal(t, "Riverside Apartments", cached[0].Title)
}

func TestHydrateProjects_FallsBackToCacheWhenOffline(t *testing.T) {
	backend := testutil.NewFakeBackend(
		testutil.NewTestProject("Riverside Apartments", testutil.WithProjectID("p1")),
	)
	app := testApp(t, backend)

	// First run online fills the cache.
	require.NoError(t, hydrateProjects(t.Context(), app))

	// Second run offline serves the cached list.
	backend.Offline = true
	app2 := testApp(t, backend)
	app2.Cache = app.Cache
	app2.State = app.State

	require.NoError(t, hydrateProjects(t.Context(), app2))
	assert.Len(t, app2.Session.Projects(), 1)
}

func TestHydrateProjects_OfflineWithEmptyCacheFails(t *testing.T) {
	backend := testutil.NewFakeBackend()
	backend.Offline = true
	app := testApp(t, backend)

	assert.Error(t, hydrateProjects(t.Context(), app))
}

func TestResumeSession_RestoresSelectionAndStagedChanges(t *testing.T) {
	backend := testutil.NewFakeBackend(
		testutil.NewTestProject("Riverside Apartments", testutil.WithProjectID("p1")),
	)
	app := testApp(t, backend)

	// First process: select, stage a change, persist, exit.
	require.NoError(t, hydrateProjects(t.Context(), app))
	require.NoError(t, app.Session.Select("p1"))
	_, err := app.Session.AddTask(domain.Task{Title: "Install windows"})
	require.NoError(t, err)
	require.NoError(t, persistSession(t.Context(), app))

	// Second process: same local state, fresh session.
	app2 := testApp(t, backend)
	app2.Cache = app.Cache
	app2.State = app.State

	require.NoError(t, hydrateProjects(t.Context(), app2))

	sel := app2.Session.Selected()
	require.NotNil(t, sel)
	assert.Equal(t, "p1", sel.ID)
	assert.True(t, app2.Session.HasChanges())
	require.Len(t, sel.Tasks, 1)
	assert.Equal(t, "Install windows", sel.Tasks[0].Title)
	assert.Empty(t, backend.Saves, "restoring staged changes must not save")
}

func TestResumeSession_DropsSelectionOfDeletedProject(t *testing.T) {
	backend := testutil.NewFakeBackend(
		testutil.NewTestProject("Riverside Apartments", testutil.WithProjectID("p1")),
	)
	app := testApp(t, backend)
	require.NoError(t, hydrateProjects(t.Context(), app))
	require.NoError(t, app.Session.Select("p1"))
	require.NoError(t, persistSession(t.Context(), app))

	// The project disappears from the backend.
	backend.Projects = nil
	app2 := testApp(t, backend)
	app2.Cache = app.Cache
	app2.State = app.State

	require.NoError(t, hydrateProjects(t.Context(), app2))
	assert.Nil(t, app2.Session.Selected())

	id, err := app2.State.SelectedProject(t.Context())
	require.NoError(t, err)
	assert.Empty(t, id)
}
