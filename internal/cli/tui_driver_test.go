package cli

import (
	"testing"
	"time"

	"github.com/obradev/obra/internal/auth"
	"github.com/obradev/obra/internal/domain"
	"github.com/obradev/obra/internal/i18n"
	"github.com/obradev/obra/internal/session"
	"github.com/obradev/obra/internal/store"
	"github.com/obradev/obra/internal/teatest"
	"github.com/obradev/obra/internal/testutil"
)

// testApp wires an App against a FakeBackend and an in-memory database.
func testApp(t *testing.T, backend *testutil.FakeBackend) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	bundle, err := i18n.NewBundle("en")
	if err != nil {
		t.Fatalf("loading bundle: %v", err)
	}

	return &App{
		Session:     session.NewManager(backend),
		API:         backend,
		Auth:        auth.NewMemoryProvider(),
		Cache:       store.NewSQLiteProjectCache(database),
		State:       store.NewSQLiteUIState(database),
		Bundle:      bundle,
		Interactive: true,
	}
}

func adminClaims() *auth.Claims {
	return &auth.Claims{
		Subject:   "u1",
		Name:      "Ana",
		Role:      domain.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// tuiDriver wraps teatest.Driver with helpers for appModel internals.
type tuiDriver struct {
	*teatest.Driver
}

// newTUIDriver boots the TUI against an already hydrated session.
func newTUIDriver(t *testing.T, app *App, claims *auth.Claims) *tuiDriver {
	t.Helper()
	d := teatest.New(t, newAppModel(app, claims))
	d.Resize(100, 32)
	d.DrainInit()
	return &tuiDriver{Driver: d}
}

func (d *tuiDriver) model() appModel {
	return d.Model.(appModel)
}

func (d *tuiDriver) ActiveViewID() ViewID {
	m := d.model()
	return m.viewStack[len(m.viewStack)-1].ID()
}

func (d *tuiDriver) StackLen() int {
	return len(d.model().viewStack)
}

func (d *tuiDriver) Status() string {
	return d.model().status
}
