package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/obradev/obra/internal/access"
	"github.com/obradev/obra/internal/api"
	"github.com/obradev/obra/internal/auth"
	"github.com/obradev/obra/internal/cli/formatter"
)

// currentUser returns the claims parsed from the stored token.
func currentUser(ctx context.Context, app *App) (*auth.Claims, error) {
	creds, err := app.Auth.Current(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrNoCredentials) {
			return nil, errors.New(app.T("auth.required"))
		}
		return nil, err
	}
	// A credentials row can hold just the language preference after a
	// session-only login ended.
	if creds.Token == "" {
		return nil, errors.New(app.T("auth.required"))
	}
	claims, err := auth.ParseClaims(creds.Token)
	if err != nil {
		return nil, err
	}
	if claims.Expired(time.Now()) {
		return nil, auth.ErrTokenExpired
	}
	return claims, nil
}

// requireSection resolves the current user and checks section access.
func requireSection(ctx context.Context, app *App, section access.Section) (*auth.Claims, error) {
	claims, err := currentUser(ctx, app)
	if err != nil {
		return nil, err
	}
	if !access.CanView(claims.Role, section) {
		return nil, fmt.Errorf("%s", app.T("access.denied", claims.Role, section))
	}
	return claims, nil
}

// hydrateProjects loads the project list into the edit session and resumes
// the persisted selection plus any staged changes. The backend is the source
// of truth; on success the list is written to the local cache. When the
// backend is unreachable the cached copy is served instead.
func hydrateProjects(ctx context.Context, app *App) error {
	projects, err := app.API.ListProjects(ctx)
	if err == nil {
		app.Session.SetAllProjects(projects)
		if cacheErr := app.Cache.Put(ctx, projects); cacheErr != nil {
			fmt.Println(formatter.Dim("warning: could not update local cache: " + cacheErr.Error()))
		}
		return resumeSession(ctx, app)
	}

	if !errors.Is(err, api.ErrBackendUnavailable) && !errors.Is(err, api.ErrTimeout) {
		return err
	}

	cached, fetchedAt, cacheErr := app.Cache.Get(ctx)
	if cacheErr != nil {
		return err
	}
	fmt.Println(formatter.StyleYellow.Render(app.T("project.offline_cache", fetchedAt.Format("2006-01-02 15:04"))))
	app.Session.SetAllProjects(cached)
	return resumeSession(ctx, app)
}

// resumeSession re-selects the persisted project and replays staged changes.
func resumeSession(ctx context.Context, app *App) error {
	id, err := app.State.SelectedProject(ctx)
	if err != nil || id == "" {
		return err
	}
	if err := app.Session.Select(id); err != nil {
		return err
	}
	if app.Session.Selected() == nil {
		// Project is gone from the backend; drop the stale selection.
		_ = app.State.SetSelectedProject(ctx, "")
		return app.State.ClearChanges(ctx, id)
	}
	changes, err := app.State.GetChanges(ctx, id)
	if err != nil || len(changes) == 0 {
		return err
	}
	return app.Session.RestoreChanges(changes)
}

// persistSession writes the current selection and dirty set to local state.
// Called after every staged mutation so a crash loses nothing.
func persistSession(ctx context.Context, app *App) error {
	sel := app.Session.Selected()
	if sel == nil {
		return app.State.SetSelectedProject(ctx, "")
	}
	if err := app.State.SetSelectedProject(ctx, sel.ID); err != nil {
		return err
	}
	return app.State.PutChanges(ctx, sel.ID, app.Session.PendingChanges())
}

// requireSelected hydrates the session and returns an error when no project
// is selected yet.
func requireSelected(ctx context.Context, app *App) error {
	if app.Session.Selected() != nil {
		return nil
	}
	if err := hydrateProjects(ctx, app); err != nil {
		return err
	}
	if app.Session.Selected() == nil {
		return errors.New(app.T("project.none_selected"))
	}
	return nil
}
