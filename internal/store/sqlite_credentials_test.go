package store

import (
	"context"
	"testing"

	"github.com/obradev/obra/internal/auth"
	"github.com/obradev/obra/internal/domain"
	"github.com/obradev/obra/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteCredentials_Roundtrip(t *testing.T) {
	repo := NewSQLiteCredentials(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.Current(ctx)
	assert.ErrorIs(t, err, auth.ErrNoCredentials)

	creds := &auth.Credentials{Token: "tok-123", Language: "es", Remember: true}
	require.NoError(t, repo.Save(ctx, creds))

	got, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, creds, got)

	// Saving again overwrites the single row.
	creds.Language = "en"
	require.NoError(t, repo.Save(ctx, creds))
	got, err = repo.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "en", got.Language)

	require.NoError(t, repo.Clear(ctx))
	_, err = repo.Current(ctx)
	assert.ErrorIs(t, err, auth.ErrNoCredentials)
}

func TestSQLiteProjectCache_Roundtrip(t *testing.T) {
	repo := NewSQLiteProjectCache(testutil.NewTestDB(t))
	ctx := context.Background()

	_, _, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	a := testutil.NewTestProject("Project A", testutil.WithTasks(testutil.NewTestTask("Wiring")))
	b := testutil.NewTestProject("Project B")
	require.NoError(t, repo.Put(ctx, []*domain.Project{a, b}))

	got, fetchedAt, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, "Wiring", got[0].Tasks[0].Title)
	assert.False(t, fetchedAt.IsZero())

	// A later fetch replaces the cached list wholesale.
	require.NoError(t, repo.Put(ctx, []*domain.Project{b}))
	got, _, err = repo.Get(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	require.NoError(t, repo.Clear(ctx))
	_, _, err = repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}
