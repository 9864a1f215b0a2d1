package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopedProvider_SessionOnlyStaysInMemory(t *testing.T) {
	ctx := t.Context()
	persistent := NewMemoryProvider() // stands in for the SQLite store
	p := NewScopedProvider(persistent)

	require.NoError(t, p.Save(ctx, &Credentials{Token: "tok", Language: "es"}))

	got, err := p.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)

	// The token never reaches the persistent store, the language does.
	stored, err := persistent.Current(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored.Token)
	assert.Equal(t, "es", stored.Language)

	// A new process sees the language preference but no login.
	restarted := NewScopedProvider(persistent)
	got, err = restarted.Current(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Token)
	assert.Equal(t, "es", got.Language)
}

func TestScopedProvider_RememberSurvivesRestart(t *testing.T) {
	ctx := t.Context()
	persistent := NewMemoryProvider()
	p := NewScopedProvider(persistent)

	require.NoError(t, p.Save(ctx, &Credentials{Token: "tok", Language: "en", Remember: true}))

	restarted := NewScopedProvider(persistent)
	got, err := restarted.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.True(t, got.Remember)
}

func TestScopedProvider_StripsStaleSessionToken(t *testing.T) {
	ctx := t.Context()
	persistent := NewMemoryProvider()
	require.NoError(t, persistent.Save(ctx, &Credentials{Token: "tok", Language: "en"}))

	p := NewScopedProvider(persistent)
	got, err := p.Current(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Token)
	assert.Equal(t, "en", got.Language)
}

func TestScopedProvider_ClearDropsBothStores(t *testing.T) {
	ctx := t.Context()
	persistent := NewMemoryProvider()
	p := NewScopedProvider(persistent)

	require.NoError(t, p.Save(ctx, &Credentials{Token: "tok"}))
	require.NoError(t, p.Clear(ctx))

	_, err := p.Current(ctx)
	assert.ErrorIs(t, err, ErrNoCredentials)
	_, err = persistent.Current(ctx)
	assert.ErrorIs(t, err, ErrNoCredentials)
}
