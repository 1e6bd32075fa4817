package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Load(context.Context) (bool, bool, error) {
	return false, false, errors.New("boom")
}
func (failingStore) Save(context.Context, bool) error { return errors.New("boom") }

func TestInitDefaultsToDark(t *testing.T) {
	c, err := Init(context.Background(), &MemoryStore{})
	require.NoError(t, err)
	assert.True(t, c.Dark())
	assert.Equal(t, "dark", c.Name())
}

func TestInitReadsPersistedValue(t *testing.T) {
	store := &MemoryStore{}
	require.NoError(t, store.Save(context.Background(), false))

	c, err := Init(context.Background(), store)
	require.NoError(t, err)
	assert.False(t, c.Dark())
	assert.Equal(t, lightTokens, c.Tokens())
}

func TestToggleTwiceRestoresPersistedValue(t *testing.T) {
	ctx := context.Background()
	for _, initial := range []bool{true, false} {
		store := &MemoryStore{}
		require.NoError(t, store.Save(ctx, initial))
		c, err := Init(ctx, store)
		require.NoError(t, err)

		require.NoError(t, c.Toggle(ctx))
		persisted, found, err := store.Load(ctx)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, !initial, persisted)

		require.NoError(t, c.Toggle(ctx))
		persisted, _, err = store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, initial, persisted)
		assert.Equal(t, initial, c.Dark())
	}
}

func TestInitStoreErrorKeepsDefault(t *testing.T) {
	c, err := Init(context.Background(), failingStore{})
	require.Error(t, err)
	require.NotNil(t, c)
	assert.True(t, c.Dark())

	assert.Error(t, c.Toggle(context.Background()))
	assert.False(t, c.Dark())
}

func TestTokensCSS(t *testing.T) {
	css := string(darkTokens.CSS())
	assert.Contains(t, css, "--color-bg:#0f172a;")
	assert.Contains(t, css, "--color-accent:#38bdf8;")
	assert.NotEqual(t, darkTokens.CSS(), lightTokens.CSS())
}
