package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *TextStore {
	t.Helper()
	store, err := NewTextStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestTextStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Save("sunset", "a sunset over the sea")
	require.NoError(t, err)
	assert.Equal(t, "sunset", name)

	content, err := store.Get("sunset")
	require.NoError(t, err)
	assert.Equal(t, "a sunset over the sea", content)
}

func TestTextStore_ListNaturalOrder(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"prompt 10", "prompt 2", "prompt 1"} {
		_, err := store.Save(name, "x")
		require.NoError(t, err)
	}

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"prompt 1", "prompt 2", "prompt 10"}, names)
}

func TestTextStore_SaveCollisionUsesCopyName(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save("cat", "v1")
	require.NoError(t, err)
	assert.Equal(t, "cat", first)

	second, err := store.Save("cat", "v2")
	require.NoError(t, err)
	assert.Equal(t, "cat copy", second)

	third, err := store.Save("cat", "v3")
	require.NoError(t, err)
	assert.Equal(t, "cat copy 2", third)

	// the original entry is untouched
	content, err := store.Get("cat")
	require.NoError(t, err)
	assert.Equal(t, "v1", content)
}

func TestTextStore_OverwriteAndDelete(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save("cat", "v1")
	require.NoError(t, err)
	require.NoError(t, store.Overwrite("cat", "v2"))

	content, err := store.Get("cat")
	require.NoError(t, err)
	assert.Equal(t, "v2", content)

	require.NoError(t, store.Delete("cat"))
	_, err = store.Get("cat")
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.True(t, errors.Is(store.Delete("cat"), ErrNotFound))
	assert.True(t, errors.Is(store.Overwrite("missing", "x"), ErrNotFound))
}

func TestTextStore_RejectsPathNames(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"", "../escape", "a/b", `a\b`} {
		_, err := store.Save(name, "x")
		assert.Error(t, err, "name %q", name)
	}
}
