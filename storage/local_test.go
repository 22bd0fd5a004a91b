package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createStore(t *testing.T) *LocalStore {
	dir, err := os.MkdirTemp("", "storage-test-")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	return store
}

func TestStore(t *testing.T) {
	store := createStore(t)

	key, err := store.Store(strings.NewReader("%PDF-1.4"), ".pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	data, err := os.ReadFile(filepath.Join(store.dir, key))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	// Two stores of the same bytes get distinct keys.
	other, err := store.Store(strings.NewReader("%PDF-1.4"), ".pdf")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestDelete(t *testing.T) {
	store := createStore(t)

	key, err := store.Store(strings.NewReader("data"), ".bin")
	require.NoError(t, err)

	require.NoError(t, store.Delete(key))
	_, err = os.Stat(filepath.Join(store.dir, key))
	assert.True(t, os.IsNotExist(err))

	// Deleting an absent key is a no-op.
	require.NoError(t, store.Delete(key))

	// Keys cannot escape the storage root.
	assert.Error(t, store.Delete("../"+key))
}
