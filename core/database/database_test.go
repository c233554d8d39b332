package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_MissingDataDir(t *testing.T) {
	cfg := Config{
		DataDir:     filepath.Join(t.TempDir(), "does-not-exist"),
		UsersFile:   "jellyfin.db",
		LibraryFile: "library.db",
	}

	// Open must fail before any mutation; a missing store means the data
	// directory is wrong, not that an empty database should appear there.
	stores, err := Open(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnreachable)
	assert.Nil(t, stores)
}

func TestOpen_MissingLibraryStore(t *testing.T) {
	// Even with a directory present, each store file must already exist.
	cfg := Config{
		DataDir:     t.TempDir(),
		UsersFile:   "jellyfin.db",
		LibraryFile: "library.db",
	}

	stores, err := Open(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnreachable)
	assert.Nil(t, stores)
}
