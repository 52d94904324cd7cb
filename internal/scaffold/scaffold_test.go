package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMarkers = []string{
	"src/__init__.py",
	"src/agents/__init__.py",
	"src/data/__init__.py",
	"src/orchestration/__init__.py",
	"src/backtesting/__init__.py",
}

func TestEnsureMarkers(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	entries, err := EnsureMarkers(root, testMarkers)
	require.NoError(t, err)
	require.Len(t, entries, len(testMarkers))

	for _, e := range entries {
		assert.True(t, e.Created, e.Path)

		info, err := os.Stat(filepath.Join(root, e.Path))
		require.NoError(t, err)
		assert.Zero(t, info.Size(), "marker must be empty")
	}
}

func TestEnsureMarkers_Idempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	_, err := EnsureMarkers(root, testMarkers)
	require.NoError(t, err)

	entries, err := EnsureMarkers(root, testMarkers)
	require.NoError(t, err)

	for _, e := range entries {
		assert.False(t, e.Created, e.Path)
	}
}

func TestEnsureMarkers_NeverTruncates(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	marker := "src/__init__.py"
	path := filepath.Join(root, marker)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("from .agents import *\n"), 0o644))

	_, err := EnsureMarkers(root, []string{marker})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from .agents import *\n", string(data))
}

func TestEnsureDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dirs := []string{"data", "logs", "notebooks"}

	entries, err := EnsureDirs(root, dirs)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for _, e := range entries {
		assert.True(t, e.Created, e.Path)

		info, err := os.Stat(filepath.Join(root, e.Path))
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		// Fresh directories start empty.
		contents, err := os.ReadDir(filepath.Join(root, e.Path))
		require.NoError(t, err)
		assert.Empty(t, contents)
	}

	// Second run reports everything as already present.
	entries, err = EnsureDirs(root, dirs)
	require.NoError(t, err)

	for _, e := range entries {
		assert.False(t, e.Created, e.Path)
	}
}

func TestEnsureDirs_FileInTheWay(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "data"), []byte("x"), 0o644))

	_, err := EnsureDirs(root, []string{"data"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}
