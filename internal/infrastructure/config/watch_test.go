package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createLevelsDir(t *testing.T) (string, string) {
	t.Helper()
	base := t.TempDir()
	levels := filepath.Join(base, LevelsDir)
	require.NoError(t, os.Mkdir(levels, 0o755))
	return base, levels
}

func TestWatcher_ReportsLevelStems(t *testing.T) {
	base, levels := createLevelsDir(t)
	w, err := NewWatcher(base)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	require.NoError(t, os.WriteFile(filepath.Join(levels, "notes.txt"), []byte("not a level"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(levels, "level3.yaml"), []byte("name: edited\n"), 0o644))

	var seen []string
	require.Eventually(t, func() bool {
		for {
			name, ok := w.Poll()
			if !ok {
				break
			}
			seen = append(seen, name)
		}
		return len(seen) > 0 && seen[len(seen)-1] == "level3"
	}, 2*time.Second, 10*time.Millisecond)

	assert.NotContains(t, seen, "notes", "non-level files are ignored")
	assert.NotContains(t, seen, "notes.txt")
}

func TestWatcher_PollEmpty(t *testing.T) {
	base, _ := createLevelsDir(t)
	w, err := NewWatcher(base)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	name, ok := w.Poll()
	assert.False(t, ok)
	assert.Empty(t, name)
}

func TestWatcher_Close(t *testing.T) {
	base, _ := createLevelsDir(t)
	w, err := NewWatcher(base)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close(), "second close is a no-op")

	require.Eventually(t, func() bool {
		_, open := <-w.Events
		return !open
	}, time.Second, 10*time.Millisecond, "events channel closes")
}

func TestNewWatcher_MissingLevelsDir(t *testing.T) {
	_, err := NewWatcher(t.TempDir())
	assert.Error(t, err)
}
