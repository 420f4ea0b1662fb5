package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundtrip(t *testing.T) {
	store := NewSnapshotStore(filepath.Join(t.TempDir(), "snap.json"))

	require.NoError(t, store.Save(map[string]any{
		"core_tickers":     "NVDA, TSLA",
		"target_net_worth": 5_000_000_000.0,
	}))

	data, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "NVDA, TSLA", data["core_tickers"])
	assert.Equal(t, 5_000_000_000.0, data["target_net_worth"])
}

func TestSnapshotLoadMissingFile(t *testing.T) {
	store := NewSnapshotStore(filepath.Join(t.TempDir(), "absent.json"))

	data, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestSnapshotLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewSnapshotStore(path).Load()
	assert.Error(t, err)
}

func TestSnapshotSaveOverwrites(t *testing.T) {
	store := NewSnapshotStore(filepath.Join(t.TempDir(), "snap.json"))

	require.NoError(t, store.Save(map[string]any{"a": 1.0, "b": 2.0}))
	require.NoError(t, store.Save(map[string]any{"a": 3.0}))

	data, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 3.0, data["a"])
	// The file is rewritten whole, older keys do not survive.
	_, stale := data["b"]
	assert.False(t, stale)
}
