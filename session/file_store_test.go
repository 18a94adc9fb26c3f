package session_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/propdesk/propdesk/session"
)

func TestFileStore_SetAndGet(t *testing.T) {
	store, err := session.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("access-1", "refresh-1"))

	access, ok := store.Get(session.KeyAccessToken)
	require.True(t, ok)
	require.Equal(t, "access-1", access)

	refresh, ok := store.Get(session.KeyRefreshToken)
	require.True(t, ok)
	require.Equal(t, "refresh-1", refresh)
}

func TestFileStore_SurvivesReload(t *testing.T) {
	folder := t.TempDir()

	store, err := session.NewFileStore(folder)
	require.NoError(t, err)
	require.NoError(t, store.Set("access-1", "refresh-1"))
	require.NoError(t, store.SetUserAttributes(session.UserAttributes{Username: "alice", Role: "MANAGER"}))

	// A fresh store over the same folder models a page reload.
	reloaded, err := session.NewFileStore(folder)
	require.NoError(t, err)

	access, ok := reloaded.Get(session.KeyAccessToken)
	require.True(t, ok)
	require.Equal(t, "access-1", access)

	username, ok := reloaded.Get(session.KeyUsername)
	require.True(t, ok)
	require.Equal(t, "alice", username)
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	store, err := session.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	_, ok := store.Get(session.KeyAccessToken)
	require.False(t, ok)

	require.NoError(t, store.Set("a", "r"))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	_, ok = store.Get(session.KeyRefreshToken)
	require.False(t, ok)
}

func TestFileStore_HalfPresentPairIsCorrupt(t *testing.T) {
	folder := t.TempDir()
	raw, err := json.Marshal(map[string]string{session.KeyAccessToken: "only-access"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(folder, "session.json"), raw, 0o600))

	store, err := session.NewFileStore(folder)
	require.NoError(t, err)

	_, ok := store.Get(session.KeyAccessToken)
	require.False(t, ok)
	_, ok = store.Get(session.KeyRefreshToken)
	require.False(t, ok)
}

func TestFileStore_UnreadableFileIsCleared(t *testing.T) {
	folder := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(folder, "session.json"), []byte("{not json"), 0o600))

	store, err := session.NewFileStore(folder)
	require.NoError(t, err)

	_, ok := store.Get(session.KeyAccessToken)
	require.False(t, ok)
}

func TestFileStore_SetReplacesWholePair(t *testing.T) {
	store, err := session.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("access-1", "refresh-1"))
	require.NoError(t, store.Set("access-2", "refresh-2"))

	access, _ := store.Get(session.KeyAccessToken)
	refresh, _ := store.Get(session.KeyRefreshToken)
	require.Equal(t, "access-2", access)
	require.Equal(t, "refresh-2", refresh)
}
