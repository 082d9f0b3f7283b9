package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	// Empty store
	rec, err := store.Load()
	require.ErrorIs(t, err, ErrNoSession)
	assert.Nil(t, rec)

	// Save and load
	saved := &Record{UserID: "SCH-2024-1234", Role: RoleSchool, Email: "user@example.com"}
	require.NoError(t, store.Save(saved))

	rec, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved.UserID, rec.UserID)

	// Load returns a copy, not the stored record
	rec.Email = "mutated@example.com"
	again, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", again.Email)

	// Clear
	require.NoError(t, store.Clear())
	_, err = store.Load()
	require.ErrorIs(t, err, ErrNoSession)

	// nil record is rejected
	require.Error(t, store.Save(nil))
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")
	store := NewFileStore(path)

	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoSession)

	saved := &Record{UserID: "FOCAL-77", Role: RoleOffice}
	require.NoError(t, store.Save(saved))

	// File permissions stay owner-only
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	rec, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "FOCAL-77", rec.UserID)
	assert.Equal(t, RoleOffice, rec.Role)

	// Clearing twice is fine
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	_, err = store.Load()
	require.ErrorIs(t, err, ErrNoSession)
}

func TestFileStoreCorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewFileStore(path)
	_, err := store.Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}
