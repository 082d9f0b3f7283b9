package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctrack/trackctl/internal/config"
	"github.com/doctrack/trackctl/internal/session"
)

func commandNames(t *testing.T) []string {
	t.Helper()
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	return names
}

func TestCommandsRegistered(t *testing.T) {
	names := commandNames(t)
	for _, want := range []string{"login", "logout", "status", "account", "config", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestAccountSubcommands(t *testing.T) {
	var names []string
	for _, c := range accountCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "show")
	assert.Contains(t, names, "edit")
	assert.Contains(t, names, "avatar")
}

func TestNewAppWiresStatePaths(t *testing.T) {
	t.Setenv(config.EnvStateDir, t.TempDir())
	t.Setenv(config.EnvBaseURL, "http://portal.test:8000")

	a, err := newApp()
	require.NoError(t, err)
	assert.Equal(t, "http://portal.test:8000", a.cfg.BaseURL)
	assert.False(t, a.sessions.Authenticated())
}

func TestNewAppReadsPersistedSession(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvStateDir, dir)
	t.Setenv(config.EnvBaseURL, "http://portal.test:8000")

	seed, err := newApp()
	require.NoError(t, err)
	require.NoError(t, seed.sessions.Put(&session.Record{
		UserID: "SCH-1", Role: session.RoleSchool, FirstName: "Maria", LastName: "Santos",
	}))

	a, err := newApp()
	require.NoError(t, err)
	assert.True(t, a.sessions.Authenticated())

	rec, err := a.sessions.Current()
	require.NoError(t, err)
	assert.Equal(t, "Maria Santos", rec.FullName())
}

func TestNewAppRejectsBadBaseURL(t *testing.T) {
	t.Setenv(config.EnvStateDir, t.TempDir())
	t.Setenv(config.EnvBaseURL, "not a url")

	_, err := newApp()
	require.Error(t, err)
}
