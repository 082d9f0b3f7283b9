package cmd

import (
	"github.com/doctrack/trackctl/internal/account"
	"github.com/doctrack/trackctl/internal/auth"
	"github.com/doctrack/trackctl/internal/config"
	"github.com/doctrack/trackctl/internal/portal"
	"github.com/doctrack/trackctl/internal/session"
)

// app bundles the wired-up client components a command needs.
type app struct {
	cfg      *config.Config
	client   *portal.Client
	jar      *portal.PersistentJar
	sessions *session.Manager
	flow     *auth.Flow
}

// newApp resolves configuration and wires the portal client, cookie
// jar, and session manager over the state directory.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	cookiePath, err := config.CookiePath()
	if err != nil {
		return nil, err
	}
	jar, err := portal.NewPersistentJar(cookiePath, cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	sessionPath, err := config.SessionPath()
	if err != nil {
		return nil, err
	}
	sessions := session.NewManager(session.NewFileStore(sessionPath))

	client := portal.NewClient(cfg.BaseURL, jar)

	return &app{
		cfg:      cfg,
		client:   client,
		jar:      jar,
		sessions: sessions,
		flow:     auth.NewFlow(client, sessions),
	}, nil
}

// synchronizer builds the profile synchronizer with the given notifier.
func (a *app) synchronizer(notify account.Notifier) *account.Synchronizer {
	return account.NewSynchronizer(a.client, a.sessions, notify)
}
