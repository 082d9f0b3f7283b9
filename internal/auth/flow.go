// Package auth implements the two entry flows into a session: the
// silent bootstrap probe on startup and the credential login flow.
// Both funnel through the same normalize/resolve/persist step, so a
// session looks identical no matter which door it came in through.
package auth

import (
	"context"
	"strings"

	"github.com/doctrack/trackctl/internal/directory"
	"github.com/doctrack/trackctl/internal/errors"
	"github.com/doctrack/trackctl/internal/log"
	"github.com/doctrack/trackctl/internal/portal"
	"github.com/doctrack/trackctl/internal/session"
)

// Outcome is the result of a successful entry flow: the persisted
// session record and the landing route for its role.
type Outcome struct {
	Record *session.Record
	Route  string
}

// Flow drives session establishment against the portal.
type Flow struct {
	client   *portal.Client
	sessions *session.Manager
	logger   *log.Logger
}

// NewFlow creates an entry flow over the given client and manager.
func NewFlow(client *portal.Client, sessions *session.Manager) *Flow {
	return &Flow{
		client:   client,
		sessions: sessions,
		logger:   log.DefaultLogger().With("component", "auth"),
	}
}

// Probe silently checks whether the portal still accepts our cookie.
//
// The hint selects which endpoint family to probe; without one the
// school endpoint is tried. Any failure at all means "not logged in"
// and returns (nil, nil): the caller shows the login form and no error
// surfaces to the user.
func (f *Flow) Probe(ctx context.Context, hint session.Role) (*Outcome, error) {
	token := f.sessions.Begin()

	prior, _ := f.sessions.Current()
	if hint == "" {
		if prior != nil {
			hint = prior.Role
		} else {
			hint = session.RoleSchool
		}
	}

	payload, err := f.client.Info(ctx, hint)
	if err != nil {
		f.logger.Debug("bootstrap probe failed (expected when not logged in)", "hint", string(hint), "cause", err.Error())
		return nil, nil
	}

	defaults := session.Defaults{Prior: prior}
	if prior != nil {
		defaults.UserID = prior.UserID
		defaults.Email = prior.Email
	}
	outcome, err := f.establish(token, *payload, defaults)
	if err != nil {
		if session.IsStale(err) {
			// Another flow signed in while the probe was in flight;
			// its session wins and the probe result is discarded.
			f.logger.Debug("bootstrap probe superseded")
			return nil, nil
		}
		return nil, err
	}

	return outcome, nil
}

// Login runs the credential flow: authenticate, then fetch the profile,
// then normalize and persist. The profile fetch is strictly sequenced
// after authentication succeeds.
//
// A rejected login surfaces the portal's own message verbatim. A
// profile fetch failure after a successful login is its own fatal
// error and leaves no session behind.
func (f *Flow) Login(ctx context.Context, hint session.Role, email, password string) (*Outcome, error) {
	email = strings.TrimSpace(email)
	token := f.sessions.Begin()

	loginResp, err := f.client.Login(ctx, hint, email, password)
	if err != nil {
		return nil, err
	}

	payload, err := f.client.Info(ctx, hint)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAuthProfileLoad,
			"Failed to load user profile after login.", err)
	}

	return f.establish(token, *payload, session.Defaults{
		UserID: loginResp.UserID,
		Email:  email,
	})
}

// Logout clears the stored session. The portal cookie is cleared by
// the caller, which owns the jar.
func (f *Flow) Logout() error {
	return f.sessions.Clear()
}

// establish is the shared normalize step both doors funnel into:
// normalize the payload, patch the school address, and commit the
// record unless another writer got there first.
func (f *Flow) establish(token uint64, payload session.Payload, defaults session.Defaults) (*Outcome, error) {
	rec := session.Normalize(payload, defaults)

	if _, recognized := session.ParseRole(rec.UserID); !recognized && defaults.Prior == nil {
		f.logger.Debug("unrecognized user ID pattern, classifying as school", "user_id", rec.UserID)
	}

	directory.Resolve(&rec)

	if err := f.sessions.CommitIf(token, &rec); err != nil {
		return nil, err
	}

	return &Outcome{Record: &rec, Route: LandingRoute(rec.Role)}, nil
}
