package account

import (
	"context"

	"github.com/doctrack/trackctl/internal/directory"
	"github.com/doctrack/trackctl/internal/errors"
	"github.com/doctrack/trackctl/internal/log"
	"github.com/doctrack/trackctl/internal/portal"
	"github.com/doctrack/trackctl/internal/session"
)

// Notifier receives user-facing notices emitted during profile
// operations. The TUI shows them as toasts; non-interactive callers
// can pass NopNotifier.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// NopNotifier discards all notices.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}
func (NopNotifier) Info(string)    {}

// Synchronizer keeps the stored session in step with the portal's
// account endpoints: it refreshes the profile on load, pushes staged
// edits, and attaches avatars.
type Synchronizer struct {
	client   *portal.Client
	sessions *session.Manager
	notify   Notifier
	logger   *log.Logger
}

// NewSynchronizer builds a Synchronizer. A nil notifier is replaced
// with NopNotifier.
func NewSynchronizer(client *portal.Client, sessions *session.Manager, notify Notifier) *Synchronizer {
	if notify == nil {
		notify = NopNotifier{}
	}
	return &Synchronizer{
		client:   client,
		sessions: sessions,
		notify:   notify,
		logger:   log.DefaultLogger().With("component", "account"),
	}
}

// Load refreshes the profile from the portal and persists the result.
// It requires an existing session for the role and identity fallbacks;
// a 401 or 403 from the portal means the session expired. When a save
// was just completed, Load emits the saved notice exactly once.
func (s *Synchronizer) Load(ctx context.Context) (*session.Record, error) {
	prior, err := s.sessions.Current()
	if err != nil {
		return nil, err
	}

	token := s.sessions.Begin()

	payload, err := s.client.Info(ctx, prior.Role)
	if err != nil {
		return nil, err
	}

	rec := session.Normalize(*payload, session.Defaults{
		UserID: prior.UserID,
		Email:  prior.Email,
		Prior:  prior,
	})
	if rec.Avatar == "" {
		rec.Avatar = prior.Avatar
	}
	directory.Resolve(&rec)

	if err := s.sessions.CommitIf(token, &rec); err != nil {
		if session.IsStale(err) {
			s.logger.Debug("profile refresh superseded")
			return s.sessions.Current()
		}
		return nil, err
	}

	if s.sessions.ConsumeSaved() {
		s.notify.Success("Profile updated successfully.")
	}

	return &rec, nil
}

// Save validates the staged fields, pushes them to the portal, and
// refreshes the profile in place. Validation failures surface as a
// notice and abort before any network call. The refreshed record is
// returned.
func (s *Synchronizer) Save(ctx context.Context, staged Staged) (*session.Record, error) {
	if err := staged.Validate(); err != nil {
		if perr, ok := errors.AsPortal(err); ok {
			s.notify.Error(perr.Message)
		}
		return nil, err
	}

	rec, err := s.sessions.Current()
	if err != nil {
		return nil, err
	}

	req := staged.Request()
	if _, err := s.client.Update(ctx, rec.Role, rec.UserID, req); err != nil {
		if perr, ok := errors.AsPortal(err); ok {
			s.notify.Error(perr.Message)
		}
		return nil, err
	}

	// Write the accepted fields through immediately so the session is
	// correct even if the refresh below fails.
	merged := *rec
	merged.FirstName = req.FirstName
	merged.MiddleName = req.MiddleName
	merged.LastName = req.LastName
	merged.Email = req.Email
	merged.ContactNumber = req.ContactNumber
	if err := s.sessions.Put(&merged); err != nil {
		return nil, err
	}
	s.sessions.MarkSaved()

	refreshed, err := s.Load(ctx)
	if err != nil {
		s.logger.Debug("post-save refresh failed, keeping merged record", "cause", err.Error())
		if s.sessions.ConsumeSaved() {
			s.notify.Success("Profile updated successfully.")
		}
		return &merged, nil
	}
	return refreshed, nil
}

// AttachAvatar loads an image file into the session record. The
// portal has no avatar endpoint, so this persists locally only.
// Attaching a file whose content matches the current avatar is a
// no-op.
func (s *Synchronizer) AttachAvatar(path string) (*session.Record, error) {
	rec, err := s.sessions.Current()
	if err != nil {
		return nil, err
	}

	avatar, err := LoadAvatar(path)
	if err != nil {
		if perr, ok := errors.AsPortal(err); ok {
			s.notify.Error(perr.Message)
		}
		return nil, err
	}

	if rec.Avatar != "" && FingerprintDataURL(rec.Avatar) == avatar.Fingerprint {
		s.notify.Info("That image is already your avatar.")
		return rec, nil
	}

	updated := *rec
	updated.Avatar = avatar.DataURL
	if err := s.sessions.Put(&updated); err != nil {
		return nil, err
	}
	s.notify.Success("Avatar updated.")
	return &updated, nil
}
