package session

import (
	stderrors "errors"
	"sync"

	"github.com/doctrack/trackctl/internal/errors"
)

// Manager is the single writer for the session record. Components never
// touch the store directly; every read-modify-write goes through the
// manager, which serializes writers and lets a flow detect that another
// writer superseded it before committing (a stale bootstrap probe
// finishing after a manual login, for instance).
type Manager struct {
	mu    sync.Mutex
	store Store
	gen   uint64

	// saved is the one-shot post-save notification event. It lives in
	// memory only: it is armed by a successful profile save and consumed
	// by whichever surface renders the confirmation.
	saved bool
}

// NewManager creates a manager over the given store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Current returns the stored record. A stored record that does not
// carry a user ID and a recognized role is reported as corrupted.
func (m *Manager) Current() (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.store.Load()
	if err != nil {
		return nil, err
	}

	if !rec.Valid() {
		return nil, errors.NewSessionCorruptedError(nil)
	}

	return rec, nil
}

// Authenticated reports whether a usable session exists. This is the
// gate protected surfaces check before rendering.
func (m *Manager) Authenticated() bool {
	_, err := m.Current()
	return err == nil
}

// Begin returns a write token for an asynchronous flow that intends to
// commit a record later. CommitIf rejects the commit if another writer
// has committed in between.
func (m *Manager) Begin() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

// Put stores the record unconditionally and supersedes any in-flight
// writers holding older tokens.
func (m *Manager) Put(rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(rec); err != nil {
		return err
	}
	m.gen++
	return nil
}

// CommitIf stores the record only if no other write happened since the
// token was taken. A superseded commit is dropped and reported with a
// SESSION-004 error.
func (m *Manager) CommitIf(token uint64, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token != m.gen {
		return errors.New(errors.ErrCodeSessionStale, "session was updated by another operation")
	}

	if err := m.store.Save(rec); err != nil {
		return err
	}
	m.gen++
	return nil
}

// Clear removes the stored record. Clearing counts as a write.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		return err
	}
	m.gen++
	m.saved = false
	return nil
}

// MarkSaved arms the one-shot profile-saved notification.
func (m *Manager) MarkSaved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = true
}

// ConsumeSaved reports whether a save notification is pending and
// clears it, so the confirmation renders exactly once.
func (m *Manager) ConsumeSaved() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	was := m.saved
	m.saved = false
	return was
}

// IsStale reports whether the error marks a dropped, superseded commit.
func IsStale(err error) bool {
	var perr *errors.PortalError
	if stderrors.As(err, &perr) {
		return perr.Code == errors.ErrCodeSessionStale
	}
	return false
}
