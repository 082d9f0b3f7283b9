package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/doctrack/trackctl/internal/errors"
)

// ErrNoSession is returned by stores when no record has been persisted.
var ErrNoSession = errors.NewSessionMissingError()

// Store defines the persistence contract for the single session record.
//
// Implementations must be safe for concurrent use. At most one record
// exists at a time; Save replaces any previous one.
type Store interface {
	// Load retrieves the stored record.
	// Returns ErrNoSession when nothing is stored.
	Load() (*Record, error)

	// Save persists the record, replacing any previous one.
	Save(rec *Record) error

	// Clear removes the stored record. Clearing an empty store is not
	// an error.
	Clear() error
}

// MemoryStore keeps the session record in memory. It is the tab-scoped
// store of a single interactive run, and the store used in tests.
type MemoryStore struct {
	mu  sync.RWMutex
	rec *Record
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load retrieves the stored record.
func (m *MemoryStore) Load() (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.rec == nil {
		return nil, ErrNoSession
	}

	cp := *m.rec
	return &cp, nil
}

// Save persists the record.
func (m *MemoryStore) Save(rec *Record) error {
	if rec == nil {
		return errors.New(errors.ErrCodeSessionCorrupted, "record cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *rec
	m.rec = &cp
	return nil
}

// Clear removes the stored record.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rec = nil
	return nil
}

// FileStore persists the session record as JSON under the trackctl
// state directory, so separate command invocations share one session
// the way browser tabs share sessionStorage.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and decodes the stored record.
func (f *FileStore) Load() (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read session file", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.NewSessionCorruptedError(err)
	}

	return &rec, nil
}

// Save writes the record with owner-only permissions.
func (f *FileStore) Save(rec *Record) error {
	if rec == nil {
		return errors.New(errors.ErrCodeSessionCorrupted, "record cannot be nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeConfigWrite, "failed to create state directory", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigWrite, "failed to encode session", err)
	}

	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeConfigWrite, "failed to write session file", err)
	}

	return nil
}

// Clear removes the session file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeConfigWrite, "failed to remove session file", err)
	}
	return nil
}
