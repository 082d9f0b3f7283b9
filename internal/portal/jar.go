package portal

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/doctrack/trackctl/internal/errors"
)

// PersistentJar is a cookie jar that mirrors the portal's cookies to a
// file, so the auth cookie survives across command invocations the way
// a browser keeps it between page loads. The client never reads cookie
// values itself; they pass through opaquely.
type PersistentJar struct {
	mu   sync.Mutex
	jar  *cookiejar.Jar
	path string
	base *url.URL
}

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewPersistentJar creates a jar persisted at path, scoped to the
// portal base URL. Previously stored cookies are loaded if present.
func NewPersistentJar(path, baseURL string) (*PersistentJar, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.NewBaseURLError(baseURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, "failed to create cookie jar", err)
	}

	p := &PersistentJar{jar: jar, path: path, base: base}

	if err := p.load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetCookies stores cookies from a response and persists the jar.
func (p *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.jar.SetCookies(u, cookies)
	// Persistence is best-effort; a failed write only costs the next
	// invocation a fresh login.
	_ = p.persist()
}

// Cookies returns the cookies to send with a request.
func (p *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.jar.Cookies(u)
}

// Clear drops all cookies and removes the backing file.
func (p *PersistentJar) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	jar, err := cookiejar.New(nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigWrite, "failed to reset cookie jar", err)
	}
	p.jar = jar

	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeConfigWrite, "failed to remove cookie file", err)
	}
	return nil
}

func (p *PersistentJar) load() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read cookie file", err)
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		// A corrupted cookie file is discarded, not fatal: the worst
		// outcome is having to log in again.
		return nil
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, sc := range stored {
		cookies = append(cookies, &http.Cookie{Name: sc.Name, Value: sc.Value})
	}
	p.jar.SetCookies(p.base, cookies)
	return nil
}

func (p *PersistentJar) persist() error {
	cookies := p.jar.Cookies(p.base)

	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o600)
}
