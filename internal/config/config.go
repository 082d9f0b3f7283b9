// Package config resolves the portal API base URL and the locations of
// locally persisted client state.
package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/doctrack/trackctl/internal/errors"
)

const (
	// EnvBaseURL is the environment variable carrying the default
	// portal API origin.
	EnvBaseURL = "TRACKCTL_API_URL"

	// EnvStateDir overrides the state directory (used in tests).
	EnvStateDir = "TRACKCTL_STATE_DIR"

	// DefaultBaseURL is used when neither the environment nor a saved
	// override provides one.
	DefaultBaseURL = "http://localhost:8000"

	configFileName  = "config.yaml"
	sessionFileName = "session.json"
	cookieFileName  = "cookies.json"
)

// Config is the resolved client configuration.
type Config struct {
	// BaseURL is the portal API origin all requests are made against.
	BaseURL string

	// Verbose enables debug logging.
	Verbose bool
}

// fileConfig is the persisted override file under the state directory.
// A saved base URL takes precedence over the environment default, the
// same way the browser client let a locally stored URL shadow the
// build-time one.
type fileConfig struct {
	APIBaseURL string `yaml:"api_base_url,omitempty"`
}

// StateDir returns the directory holding trackctl's persisted state
// (config override, session record, portal cookies).
func StateDir() (string, error) {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigLoad, "cannot determine home directory", err)
	}
	return filepath.Join(home, ".trackctl"), nil
}

// SessionPath returns the session record file path.
func SessionPath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionFileName), nil
}

// CookiePath returns the portal cookie file path.
func CookiePath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, cookieFileName), nil
}

// Load resolves the client configuration.
//
// Resolution order for the base URL (highest to lowest precedence):
//  1. Saved override (<state dir>/config.yaml)
//  2. TRACKCTL_API_URL environment variable (a .env in the working
//     directory is loaded first if present)
//  3. DefaultBaseURL
func Load() (*Config, error) {
	// A missing .env is not an error.
	_ = godotenv.Load()

	baseURL := strings.TrimSpace(os.Getenv(EnvBaseURL))

	if saved, err := readOverride(); err != nil {
		return nil, err
	} else if saved != "" {
		baseURL = saved
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if err := validateBaseURL(baseURL); err != nil {
		return nil, err
	}

	return &Config{BaseURL: baseURL}, nil
}

// SetOverride persists a base URL override, shadowing the environment.
func SetOverride(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if err := validateBaseURL(rawURL); err != nil {
		return err
	}

	dir, err := StateDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeConfigWrite, "failed to create state directory", err)
	}

	data, err := yaml.Marshal(fileConfig{APIBaseURL: rawURL})
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigWrite, "failed to encode config", err)
	}

	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeConfigWrite, "failed to write config file", err)
	}
	return nil
}

// ClearOverride removes a persisted base URL override, restoring the
// environment default.
func ClearOverride() error {
	dir, err := StateDir()
	if err != nil {
		return err
	}

	path := filepath.Join(dir, configFileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeConfigWrite, "failed to remove config file", err)
	}
	return nil
}

// Override returns the currently saved base URL override, if any.
func Override() (string, error) {
	return readOverride()
}

func readOverride() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(dir, configFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrap(errors.ErrCodeConfigLoad, "failed to read config file", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigLoad, "failed to parse config file", err)
	}

	return strings.TrimSpace(fc.APIBaseURL), nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.NewBaseURLError(raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.NewBaseURLError(raw, nil).
			WithSuggestion("The URL must start with http:// or https://")
	}
	if u.Host == "" {
		return errors.NewBaseURLError(raw, nil)
	}
	return nil
}
