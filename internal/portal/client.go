// Package portal is the HTTP client for the document-tracking portal's
// account endpoints. Authentication is cookie-based: the login endpoint
// sets a session cookie the client carries on every credentialed call
// but never interprets.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/doctrack/trackctl/internal/log"
	"github.com/doctrack/trackctl/internal/session"
)

// Client is the portal API client
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	logger     *log.Logger
}

// NewClient creates a new portal API client. The jar holds the portal's
// auth cookie; pass a persistent jar to keep the session across runs.
func NewClient(baseURL string, jar http.CookieJar) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
		logger: log.DefaultLogger().With("component", "portal"),
	}
}

// WithLogger replaces the client's logger.
func (c *Client) WithLogger(logger *log.Logger) *Client {
	c.logger = logger.With("component", "portal")
	return c
}

// Endpoint paths per role. School users have their own endpoint family;
// office and admin users share the focal one.

func loginPath(role session.Role) string {
	if role == session.RoleOffice || role == session.RoleAdmin {
		return "/focal/login"
	}
	return "/school/login"
}

func infoPath(role session.Role) string {
	if role == session.RoleOffice || role == session.RoleAdmin {
		return "/focal/account/info/"
	}
	return "/school/account/info/"
}

func updatePath(role session.Role, userID string) string {
	base := "/school/account/update/id/"
	if role == session.RoleOffice || role == session.RoleAdmin {
		base = "/focal/account/update/id/"
	}
	return base + "?user_id=" + url.QueryEscape(userID)
}

// doRequest performs a JSON request against the portal. The cookie jar
// supplies credentials; a fresh request ID is attached for correlation.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("portal request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}

	c.logger.Debug("portal response", "path", path, "status", resp.StatusCode, "request_id", requestID)

	return resp, nil
}

// decodeJSON decodes a success response body into target.
func decodeJSON(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
