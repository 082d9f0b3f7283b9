package portal

import (
	"context"
	"io"
	"net/http"

	"github.com/doctrack/trackctl/internal/errors"
	"github.com/doctrack/trackctl/internal/session"
)

// LoginRequest is the credential payload for the login endpoints.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the success payload. Authentication itself arrives
// as a Set-Cookie header the jar absorbs.
type LoginResponse struct {
	UserID string `json:"user_id"`
}

// Login authenticates against the role-appropriate login endpoint.
//
// A rejected login returns an AUTH-001 error whose message is exactly
// the string to display, translated from the response body. Transport
// failures return an AUTH-003 error.
func (c *Client) Login(ctx context.Context, role session.Role, email, password string) (*LoginResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, loginPath(role), LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAuthUnavailable,
			"Unable to connect to server. Please try again later.", err)
	}

	if !isSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, errors.New(errors.ErrCodeAuthRejected, loginFailureMessage(resp.StatusCode, body))
	}

	var loginResp LoginResponse
	if err := decodeJSON(resp, &loginResp); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAuthRejected, "unexpected login response", err)
	}

	return &loginResp, nil
}
