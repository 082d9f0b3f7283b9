package portal

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/doctrack/trackctl/internal/errors"
	"github.com/doctrack/trackctl/internal/session"
)

// Info fetches the account profile from the role-appropriate endpoint.
//
// A 401 or 403 means the portal no longer accepts the session cookie
// and is reported as SESSION-003 (expired); any other non-2xx status is
// a generic PROFILE-001 load failure.
func (c *Client) Info(ctx context.Context, role session.Role) (*session.Payload, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, infoPath(role), nil)
	if err != nil {
		return nil, errors.NewProfileLoadError(err)
	}

	if !isSuccess(resp.StatusCode) {
		resp.Body.Close()
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, errors.NewSessionExpiredError()
		}
		return nil, errors.NewProfileLoadError(
			fmt.Errorf("failed to fetch user: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	var payload session.Payload
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, errors.NewProfileLoadError(err)
	}

	return &payload, nil
}

// UpdateRequest is the editable field set sent to the update endpoint.
// The portal treats everything else as immutable, so only these five
// fields ever go on the wire.
type UpdateRequest struct {
	FirstName     string `json:"first_name"`
	MiddleName    string `json:"middle_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	ContactNumber string `json:"contact_number"`
}

// Update sends a partial profile update keyed by user ID.
func (c *Client) Update(ctx context.Context, role session.Role, userID string, req UpdateRequest) (*session.Payload, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, updatePath(role, userID), req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeProfileUpdate,
			"Unable to connect to server. Please try again later.", err)
	}

	if !isSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, errors.New(errors.ErrCodeProfileUpdate,
			updateFailureMessage(resp.StatusCode, http.StatusText(resp.StatusCode), body))
	}

	var payload session.Payload
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, errors.Wrap(errors.ErrCodeProfileUpdate, "unexpected update response", err)
	}

	return &payload, nil
}
