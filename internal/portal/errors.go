package portal

import (
	"encoding/json"
	"fmt"
	"strings"
)

// errorBody is the failure payload shape the portal returns. detail is
// either a plain string or a list of field errors; message is a legacy
// fallback some endpoints still use.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type detailEntry struct {
	Msg string `json:"msg"`
}

// loginFailureMessage translates a non-2xx login response body into the
// single string shown to the user.
//
// Precedence: a string detail verbatim; else a detail list joined by
// " • " using each entry's msg (with "Invalid input" standing in for
// entries without one); else the message field; else a generic
// status-coded fallback. A body that is not JSON at all gets its own
// fallback shape.
func loginFailureMessage(status int, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return fmt.Sprintf("Login failed: %d", status)
	}

	if len(eb.Detail) > 0 {
		var detailStr string
		if err := json.Unmarshal(eb.Detail, &detailStr); err == nil {
			return detailStr
		}

		var entries []detailEntry
		if err := json.Unmarshal(eb.Detail, &entries); err == nil {
			msgs := make([]string, 0, len(entries))
			for _, e := range entries {
				if e.Msg != "" {
					msgs = append(msgs, e.Msg)
				} else {
					msgs = append(msgs, "Invalid input")
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, " • ")
			}
		}
	}

	if eb.Message != "" {
		return eb.Message
	}

	return fmt.Sprintf("Login failed (%d)", status)
}

// updateFailureMessage translates a non-2xx profile-update response.
// The portal's detail field is used when it is a plain string.
func updateFailureMessage(status int, statusText string, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Detail) > 0 {
		var detailStr string
		if err := json.Unmarshal(eb.Detail, &detailStr); err == nil && detailStr != "" {
			return detailStr
		}
	}

	return fmt.Sprintf("Update failed: %d %s", status, statusText)
}
