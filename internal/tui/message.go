package tui

import "github.com/doctrack/trackctl/internal/errors"

// userMessage extracts the display text for an error: the portal
// message when the error is typed, the raw error string otherwise.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	if perr, ok := errors.AsPortal(err); ok {
		return perr.Message
	}
	return err.Error()
}
