package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeAuthRejected    ErrorCode = "AUTH-001"
	ErrCodeAuthProfileLoad ErrorCode = "AUTH-002"
	ErrCodeAuthUnavailable ErrorCode = "AUTH-003"

	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeSessionMissing   ErrorCode = "SESSION-001"
	ErrCodeSessionCorrupted ErrorCode = "SESSION-002"
	ErrCodeSessionExpired   ErrorCode = "SESSION-003"
	ErrCodeSessionStale     ErrorCode = "SESSION-004"

	// Profile errors (PROFILE-001 to PROFILE-099)
	ErrCodeProfileLoad       ErrorCode = "PROFILE-001"
	ErrCodeProfileValidation ErrorCode = "PROFILE-002"
	ErrCodeProfileUpdate     ErrorCode = "PROFILE-003"
	ErrCodeProfileAvatar     ErrorCode = "PROFILE-004"

	// Config errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigLoad    ErrorCode = "CONFIG-001"
	ErrCodeConfigWrite   ErrorCode = "CONFIG-002"
	ErrCodeConfigBaseURL ErrorCode = "CONFIG-003"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound   ErrorCode = "IO-001"
	ErrCodeFileReadFailed ErrorCode = "IO-002"
	ErrCodeFileUnmarshal  ErrorCode = "IO-003"
)

// PortalError represents an enhanced error with code, suggestions, and cause
type PortalError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *PortalError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *PortalError) Unwrap() error {
	return e.Cause
}

// New creates a new PortalError
func New(code ErrorCode, message string) *PortalError {
	return &PortalError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new PortalError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *PortalError {
	return &PortalError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// AsPortal extracts a PortalError from an error chain.
func AsPortal(err error) (*PortalError, bool) {
	var perr *PortalError
	if stderrors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}

// WithSuggestion adds a suggestion to the error
func (e *PortalError) WithSuggestion(suggestion string) *PortalError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *PortalError) WithSuggestions(suggestions ...string) *PortalError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// Common error constructors for frequently used errors

// NewSessionMissingError creates a not-logged-in error
func NewSessionMissingError() *PortalError {
	return New(ErrCodeSessionMissing, "no active session").
		WithSuggestion("Run 'trackctl login' to authenticate")
}

// NewSessionCorruptedError creates an unreadable-session error
func NewSessionCorruptedError(cause error) *PortalError {
	return Wrap(ErrCodeSessionCorrupted, "stored session is unreadable", cause).
		WithSuggestion("Run 'trackctl logout' to clear the stored session").
		WithSuggestion("Run 'trackctl login' to authenticate again")
}

// NewSessionExpiredError creates a session-expired error
func NewSessionExpiredError() *PortalError {
	return New(ErrCodeSessionExpired, "session expired").
		WithSuggestion("Run 'trackctl login' to authenticate again")
}

// NewProfileLoadError creates a profile load failure error
func NewProfileLoadError(cause error) *PortalError {
	return Wrap(ErrCodeProfileLoad, "failed to load profile", cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Retry with 'trackctl account show'")
}

// NewProfileValidationError creates a client-side validation error.
// Validation failures never reach the network.
func NewProfileValidationError(details string) *PortalError {
	return New(ErrCodeProfileValidation, details).
		WithSuggestion("Correct the field and save again")
}

// NewBaseURLError creates a misconfigured base URL error
func NewBaseURLError(raw string, cause error) *PortalError {
	return Wrap(ErrCodeConfigBaseURL, fmt.Sprintf("invalid portal base URL: %s", raw), cause).
		WithSuggestion("Set TRACKCTL_API_URL to the portal API origin").
		WithSuggestion("Or run 'trackctl config set-api-url <url>'")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *PortalError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}
