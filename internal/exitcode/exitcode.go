package exitcode

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/doctrack/trackctl/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication failure (rejected credentials)
	AuthError = 3

	// SessionError indicates a missing, corrupted, or expired session
	SessionError = 4

	// ValidationError indicates client-side input validation failed
	ValidationError = 5

	// NetworkError indicates a network connectivity issue
	NetworkError = 6

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	// Typed portal errors carry their classification
	var perr *errors.PortalError
	if stderrors.As(err, &perr) {
		switch perr.Code {
		case errors.ErrCodeAuthRejected:
			return AuthError
		case errors.ErrCodeSessionMissing, errors.ErrCodeSessionCorrupted,
			errors.ErrCodeSessionExpired, errors.ErrCodeSessionStale:
			return SessionError
		case errors.ErrCodeProfileValidation:
			return ValidationError
		case errors.ErrCodeAuthUnavailable:
			return NetworkError
		}
	}

	errMsg := strings.ToLower(err.Error())

	// Authentication errors
	if strings.Contains(errMsg, "login failed") || strings.Contains(errMsg, "unauthorized") {
		return AuthError
	}

	// Session errors
	if strings.Contains(errMsg, "session expired") || strings.Contains(errMsg, "not logged in") {
		return SessionError
	}

	// Network errors
	if strings.Contains(errMsg, "network") || strings.Contains(errMsg, "connection") {
		return NetworkError
	}
	if strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "unreachable") {
		return NetworkError
	}

	// Usage errors
	if strings.Contains(errMsg, "invalid flag") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "missing argument") {
		return UsageError
	}

	// Default to general error
	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case AuthError:
		return "Authentication error"
	case SessionError:
		return "Session missing or expired"
	case ValidationError:
		return "Validation error"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
