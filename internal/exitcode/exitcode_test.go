package exitcode

import (
	stderrors "errors"
	"testing"

	"github.com/doctrack/trackctl/internal/errors"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"Success", Success, 0},
		{"GeneralError", GeneralError, 1},
		{"UsageError", UsageError, 2},
		{"AuthError", AuthError, 3},
		{"SessionError", SessionError, 4},
		{"ValidationError", ValidationError, 5},
		{"NetworkError", NetworkError, 6},
		{"Interrupted", Interrupted, 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("Exit code %s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error returns success",
			err:      nil,
			expected: Success,
		},
		{
			name:     "typed session expired",
			err:      errors.NewSessionExpiredError(),
			expected: SessionError,
		},
		{
			name:     "typed session missing",
			err:      errors.NewSessionMissingError(),
			expected: SessionError,
		},
		{
			name:     "typed validation failure",
			err:      errors.NewProfileValidationError("email must contain @"),
			expected: ValidationError,
		},
		{
			name:     "typed auth rejection",
			err:      errors.New(errors.ErrCodeAuthRejected, "Wrong password"),
			expected: AuthError,
		},
		{
			name:     "login failed by message",
			err:      stderrors.New("login failed (500)"),
			expected: AuthError,
		},
		{
			name:     "connection refused",
			err:      stderrors.New("connection refused"),
			expected: NetworkError,
		},
		{
			name:     "unknown command",
			err:      stderrors.New("unknown command \"profil\""),
			expected: UsageError,
		},
		{
			name:     "anything else",
			err:      stderrors.New("something odd happened"),
			expected: GeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetermineExitCode(tt.err)
			if got != tt.expected {
				t.Errorf("DetermineExitCode(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	if GetExitCodeDescription(Success) != "Success" {
		t.Errorf("unexpected description for Success")
	}
	if GetExitCodeDescription(99) != "Unknown error" {
		t.Errorf("unexpected description for unknown code")
	}
}
