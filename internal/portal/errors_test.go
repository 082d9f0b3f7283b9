package portal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginFailureMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "string detail verbatim",
			status: 401,
			body:   `{"detail":"Wrong password"}`,
			want:   "Wrong password",
		},
		{
			name:   "single list entry",
			status: 422,
			body:   `{"detail":[{"msg":"Invalid email"}]}`,
			want:   "Invalid email",
		},
		{
			name:   "list entries joined",
			status: 422,
			body:   `{"detail":[{"msg":"Invalid email"},{"msg":"Password too short"}]}`,
			want:   "Invalid email • Password too short",
		},
		{
			name:   "list entry without msg falls back",
			status: 422,
			body:   `{"detail":[{"loc":["body","email"]}]}`,
			want:   "Invalid input",
		},
		{
			name:   "message field",
			status: 400,
			body:   `{"message":"Account locked"}`,
			want:   "Account locked",
		},
		{
			name:   "no recognized fields",
			status: 401,
			body:   `{}`,
			want:   "Login failed (401)",
		},
		{
			name:   "body is not JSON",
			status: 502,
			body:   `<html>Bad Gateway</html>`,
			want:   "Login failed: 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := loginFailureMessage(tt.status, []byte(tt.body))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpdateFailureMessage(t *testing.T) {
	assert.Equal(t, "Email already in use",
		updateFailureMessage(409, "Conflict", []byte(`{"detail":"Email already in use"}`)))

	assert.Equal(t, "Update failed: 500 Internal Server Error",
		updateFailureMessage(500, "Internal Server Error", []byte(`{}`)))

	assert.Equal(t, "Update failed: 502 Bad Gateway",
		updateFailureMessage(502, "Bad Gateway", []byte(`oops`)))
}
