package portal

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctrack/trackctl/internal/errors"
	"github.com/doctrack/trackctl/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return NewClient(srv.URL, jar), srv
}

func portalCode(t *testing.T, err error) errors.ErrorCode {
	t.Helper()

	var perr *errors.PortalError
	require.True(t, stderrors.As(err, &perr), "expected a PortalError, got %v", err)
	return perr.Code
}

func TestLoginSuccessStoresCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/school/login", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "maria@deped.gov.ph", req.Email)

		http.SetCookie(w, &http.Cookie{Name: "portal_session", Value: "tok-123", Path: "/"})
		_ = json.NewEncoder(w).Encode(map[string]string{"user_id": "SCH-2024-1234"})
	})
	mux.HandleFunc("/school/account/info/", func(w http.ResponseWriter, r *http.Request) {
		// The credentialed follow-up must carry the cookie back.
		cookie, err := r.Cookie("portal_session")
		require.NoError(t, err)
		require.Equal(t, "tok-123", cookie.Value)

		_ = json.NewEncoder(w).Encode(map[string]any{"user_id": "SCH-2024-1234"})
	})

	client, _ := newTestClient(t, mux)
	ctx := context.Background()

	loginResp, err := client.Login(ctx, session.RoleSchool, "maria@deped.gov.ph", "secret")
	require.NoError(t, err)
	assert.Equal(t, "SCH-2024-1234", loginResp.UserID)

	_, err = client.Info(ctx, session.RoleSchool)
	require.NoError(t, err)
}

func TestLoginRejectionCarriesExactMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/school/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Wrong password"}`))
	})

	client, _ := newTestClient(t, mux)

	_, err := client.Login(context.Background(), session.RoleSchool, "x@y.z", "bad")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAuthRejected, portalCode(t, err))

	var perr *errors.PortalError
	require.True(t, stderrors.As(err, &perr))
	assert.Equal(t, "Wrong password", perr.Message)
}

func TestLoginUsesFocalEndpointForOfficeRoles(t *testing.T) {
	var hitPath string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		hitPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"user_id": "FOCAL-77"})
	})

	client, _ := newTestClient(t, mux)

	_, err := client.Login(context.Background(), session.RoleOffice, "f@d.ph", "pw")
	require.NoError(t, err)
	assert.Equal(t, "/focal/login", hitPath)

	_, err = client.Login(context.Background(), session.RoleAdmin, "a@d.ph", "pw")
	require.NoError(t, err)
	assert.Equal(t, "/focal/login", hitPath)
}

func TestLoginTransportFailure(t *testing.T) {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := NewClient("http://127.0.0.1:1", jar)

	_, err = client.Login(context.Background(), session.RoleSchool, "x@y.z", "pw")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAuthUnavailable, portalCode(t, err))
}

func TestInfoClassifiesExpiredSession(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		mux := http.NewServeMux()
		mux.HandleFunc("/school/account/info/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		client, _ := newTestClient(t, mux)

		_, err := client.Info(context.Background(), session.RoleSchool)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeSessionExpired, portalCode(t, err))
	}
}

func TestInfoGenericFailureIsNotExpired(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/school/account/info/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client, _ := newTestClient(t, mux)

	_, err := client.Info(context.Background(), session.RoleSchool)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeProfileLoad, portalCode(t, err))
}

func TestInfoDecodesPayload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/focal/account/info/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user_id":    "FOCAL-77",
			"first_name": "Jose",
			"active":     false,
		})
	})

	client, _ := newTestClient(t, mux)

	payload, err := client.Info(context.Background(), session.RoleOffice)
	require.NoError(t, err)
	assert.Equal(t, "FOCAL-77", payload.UserID)
	assert.Equal(t, "Jose", payload.FirstName)
	require.NotNil(t, payload.Active)
	assert.False(t, *payload.Active)
}

func TestUpdateSendsEditableFieldsKeyedByUserID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/school/account/update/id/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "SCH-2024-1234", r.URL.Query().Get("user_id"))

		var fields map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
		assert.Len(t, fields, 5)
		assert.Equal(t, "Maria", fields["first_name"])
		assert.Equal(t, "", fields["middle_name"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"user_id":    "SCH-2024-1234",
			"first_name": "Maria",
		})
	})

	client, _ := newTestClient(t, mux)

	payload, err := client.Update(context.Background(), session.RoleSchool, "SCH-2024-1234", UpdateRequest{
		FirstName:     "Maria",
		LastName:      "Santos",
		Email:         "maria@deped.gov.ph",
		ContactNumber: "09171234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria", payload.FirstName)
}

func TestUpdateFailureCarriesDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/school/account/update/id/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail":"Email already in use"}`))
	})

	client, _ := newTestClient(t, mux)

	_, err := client.Update(context.Background(), session.RoleSchool, "SCH-1", UpdateRequest{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeProfileUpdate, portalCode(t, err))

	var perr *errors.PortalError
	require.True(t, stderrors.As(err, &perr))
	assert.Equal(t, "Email already in use", perr.Message)
}

func TestPersistentJarRoundTrip(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/school/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "portal_session", Value: "tok-456", Path: "/"})
		_ = json.NewEncoder(w).Encode(map[string]string{"user_id": "SCH-1"})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "cookies.json")

	jar, err := NewPersistentJar(path, srv.URL)
	require.NoError(t, err)

	client := NewClient(srv.URL, jar)
	_, err = client.Login(context.Background(), session.RoleSchool, "x@y.z", "pw")
	require.NoError(t, err)

	// A second jar instance picks the cookie back up from disk.
	reloaded, err := NewPersistentJar(path, srv.URL)
	require.NoError(t, err)

	u := srvURL(t, srv.URL)
	cookies := reloaded.Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, "portal_session", cookies[0].Name)
	assert.Equal(t, "tok-456", cookies[0].Value)

	// Clear drops the cookie and the file.
	require.NoError(t, reloaded.Clear())
	assert.Empty(t, reloaded.Cookies(u))

	again, err := NewPersistentJar(path, srv.URL)
	require.NoError(t, err)
	assert.Empty(t, again.Cookies(u))
}

func srvURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
