package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltemarine/shiplog/internal/config"
	"github.com/ltemarine/shiplog/internal/logger"
	"github.com/ltemarine/shiplog/models"
)

func newTestAdapter(t *testing.T, handler http.Handler) AuthAdapter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := NewHTTPAuthAdapter(config.Client{AuthAddress: srv.URL}, logger.Nop())
	require.NoError(t, err)
	return a
}

func TestNormalizeBaseURL(t *testing.T) {
	got, err := normalizeBaseURL("localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", got, "scheme-less addresses default to http")

	got, err = normalizeBaseURL("https://auth.fleet.example/")
	require.NoError(t, err)
	assert.Equal(t, "https://auth.fleet.example", got, "trailing slash trimmed")

	_, err = normalizeBaseURL("   ")
	require.Error(t, err)
}

func TestHTTPAuthAdapter_RequestCode(t *testing.T) {
	adapter := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/request-code", r.URL.Path)

		var req models.RequestCodeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "aegir@fleet.example", req.Email)

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(models.RequestCodeResponse{
			Success: true, Message: "login code sent", Token: "signed-token",
		}))
	}))

	resp, err := adapter.RequestCode(context.Background(), "aegir@fleet.example")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "signed-token", resp.Token)
}

func TestHTTPAuthAdapter_RequestCode_NotFound(t *testing.T) {
	adapter := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(models.APIError{Error: "no account found for this email"})
	}))

	_, err := adapter.RequestCode(context.Background(), "stranger@fleet.example")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "no account found for this email")
}

func TestHTTPAuthAdapter_VerifyCode_StoresSessionToken(t *testing.T) {
	adapter := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/verify-code", r.URL.Path)

		var req models.VerifyCodeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "482910", req.OTP)

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(models.VerifyCodeResponse{
			Success:      true,
			User:         models.User{Name: "Aegir"},
			SessionToken: "session-jwt",
		}))
	}))

	resp, err := adapter.VerifyCode(context.Background(), "aegir@fleet.example", "482910", "signed-token")
	require.NoError(t, err)
	assert.Equal(t, "Aegir", resp.User.Name)
	assert.Equal(t, "session-jwt", adapter.Token(), "session token installed for authed calls")
}

func TestHTTPAuthAdapter_VerifyCode_Unauthorized(t *testing.T) {
	adapter := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(models.APIError{Error: "invalid code"})
	}))

	_, err := adapter.VerifyCode(context.Background(), "aegir@fleet.example", "000000", "signed-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, adapter.Token(), "no token stored on failure")
}

func TestHTTPAuthAdapter_CurrentUser_SendsBearerToken(t *testing.T) {
	adapter := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/me", r.URL.Path)
		assert.Equal(t, "Bearer session-jwt", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(models.User{Name: "Aegir", Role: models.RoleVessel}))
	}))
	adapter.SetToken("session-jwt")

	user, err := adapter.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Aegir", user.Name)
}

func TestHTTPAuthAdapter_ServerVersion(t *testing.T) {
	adapter := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/version", r.URL.Path)
		_, _ = w.Write([]byte("1.2.3\n"))
	}))

	version, err := adapter.ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", version)
}

func TestNewHTTPAuthAdapter_BadAddress(t *testing.T) {
	_, err := NewHTTPAuthAdapter(config.Client{AuthAddress: ""}, logger.Nop())
	require.Error(t, err)
}
