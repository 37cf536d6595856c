package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltemarine/shiplog/internal/logger"
)

func newTestMailer(t *testing.T, handler http.Handler) Mailer {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m, err := NewResendMailer(Config{
		APIKey:  "re_test",
		From:    "Shiplog <onboarding@resend.dev>",
		BaseURL: srv.URL,
	}, logger.Nop())
	require.NoError(t, err)
	return m
}

func TestNewResendMailer_RequiresCredentials(t *testing.T) {
	_, err := NewResendMailer(Config{From: "x@y.z"}, logger.Nop())
	require.Error(t, err, "missing api key")

	_, err = NewResendMailer(Config{APIKey: "re_test"}, logger.Nop())
	require.Error(t, err, "missing sender")
}

func TestResendMailer_SendLoginCode(t *testing.T) {
	var got sendRequest

	m := newTestMailer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "email-id"})
	}))

	require.NoError(t, m.SendLoginCode(context.Background(), "aegir@fleet.example", "Aegir", "482910"))

	assert.Equal(t, []string{"aegir@fleet.example"}, got.To)
	assert.Equal(t, "Shiplog <onboarding@resend.dev>", got.From)
	assert.Contains(t, got.HTML, "482910", "the code rides in the body")
	assert.Contains(t, got.HTML, "Aegir")
	assert.NotContains(t, got.Subject, "482910", "the subject never carries the code")
}

func TestResendMailer_SendLoginCode_UpstreamError(t *testing.T) {
	m := newTestMailer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(sendError{Message: "rate limit exceeded"})
	}))

	err := m.SendLoginCode(context.Background(), "aegir@fleet.example", "Aegir", "482910")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}
