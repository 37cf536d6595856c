package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltemarine/shiplog/internal/adapter"
	"github.com/ltemarine/shiplog/internal/logger"
	"github.com/ltemarine/shiplog/internal/store"
	"github.com/ltemarine/shiplog/internal/utils"
	"github.com/ltemarine/shiplog/models"
)

type memSessionStore struct {
	session *models.Session
	saveErr error
}

func (s *memSessionStore) SaveSession(_ context.Context, session models.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.session = &session
	return nil
}

func (s *memSessionStore) LoadSession(context.Context) (models.Session, error) {
	if s.session == nil {
		return models.Session{}, store.ErrLocalSessionNotFound
	}
	return *s.session, nil
}

func (s *memSessionStore) ClearSession(context.Context) error {
	s.session = nil
	return nil
}

type fakeAuthAdapter struct {
	token string

	requestFn func(ctx context.Context, email string) (models.RequestCodeResponse, error)
	verifyFn  func(ctx context.Context, email, code, token string) (models.VerifyCodeResponse, error)
}

var _ adapter.AuthAdapter = (*fakeAuthAdapter)(nil)

func (f *fakeAuthAdapter) SetToken(token string) { f.token = token }
func (f *fakeAuthAdapter) Token() string         { return f.token }

func (f *fakeAuthAdapter) RequestCode(ctx context.Context, email string) (models.RequestCodeResponse, error) {
	return f.requestFn(ctx, email)
}

func (f *fakeAuthAdapter) VerifyCode(ctx context.Context, email, code, token string) (models.VerifyCodeResponse, error) {
	return f.verifyFn(ctx, email, code, token)
}

func (f *fakeAuthAdapter) CurrentUser(context.Context) (models.User, error) {
	return models.User{}, nil
}

func (f *fakeAuthAdapter) ServerVersion(context.Context) (string, error) {
	return "test", nil
}

func testSessionToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	token, _, err := utils.GenerateSessionToken("shiplog-test", "aegir@fleet.example", ttl, "key")
	require.NoError(t, err)
	return token
}

func TestClientAuthService_VerifyCode_PersistsSession(t *testing.T) {
	sessions := &memSessionStore{}
	sessionToken := testSessionToken(t, time.Hour)
	adapterFake := &fakeAuthAdapter{
		verifyFn: func(_ context.Context, email, code, token string) (models.VerifyCodeResponse, error) {
			assert.Equal(t, "aegir@fleet.example", email)
			assert.Equal(t, "482910", code)
			assert.Equal(t, "request-token", token)
			return models.VerifyCodeResponse{
				Success:      true,
				User:         models.User{Name: "Aegir", Role: models.RoleVessel},
				SessionToken: sessionToken,
			}, nil
		},
	}
	svc := NewClientAuthService(sessions, adapterFake, logger.Nop())

	session, err := svc.VerifyCode(context.Background(), "aegir@fleet.example", "482910", "request-token")
	require.NoError(t, err)
	assert.Equal(t, "Aegir", session.User.Name)
	assert.Equal(t, sessionToken, session.Token)
	assert.False(t, session.ExpiresAt.IsZero(), "expiry extracted from the token")

	require.NotNil(t, sessions.session, "session persisted for the next launch")
	assert.Equal(t, session.Token, sessions.session.Token)
}

func TestClientAuthService_VerifyCode_SaveFailureDoesNotFailLogin(t *testing.T) {
	sessions := &memSessionStore{saveErr: errors.New("disk full")}
	adapterFake := &fakeAuthAdapter{
		verifyFn: func(context.Context, string, string, string) (models.VerifyCodeResponse, error) {
			return models.VerifyCodeResponse{SessionToken: testSessionToken(t, time.Hour)}, nil
		},
	}
	svc := NewClientAuthService(sessions, adapterFake, logger.Nop())

	_, err := svc.VerifyCode(context.Background(), "aegir@fleet.example", "482910", "tok")
	require.NoError(t, err)
}

func TestClientAuthService_RestoreSession(t *testing.T) {
	token := testSessionToken(t, time.Hour)
	sessions := &memSessionStore{session: &models.Session{
		User:      models.User{Name: "Aegir"},
		Token:     token,
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	adapterFake := &fakeAuthAdapter{}
	svc := NewClientAuthService(sessions, adapterFake, logger.Nop())

	session, err := svc.RestoreSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Aegir", session.User.Name)
	assert.Equal(t, token, adapterFake.token, "restored token installed on the adapter")
}

func TestClientAuthService_RestoreSession_NoSavedSession(t *testing.T) {
	svc := NewClientAuthService(&memSessionStore{}, &fakeAuthAdapter{}, logger.Nop())

	_, err := svc.RestoreSession(context.Background())
	assert.ErrorIs(t, err, store.ErrLocalSessionNotFound)
}

func TestClientAuthService_RestoreSession_ExpiredSessionIsCleared(t *testing.T) {
	sessions := &memSessionStore{session: &models.Session{
		Token:     testSessionToken(t, -time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}}
	svc := NewClientAuthService(sessions, &fakeAuthAdapter{}, logger.Nop())

	_, err := svc.RestoreSession(context.Background())
	assert.ErrorIs(t, err, store.ErrLocalSessionNotFound)
	assert.Nil(t, sessions.session, "the stale session is removed")
}

func TestClientAuthService_Logout(t *testing.T) {
	sessions := &memSessionStore{session: &models.Session{Token: "tok"}}
	adapterFake := &fakeAuthAdapter{token: "tok"}
	svc := NewClientAuthService(sessions, adapterFake, logger.Nop())

	require.NoError(t, svc.Logout(context.Background()))
	assert.Empty(t, adapterFake.token)
	assert.Nil(t, sessions.session)
}

func TestClientAuthService_RequestCode(t *testing.T) {
	adapterFake := &fakeAuthAdapter{
		requestFn: func(_ context.Context, email string) (models.RequestCodeResponse, error) {
			assert.Equal(t, "aegir@fleet.example", email)
			return models.RequestCodeResponse{Success: true, Token: "signed-token"}, nil
		},
	}
	svc := NewClientAuthService(&memSessionStore{}, adapterFake, logger.Nop())

	token, err := svc.RequestCode(context.Background(), "aegir@fleet.example")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
}

// ── DashboardService ─────────────────────────────────────────────────────────

func TestClientDashboardService_Summary(t *testing.T) {
	cache := newMemEntryCache()
	ctx := context.Background()

	tagged := remoteEntry("rec1", "0800", "1200", "Cargo watch")
	tagged.Tag = "Cargo Ops"
	require.NoError(t, cache.UpsertEntry(ctx, tagged))

	tagged2 := remoteEntry("rec2", "1300", "1400", "More cargo")
	tagged2.Tag = "Cargo Ops"
	require.NoError(t, cache.UpsertEntry(ctx, tagged2))

	untagged := remoteEntry("rec3", "1400", "1430", "Paperwork")
	require.NoError(t, cache.UpsertEntry(ctx, untagged))

	remote := &fakeRemoteEntries{listFn: func(context.Context, string) ([]models.Entry, error) {
		return nil, errors.New("offline")
	}}
	svc := NewClientDashboardService(NewClientEntryService(cache, remote, logger.Nop()))

	summary, err := svc.Summary(ctx, "Aegir", "2026-02-17")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.EntryCount)
	assert.Equal(t, 330, summary.TotalMinutes)
	assert.Equal(t, 300, summary.TagMinutes["Cargo Ops"])
	assert.Equal(t, 30, summary.TagMinutes[""], "untagged minutes bucket under the empty key")
}
