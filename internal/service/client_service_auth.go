package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ltemarine/shiplog/internal/adapter"
	"github.com/ltemarine/shiplog/internal/logger"
	"github.com/ltemarine/shiplog/internal/store"
	"github.com/ltemarine/shiplog/internal/utils"
	"github.com/ltemarine/shiplog/models"
)

type clientAuthService struct {
	sessions store.SessionStore
	adapter  adapter.AuthAdapter
	logger   *logger.Logger

	now func() time.Time
}

func NewClientAuthService(sessions store.SessionStore, authAdapter adapter.AuthAdapter, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{sessions: sessions, adapter: authAdapter, logger: logger, now: time.Now}
}

// RequestCode implements [ClientAuthService].
func (s *clientAuthService) RequestCode(ctx context.Context, email string) (string, error) {
	resp, err := s.adapter.RequestCode(ctx, email)
	if err != nil {
		return "", fmt.Errorf("request login code: %w", err)
	}

	return resp.Token, nil
}

// VerifyCode implements [ClientAuthService]. The adapter stores the session
// token for subsequent calls; here the session is persisted so the next
// launch skips the login flow.
func (s *clientAuthService) VerifyCode(ctx context.Context, email, code, token string) (models.Session, error) {
	log := logger.FromContext(ctx)

	resp, err := s.adapter.VerifyCode(ctx, email, code, token)
	if err != nil {
		return models.Session{}, fmt.Errorf("verify login code: %w", err)
	}

	session := models.Session{
		User:  resp.User,
		Token: resp.SessionToken,
	}
	if expiresAt, expErr := utils.SessionExpiry(resp.SessionToken); expErr == nil {
		session.ExpiresAt = expiresAt
	}

	if err = s.sessions.SaveSession(ctx, session); err != nil {
		// Login still succeeded; only the next launch is affected.
		log.Warn().Err(err).Msg("persisting session failed")
	}

	return session, nil
}

// RestoreSession implements [ClientAuthService].
func (s *clientAuthService) RestoreSession(ctx context.Context) (models.Session, error) {
	session, err := s.sessions.LoadSession(ctx)
	if err != nil {
		return models.Session{}, err
	}

	if session.Expired(s.now()) {
		_ = s.sessions.ClearSession(ctx)
		return models.Session{}, store.ErrLocalSessionNotFound
	}

	s.adapter.SetToken(session.Token)
	return session, nil
}

// Logout implements [ClientAuthService].
func (s *clientAuthService) Logout(ctx context.Context) error {
	s.adapter.SetToken("")
	return s.sessions.ClearSession(ctx)
}
