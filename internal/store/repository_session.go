package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ltemarine/shiplog/internal/logger"
	"github.com/ltemarine/shiplog/models"
)

// sessionRepository persists the single login session as a JSON payload so
// the user stays signed in between app launches.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewSessionRepository(db *DB, logger *logger.Logger) SessionStore {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, saveSession, string(payload)); err != nil {
		log.Err(err).Str("func", "*sessionRepository.SaveSession").Msg("error: save failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

func (r *sessionRepository) LoadSession(ctx context.Context) (models.Session, error) {
	log := logger.FromContext(ctx)

	var payload string
	if err := r.db.QueryRowContext(ctx, getSession).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrLocalSessionNotFound
		}
		log.Err(err).Str("func", "*sessionRepository.LoadSession").Msg("error: scanning error")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		// A corrupt payload means the session is unusable; treat it as absent.
		log.Err(err).Str("func", "*sessionRepository.LoadSession").Msg("error: corrupt session payload")
		return models.Session{}, ErrLocalSessionNotFound
	}

	return session, nil
}

func (r *sessionRepository) ClearSession(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteSession); err != nil {
		log.Err(err).Str("func", "*sessionRepository.ClearSession").Msg("error: delete failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}
