package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/ltemarine/shiplog/internal/airtable"
	"github.com/ltemarine/shiplog/internal/config"
	"github.com/ltemarine/shiplog/internal/logger"
	"github.com/ltemarine/shiplog/internal/mailer"
	"github.com/ltemarine/shiplog/internal/otp"
	"github.com/ltemarine/shiplog/internal/utils"
	"github.com/ltemarine/shiplog/models"
)

// authService implements the email one-time-code handshake. The server keeps
// no per-login state: the emailed code rides back to the server inside an
// HMAC-signed token, so verification needs only the shared secret.
type authService struct {
	// users resolves login emails against the provisioned user directory.
	users UserDirectory

	// mailer delivers the one-time code.
	mailer mailer.Mailer

	// tokenSecret signs and verifies one-time-code tokens.
	tokenSecret string

	// adminPassword, when non-empty, is accepted in place of a one-time
	// code. Used when email delivery is down.
	adminPassword string

	// sessionSignKey signs the JWT issued after a successful verify.
	sessionSignKey string

	// sessionIssuer is the "iss" claim of issued session tokens.
	sessionIssuer string

	// sessionDuration controls how long a session token remains valid.
	sessionDuration time.Duration

	// now is the clock; a field so tests can freeze it.
	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given user directory
// and mailer, with security parameters taken from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(users UserDirectory, codeMailer mailer.Mailer, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		users:           users,
		mailer:          codeMailer,
		tokenSecret:     cfg.TokenSecret,
		adminPassword:   cfg.AdminPassword,
		sessionSignKey:  cfg.SessionSignKey,
		sessionIssuer:   cfg.SessionIssuer,
		sessionDuration: cfg.SessionDuration,
		now:             time.Now,
		logger:          logger,
	}
}

// RequestCode starts a login: it checks the email belongs to a provisioned
// user, emails a fresh six-digit code, and returns the signed token the
// client must echo back to VerifyCode.
//
// Returns ErrUserNotFound for unknown emails. The HTTP layer surfaces that
// distinctly; hiding it would not help since the login form is only reachable
// by crew who already know the fleet's addresses.
func (a *authService) RequestCode(ctx context.Context, email string) (string, error) {
	log := logger.FromContext(ctx)

	if email == "" {
		log.Error().Msg("empty email provided")
		return "", ErrInvalidDataProvided
	}

	user, err := a.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, airtable.ErrNotFound) {
			log.Warn().Str("email", email).Msg("login requested for unknown email")
			return "", ErrUserNotFound
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return "", fmt.Errorf("user search by email failed: %w", err)
	}

	code, err := otp.GenerateCode()
	if err != nil {
		log.Err(err).Msg("one-time code generation failed")
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	token, err := otp.Mint(otp.NewPayload(email, code, a.now()), a.tokenSecret)
	if err != nil {
		log.Err(err).Msg("one-time code token signing failed")
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	if err = a.mailer.SendLoginCode(ctx, email, user.Name, code); err != nil {
		log.Err(err).Str("email", email).Msg("sending login code failed")
		return "", fmt.Errorf("sending login code failed: %w", err)
	}

	log.Info().Str("email", email).Msg("login code sent")
	return token, nil
}

// VerifyCode finishes a login. The usual path checks the submitted code
// against the signed token; the admin override path accepts the configured
// admin password in place of a code and skips the token entirely.
//
// On success it issues a signed session token and returns the full session.
func (a *authService) VerifyCode(ctx context.Context, email, code, token string) (models.Session, error) {
	log := logger.FromContext(ctx)

	if email == "" || code == "" {
		log.Error().Msg("empty email or code provided")
		return models.Session{}, ErrInvalidDataProvided
	}

	if a.isAdminOverride(code) {
		log.Warn().Str("email", email).Msg("admin override password used for login")
	} else {
		payload, err := otp.Verify(token, a.tokenSecret, a.now())
		if err != nil {
			if errors.Is(err, otp.ErrCodeExpired) {
				log.Warn().Str("email", email).Msg("verification code expired")
				return models.Session{}, ErrCodeExpired
			}
			log.Warn().Str("email", email).Err(err).Msg("verification token rejected")
			return models.Session{}, ErrInvalidToken
		}

		if !payload.Matches(email, code) {
			log.Warn().Str("email", email).Msg("verification code mismatch")
			return models.Session{}, ErrCodeMismatch
		}
	}

	user, err := a.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, airtable.ErrNotFound) {
			return models.Session{}, ErrUserNotFound
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.Session{}, fmt.Errorf("user search by email failed: %w", err)
	}

	sessionToken, expiresAt, err := utils.GenerateSessionToken(a.sessionIssuer, email, a.sessionDuration, a.sessionSignKey)
	if err != nil {
		log.Err(err).Str("email", email).Msg("session token creation failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	log.Info().Str("email", email).Str("role", user.Role).Msg("login verified")
	return models.Session{User: user, Token: sessionToken, ExpiresAt: expiresAt}, nil
}

// ParseSessionToken validates a session JWT and returns the email it was
// issued to. Any validation failure is normalised to
// ErrTokenIsExpiredOrInvalid so callers do not inspect low-level JWT errors.
func (a *authService) ParseSessionToken(ctx context.Context, tokenString string) (string, error) {
	email, err := utils.ValidateSessionToken(tokenString, a.sessionSignKey, a.sessionIssuer)
	if err != nil {
		return "", ErrTokenIsExpiredOrInvalid
	}

	return email, nil
}

// UserByEmail resolves the current user for an authenticated request.
func (a *authService) UserByEmail(ctx context.Context, email string) (models.User, error) {
	user, err := a.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, airtable.ErrNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	return user, nil
}

func (a *authService) isAdminOverride(code string) bool {
	if a.adminPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(a.adminPassword)) == 1
}
