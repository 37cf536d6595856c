// Package adapter provides the transport layer for communicating with the
// shiplog auth server.
//
// The primary abstraction is [AuthAdapter], which decouples the client's
// service layer from the underlying protocol. Error values defined in
// errors.go are mapped from HTTP status codes by mapHTTPError so that callers
// can use [errors.Is] for transport-agnostic error handling.
package adapter

import (
	"context"

	"github.com/ltemarine/shiplog/models"
)

// AuthAdapter defines transport-agnostic communication with the auth server.
// Implementations are responsible for serialisation, authentication header
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type AuthAdapter interface {
	// SetToken stores the session token that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful VerifyCode or when restoring a persisted session.
	SetToken(token string)

	// Token returns the session token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// RequestCode asks the server to email a one-time login code and returns
	// the signed verification token that must accompany the verify step.
	RequestCode(ctx context.Context, email string) (models.RequestCodeResponse, error)

	// VerifyCode submits the emailed code together with the verification
	// token. On success the returned session token is stored via SetToken.
	VerifyCode(ctx context.Context, email, code, token string) (models.VerifyCodeResponse, error)

	// CurrentUser fetches the user record behind the stored session token.
	CurrentUser(ctx context.Context) (models.User, error)

	// ServerVersion fetches the server's version string.
	ServerVersion(ctx context.Context) (string, error)
}
