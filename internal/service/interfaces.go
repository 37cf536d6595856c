package service

import (
	"context"

	"github.com/ltemarine/shiplog/models"
)

// UserDirectory is the subset of the remote base the auth service needs:
// login is only offered to provisioned users.
type UserDirectory interface {
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

type AuthService interface {
	RequestCode(ctx context.Context, email string) (string, error)
	VerifyCode(ctx context.Context, email, code, token string) (models.Session, error)
	ParseSessionToken(ctx context.Context, tokenString string) (string, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
}

type AppInfoService interface {
	Version(ctx context.Context) string
}
