package service

import (
	"github.com/ltemarine/shiplog/internal/config"
	"github.com/ltemarine/shiplog/internal/logger"
	"github.com/ltemarine/shiplog/internal/mailer"
)

type Services struct {
	AuthService    AuthService
	AppInfoService AppInfoService
}

func NewServices(users UserDirectory, codeMailer mailer.Mailer, cfg config.App, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(users, codeMailer, cfg, logger),
		AppInfoService: NewAppInfoService(cfg, logger),
	}
}
