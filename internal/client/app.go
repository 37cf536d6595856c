package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/ltemarine/shiplog/internal/adapter"
	"github.com/ltemarine/shiplog/internal/airtable"
	"github.com/ltemarine/shiplog/internal/config"
	"github.com/ltemarine/shiplog/internal/logger"
	"github.com/ltemarine/shiplog/internal/metocean"
	"github.com/ltemarine/shiplog/internal/service"
	"github.com/ltemarine/shiplog/internal/store"
	"github.com/ltemarine/shiplog/internal/tui"
	"github.com/ltemarine/shiplog/models"
)

type App struct {
	services *service.ClientServices
	tui      *tui.TUI
	logger   *logger.Logger
}

func NewApp() (*App, error) {
	log := logger.NewClientLogger("client")

	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	ctx := context.Background()

	db, err := store.NewConnectSQLite(ctx, cfg.Client.DBPath, log)
	if err != nil {
		return nil, fmt.Errorf("open local cache: %w", err)
	}
	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate local cache: %w", err)
	}

	storages := store.NewStorages(db, log)
	if err = storages.ListStore.Seed(ctx); err != nil {
		return nil, fmt.Errorf("seed reference lists: %w", err)
	}

	base, err := airtable.NewClientFromConfig(cfg.Airtable, log)
	if err != nil {
		return nil, fmt.Errorf("create airtable client: %w", err)
	}

	authAdapter, err := adapter.NewHTTPAuthAdapter(cfg.Client, log)
	if err != nil {
		return nil, fmt.Errorf("create auth adapter: %w", err)
	}

	svcs := service.NewClientServices(storages, base, authAdapter, log)

	weather := metocean.NewWeatherClient(metocean.WeatherConfig{}, log)

	ui, err := tui.New(svcs, weather, log)
	if err != nil {
		return nil, fmt.Errorf("create terminal ui: %w", err)
	}

	return &App{services: svcs, tui: ui, logger: log}, nil
}

func (a *App) Run() error {
	ctx := context.Background()

	var session models.Session

	session, err := a.services.AuthService.RestoreSession(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrLocalSessionNotFound) {
			return fmt.Errorf("restore session: %w", err)
		}
		session, err = a.tui.LoginFlow(ctx)
		if err != nil {
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			return err
		}
	}

	logout, err := a.tui.MainLoop(ctx, session)
	if err != nil {
		return err
	}
	if logout {
		if err = a.services.AuthService.Logout(ctx); err != nil {
			a.logger.Warn().Err(err).Msg("logout cleanup failed")
		}
		return a.Run()
	}

	return nil
}
