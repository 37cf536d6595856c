package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ltemarine/shiplog/internal/logger"
	"github.com/ltemarine/shiplog/internal/metocean"
	"github.com/ltemarine/shiplog/internal/service"
	"github.com/ltemarine/shiplog/models"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	services *service.ClientServices
	weather  *metocean.WeatherClient
}

func New(services *service.ClientServices, weather *metocean.WeatherClient, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services, weather: weather}, nil
}

// LoginFlow runs the email/code handshake and returns the resulting session.
func (t *TUI) LoginFlow(ctx context.Context) (models.Session, error) {
	pages := map[string]tea.Model{
		"email": NewEmailModel(ctx, t.services.AuthService),
		"code":  NewCodeModel(ctx, t.services.AuthService),
	}

	root := NewRootModel(pages, "email")
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return models.Session{}, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return models.Session{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return models.Session{}, ErrUserQuit
	}

	return result.resultSession, nil
}

// MainLoop runs the timesheet UI until the user quits or logs out.
func (t *TUI) MainLoop(ctx context.Context, session models.Session) (logout bool, err error) {
	model := newMainLoopModel(ctx, t.services, t.weather, session)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
