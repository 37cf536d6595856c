package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ltemarine/shiplog/internal/service"
)

// EmailModel is the first login page: a single email input. Submitting asks
// the auth server to email a one-time code and navigates to the code page.
type EmailModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	input      textinput.Model
	submitting bool
	errMsg     string
}

func NewEmailModel(ctx context.Context, auth service.ClientAuthService) *EmailModel {
	emailInput := textinput.New()
	emailInput.Placeholder = "name@fleet.example"
	emailInput.CharLimit = 254
	emailInput.Width = 40
	emailInput.Focus()

	return &EmailModel{
		ctx:   ctx,
		auth:  auth,
		input: emailInput,
	}
}

func (m *EmailModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *EmailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(CodeRequested); ok {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = result.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		return m, func() tea.Msg {
			return NavigateTo{Page: "code", Payload: result}
		}
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		if m.submitting {
			return m, nil
		}

		email := strings.TrimSpace(strings.ToLower(m.input.Value()))
		if email == "" || !strings.Contains(email, "@") {
			m.errMsg = "Enter a valid email address"
			return m, nil
		}

		m.errMsg = ""
		m.submitting = true
		return m, m.cmdRequestCode(email)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *EmailModel) View() string {
	var b strings.Builder
	b.WriteString("Email │ [")
	b.WriteString(m.input.View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Sending code...]\n")
	} else {
		b.WriteString("\n[Send login code]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("SIGN IN", strings.TrimRight(b.String(), "\n"), "enter: send code")
}

func (m *EmailModel) cmdRequestCode(email string) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		token, err := auth.RequestCode(ctx, email)
		return CodeRequested{Email: email, Token: token, Err: err}
	}
}
