package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ltemarine/shiplog/internal/service"
)

// CodeModel is the second login page. It holds the email and the signed
// verification token from the request-code step and submits the code the
// user received by mail. The admin override password is accepted here too,
// so the input is not restricted to digits.
type CodeModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	email string
	token string

	input      textinput.Model
	submitting bool
	errMsg     string
}

func NewCodeModel(ctx context.Context, auth service.ClientAuthService) *CodeModel {
	codeInput := textinput.New()
	codeInput.Placeholder = "6-digit code"
	codeInput.CharLimit = 64
	codeInput.Width = 40

	return &CodeModel{
		ctx:   ctx,
		auth:  auth,
		input: codeInput,
	}
}

func (m *CodeModel) Init() tea.Cmd {
	m.input.Focus()
	return textinput.Blink
}

func (m *CodeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case CodeRequested:
		// Delivered as navigation payload from the email page.
		m.email = msg.Email
		m.token = msg.Token
		m.input.SetValue("")
		m.input.Focus()
		m.errMsg = ""
		return m, textinput.Blink
	case LoginResult:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: "email"} }
		case "enter":
			if m.submitting {
				return m, nil
			}

			code := strings.TrimSpace(m.input.Value())
			if code == "" {
				m.errMsg = "Enter the code from the email"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdVerify(code)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *CodeModel) View() string {
	var b strings.Builder
	b.WriteString("A login code was sent to " + m.email + "\n\n")
	b.WriteString("Code │ [")
	b.WriteString(m.input.View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Verifying...]\n")
	} else {
		b.WriteString("\n[Verify]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("ENTER CODE", strings.TrimRight(b.String(), "\n"), "enter: verify │ esc: different email")
}

func (m *CodeModel) cmdVerify(code string) tea.Cmd {
	ctx := m.ctx
	auth := m.auth
	email := m.email
	token := m.token

	return func() tea.Msg {
		session, err := auth.VerifyCode(ctx, email, code, token)
		return LoginResult{Session: session, Err: err}
	}
}
