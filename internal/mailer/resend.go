// Package mailer delivers login codes through the Resend transactional
// email API. Email delivery itself is an external collaborator; this
// package only shapes and submits the request.
package mailer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ltemarine/shiplog/internal/config"
	"github.com/ltemarine/shiplog/internal/logger"
)

const defaultBaseURL = "https://api.resend.com"

// Mailer sends a one-time login code to a provisioned user.
type Mailer interface {
	SendLoginCode(ctx context.Context, email, name, code string) error
}

type resendMailer struct {
	http   *resty.Client
	from   string
	logger *logger.Logger
}

// Config carries the Resend credentials. BaseURL is overridable for tests.
type Config struct {
	APIKey  string
	From    string
	BaseURL string
	Timeout time.Duration
}

// NewResendMailer constructs a Mailer backed by the Resend HTTP API.
func NewResendMailer(cfg Config, log *logger.Logger) (Mailer, error) {
	if cfg.APIKey == "" || cfg.From == "" {
		return nil, fmt.Errorf("resend mailer: api key and sender are required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.APIKey).
		SetTimeout(cfg.Timeout)

	return &resendMailer{http: httpClient, from: cfg.From, logger: log}, nil
}

// NewResendMailerFromConfig maps the application email configuration onto a
// Mailer.
func NewResendMailerFromConfig(cfg config.Email, log *logger.Logger) (Mailer, error) {
	return NewResendMailer(Config{APIKey: cfg.ResendAPIKey, From: cfg.From}, log)
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendError struct {
	Message string `json:"message"`
}

// SendLoginCode implements Mailer. The plaintext code rides in a templated
// HTML body; the subject deliberately avoids naming the code itself.
func (m *resendMailer) SendLoginCode(ctx context.Context, email, name, code string) error {
	body := sendRequest{
		From:    m.from,
		To:      []string{email},
		Subject: "Your Login Code",
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your login code for Shiplog is: <strong>%s</strong></p><p>Passage is safe.</p>",
			name, code,
		),
	}

	resp, err := m.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetError(&sendError{}).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("send login code: %w", err)
	}

	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	message := ""
	if e, ok := resp.Error().(*sendError); ok && e != nil {
		message = e.Message
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode())
	}

	return fmt.Errorf("send login code: resend %d: %s", resp.StatusCode(), message)
}
