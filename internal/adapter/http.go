package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ltemarine/shiplog/internal/config"
	"github.com/ltemarine/shiplog/internal/logger"
	"github.com/ltemarine/shiplog/models"
)

type httpAuthAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAuthAdapter constructs an HTTP/REST implementation of [AuthAdapter].
// It normalises and validates the base URL from cfg.AuthAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if cfg.AuthAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPAuthAdapter(cfg config.Client, logger *logger.Logger) (AuthAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.AuthAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid auth server address: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &httpAuthAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [AuthAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpAuthAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [AuthAdapter]. It returns the session token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpAuthAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// RequestCode implements [AuthAdapter]. It POSTs the email to
// POST /api/auth/request-code and returns the response carrying the signed
// verification token.
func (h *httpAuthAdapter) RequestCode(ctx context.Context, email string) (models.RequestCodeResponse, error) {
	var result models.RequestCodeResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RequestCodeRequest{Email: email}).
		SetResult(&result).
		Post("/api/auth/request-code")
	if err != nil {
		return models.RequestCodeResponse{}, fmt.Errorf("request code request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RequestCodeResponse{}, err
	}

	return result, nil
}

// VerifyCode implements [AuthAdapter]. It POSTs the code and verification
// token to POST /api/auth/verify-code. On success the returned session token
// is stored via SetToken.
func (h *httpAuthAdapter) VerifyCode(ctx context.Context, email, code, token string) (models.VerifyCodeResponse, error) {
	var result models.VerifyCodeResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.VerifyCodeRequest{Email: email, OTP: code, Token: token}).
		SetResult(&result).
		Post("/api/auth/verify-code")
	if err != nil {
		return models.VerifyCodeResponse{}, fmt.Errorf("verify code request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VerifyCodeResponse{}, err
	}

	h.SetToken(result.SessionToken)
	return result, nil
}

// CurrentUser implements [AuthAdapter]. It GETs /api/me with the stored
// session token.
func (h *httpAuthAdapter) CurrentUser(ctx context.Context) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetResult(&user).
		Get("/api/me")
	if err != nil {
		return models.User{}, fmt.Errorf("current user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// ServerVersion implements [AuthAdapter]. It GETs the plain-text
// GET /api/version endpoint.
func (h *httpAuthAdapter) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("server version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp.Body())), nil
}

func (h *httpAuthAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
