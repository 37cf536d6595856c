package models

// RequestCodeRequest is the body of POST /api/auth/request-code.
type RequestCodeRequest struct {
	Email string `json:"email"`
}

// RequestCodeResponse carries the signed one-time-code token back to the
// client. The token is not persisted server-side; the verify step proves it
// by signature alone.
type RequestCodeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// VerifyCodeRequest is the body of POST /api/auth/verify-code. Token must be
// the unmodified value returned by the request-code step.
type VerifyCodeRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
	Token string `json:"token"`
}

// VerifyCodeResponse returns the sanitized user identity together with the
// session token for subsequent authenticated calls.
type VerifyCodeResponse struct {
	Success      bool   `json:"success"`
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// APIError is the uniform error body for all auth endpoints.
type APIError struct {
	Error string `json:"error"`
}
