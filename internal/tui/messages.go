package tui

import "github.com/ltemarine/shiplog/models"

// NavigateTo switches the root router to another page. Payload, when set, is
// re-delivered to the target page instead of running its Init.
type NavigateTo struct {
	Page    string
	Payload any
}

// CodeRequested reports the outcome of the request-code step.
type CodeRequested struct {
	Email string
	Token string
	Err   error
}

// LoginResult finishes the login flow; the root router quits on success.
type LoginResult struct {
	Session models.Session
	Err     error
}
