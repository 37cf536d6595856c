package store

import "errors"

var (
	ErrLocalSessionNotFound = errors.New("local session not found")
	ErrEntryNotFound        = errors.New("cached entry not found")
)
