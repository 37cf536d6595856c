package airtable

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrNotFound means a lookup matched no record.
	ErrNotFound = errors.New("record not found")

	// ErrBadFieldMapping means the entry column mapping is incomplete.
	ErrBadFieldMapping = errors.New("invalid field mapping")
)

// apiError is the error envelope Airtable returns on non-2xx responses.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	if resp.StatusCode() == http.StatusNotFound {
		return ErrNotFound
	}

	var envelope apiError
	if err, ok := resp.Error().(*apiError); ok && err != nil {
		envelope = *err
	}
	message := envelope.Error.Message
	if message == "" {
		message = http.StatusText(resp.StatusCode())
	}

	return fmt.Errorf("airtable %d: %s", resp.StatusCode(), message)
}
