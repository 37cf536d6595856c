package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidToken        = errors.New("invalid verification token")
	ErrCodeExpired         = errors.New("verification code expired")
	ErrCodeMismatch        = errors.New("verification code does not match")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
