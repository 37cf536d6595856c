package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken creates a signed HMAC-SHA256 JWT for the given user
// email. The email rides in the "sub" claim; "iss", "iat" and "exp" are the
// standard registered claims. All parameters are required.
func GenerateSessionToken(issuer, email string, tokenDuration time.Duration, signKey string) (string, time.Time, error) {
	if issuer == "" || email == "" || tokenDuration == 0 || signKey == "" {
		return "", time.Time{}, errors.New("invalid params for generating session token")
	}

	now := time.Now()
	expiresAt := now.Add(tokenDuration)
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error occurred during signing session token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateSessionToken verifies the signature, issuer and expiry of a session
// token and returns the email from the "sub" claim.
func ValidateSessionToken(tokenString, signKey, issuer string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("error occurred validating session token: %w", err)
	}

	email, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error occurred getting subject from token: %w", err)
	}
	if email == "" {
		return "", errors.New("empty subject error")
	}

	return email, nil
}

// SessionExpiry extracts the "exp" claim without verifying the signature.
// The client uses it to persist the session expiry alongside the token; the
// server still verifies the token on every request.
func SessionExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, errors.New("token has no expiry claim")
	}
	return exp.Time, nil
}
