package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "shiplog-test"
	testSignKey = "test-sign-key"
)

func TestGenerateSessionToken_RoundTrip(t *testing.T) {
	token, expiresAt, err := GenerateSessionToken(testIssuer, "crew@fleet.example", time.Hour, testSignKey)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	email, err := ValidateSessionToken(token, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, "crew@fleet.example", email)
}

func TestGenerateSessionToken_InvalidParams(t *testing.T) {
	_, _, err := GenerateSessionToken("", "crew@fleet.example", time.Hour, testSignKey)
	require.Error(t, err)

	_, _, err = GenerateSessionToken(testIssuer, "", time.Hour, testSignKey)
	require.Error(t, err)

	_, _, err = GenerateSessionToken(testIssuer, "crew@fleet.example", 0, testSignKey)
	require.Error(t, err)

	_, _, err = GenerateSessionToken(testIssuer, "crew@fleet.example", time.Hour, "")
	require.Error(t, err)
}

func TestValidateSessionToken_WrongKey(t *testing.T) {
	token, _, err := GenerateSessionToken(testIssuer, "crew@fleet.example", time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "some-other-key", testIssuer)
	require.Error(t, err)
}

func TestValidateSessionToken_WrongIssuer(t *testing.T) {
	token, _, err := GenerateSessionToken("someone-else", "crew@fleet.example", time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, testSignKey, testIssuer)
	require.Error(t, err)
}

func TestValidateSessionToken_Expired(t *testing.T) {
	token, _, err := GenerateSessionToken(testIssuer, "crew@fleet.example", -time.Minute, testSignKey)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, testSignKey, testIssuer)
	require.Error(t, err)
}

func TestSessionExpiry(t *testing.T) {
	token, expiresAt, err := GenerateSessionToken(testIssuer, "crew@fleet.example", time.Hour, testSignKey)
	require.NoError(t, err)

	got, err := SessionExpiry(token)
	require.NoError(t, err)
	assert.WithinDuration(t, expiresAt, got, time.Second)
}

func TestSessionExpiry_Garbage(t *testing.T) {
	_, err := SessionExpiry("not-a-jwt")
	require.Error(t, err)
}
