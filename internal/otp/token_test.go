package otp

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-hmac-secret"

func TestGenerateCode_SixDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}

func TestMintVerify_RoundTrip(t *testing.T) {
	now := time.Now()
	payload := NewPayload("crew@fleet.example", "482910", now)

	token, err := Mint(payload, testSecret)
	require.NoError(t, err)
	require.Contains(t, token, ".")

	got, err := Verify(token, testSecret, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.True(t, got.Matches("crew@fleet.example", "482910"))
	assert.False(t, got.Matches("crew@fleet.example", "000000"))
	assert.False(t, got.Matches("other@fleet.example", "482910"))
}

func TestVerify_Expired(t *testing.T) {
	now := time.Now()
	token, err := Mint(NewPayload("crew@fleet.example", "482910", now), testSecret)
	require.NoError(t, err)

	_, err = Verify(token, testSecret, now.Add(CodeTTL+time.Second))
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := Mint(NewPayload("crew@fleet.example", "482910", time.Now()), testSecret)
	require.NoError(t, err)

	_, err = Verify(token, "another-secret", time.Now())
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerify_TamperedSignature(t *testing.T) {
	token, err := Mint(NewPayload("crew@fleet.example", "482910", time.Now()), testSecret)
	require.NoError(t, err)

	last := token[len(token)-1]
	flipped := byte('0')
	if last == '0' {
		flipped = '1'
	}
	tampered := token[:len(token)-1] + string(flipped)

	_, err = Verify(tampered, testSecret, time.Now())
	require.Error(t, err)
}

func TestVerify_TamperedPayload(t *testing.T) {
	now := time.Now()
	genuine, err := Mint(NewPayload("crew@fleet.example", "482910", now), testSecret)
	require.NoError(t, err)

	forged, err := Mint(NewPayload("admin@fleet.example", "482910", now), testSecret)
	require.NoError(t, err)

	// Genuine signature glued onto a different payload must not verify.
	dot := strings.LastIndex(forged, ".")
	genuineDot := strings.LastIndex(genuine, ".")
	spliced := forged[:dot] + genuine[genuineDot:]

	_, err = Verify(spliced, testSecret, now)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerify_Malformed(t *testing.T) {
	for _, token := range []string{
		"",
		"no-dot-here",
		".leading-dot",
		"trailing-dot.",
		"!!!notbase64!!!.abcdef",
	} {
		_, err := Verify(token, testSecret, time.Now())
		assert.ErrorIs(t, err, ErrMalformedToken, "token %q", token)
	}
}

func TestVerify_SplitsOnLastDot(t *testing.T) {
	// A base64 payload can legitimately contain no dot, but a payload value
	// with an embedded dot must not confuse the boundary.
	now := time.Now()
	token, err := Mint(NewPayload("crew@fleet.example", "48.29", now), testSecret)
	require.NoError(t, err)

	got, err := Verify(token, testSecret, now)
	require.NoError(t, err)
	assert.Equal(t, "48.29", got.OTP)
}
