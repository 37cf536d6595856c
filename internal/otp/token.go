// Package otp implements the stateless one-time-code credential used by the
// login handshake. A token is base64(JSON payload) + "." + hex(HMAC-SHA256
// over the serialized payload); no server-side record of issued tokens
// exists, so validity is proven entirely by the signature and the embedded
// expiry.
package otp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// CodeTTL is how long a minted code stays valid.
const CodeTTL = 10 * time.Minute

var (
	// ErrMalformedToken covers every parse failure: missing dot separator,
	// bad base64, bad JSON. Parsing fails closed into this one error so a
	// probing client learns nothing about which step rejected the token.
	ErrMalformedToken = errors.New("invalid token")

	// ErrBadSignature means the payload did not match its signature.
	ErrBadSignature = errors.New("token signature mismatch")

	// ErrCodeExpired means the signature checked out but the embedded
	// expiry has passed.
	ErrCodeExpired = errors.New("code expired")
)

// Payload is the signed token body. Field order matters: the signature is
// computed over the struct's JSON serialization, and Verify re-serializes
// through this same struct, so mint and verify always agree on key order.
type Payload struct {
	Email  string `json:"email"`
	OTP    string `json:"otp"`
	Expiry int64  `json:"expiry"` // unix seconds
}

// Matches reports whether the embedded email and code exactly equal the
// values submitted at verify time.
func (p Payload) Matches(email, code string) bool {
	return p.Email == email && p.OTP == code
}

// GenerateCode returns a 6-digit numeric code drawn uniformly from
// [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// NewPayload builds a payload for the given email and code expiring CodeTTL
// from now.
func NewPayload(email, code string, now time.Time) Payload {
	return Payload{Email: email, OTP: code, Expiry: now.Add(CodeTTL).Unix()}
}

// Mint serializes the payload and signs it with the server secret.
func Mint(payload Payload, secret string) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal token payload: %w", err)
	}

	return base64.StdEncoding.EncodeToString(raw) + "." + hex.EncodeToString(sign(raw, secret)), nil
}

// Verify parses a token, recomputes the signature over the re-serialized
// payload and compares it in constant time, then checks expiry against now.
// Splitting happens on the last dot so a payload containing "." cannot shift
// the signature boundary.
func Verify(token, secret string, now time.Time) (Payload, error) {
	dot := strings.LastIndex(token, ".")
	if dot <= 0 || dot == len(token)-1 {
		return Payload{}, ErrMalformedToken
	}

	raw, err := base64.StdEncoding.DecodeString(token[:dot])
	if err != nil {
		return Payload{}, ErrMalformedToken
	}

	var payload Payload
	if err = json.Unmarshal(raw, &payload); err != nil {
		return Payload{}, ErrMalformedToken
	}

	// Re-serialize through the struct rather than trusting the raw bytes:
	// the signature must hold for the payload as understood, not as sent.
	reserialized, err := json.Marshal(payload)
	if err != nil {
		return Payload{}, ErrMalformedToken
	}

	got, err := hex.DecodeString(token[dot+1:])
	if err != nil {
		return Payload{}, ErrMalformedToken
	}
	if !hmac.Equal(got, sign(reserialized, secret)) {
		return Payload{}, ErrBadSignature
	}

	if now.Unix() > payload.Expiry {
		return Payload{}, ErrCodeExpired
	}

	return payload, nil
}

func sign(payload []byte, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return mac.Sum(nil)
}
