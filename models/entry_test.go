package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEntry_Overlaps(t *testing.T) {
	base := Entry{Start: "0800", End: "1200"}

	assert.True(t, base.Overlaps(Entry{Start: "1100", End: "1300"}))
	assert.True(t, base.Overlaps(Entry{Start: "0700", End: "0900"}))
	assert.True(t, base.Overlaps(Entry{Start: "0900", End: "1000"}), "fully contained")
	assert.True(t, base.Overlaps(Entry{Start: "0700", End: "1300"}), "fully containing")

	assert.False(t, base.Overlaps(Entry{Start: "1200", End: "1400"}), "touching at the end")
	assert.False(t, base.Overlaps(Entry{Start: "0600", End: "0800"}), "touching at the start")
	assert.False(t, base.Overlaps(Entry{Start: "1300", End: "1500"}))
}

func TestEntry_IsLocal(t *testing.T) {
	assert.True(t, Entry{ID: "local_9f2c"}.IsLocal())
	assert.False(t, Entry{ID: "recA1B2C3"}.IsLocal())
	assert.False(t, Entry{}.IsLocal())
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()

	assert.False(t, Session{ExpiresAt: now.Add(time.Hour)}.Expired(now))
	assert.True(t, Session{ExpiresAt: now.Add(-time.Hour)}.Expired(now))
	assert.False(t, Session{}.Expired(now), "a session without expiry never self-expires")
}
