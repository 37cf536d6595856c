package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHHMM_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0000", 0},
		{"0001", 1},
		{"0930", 570},
		{"2359", 1439},
		{"800", 480},  // padded to 0800
		{"45", 45},    // padded to 0045
		{"5", 5},      // padded to 0005
	}

	for _, tt := range tests {
		got, err := ParseHHMM(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseHHMM_Invalid(t *testing.T) {
	for _, in := range []string{"2400", "0060", "12:30", "ab30", "123456", "-100"} {
		_, err := ParseHHMM(in)
		require.Error(t, err, "input %q", in)
		assert.ErrorIs(t, err, ErrBadTime)
	}
}

func TestCalcDuration(t *testing.T) {
	assert.Equal(t, 270, CalcDuration("0800", "1230"))
	assert.Equal(t, 0, CalcDuration("0800", "0800"))
	assert.Equal(t, 1, CalcDuration("2359", "0000"))
}

func TestCalcDuration_WrapsPastMidnight(t *testing.T) {
	assert.Equal(t, 120, CalcDuration("2300", "0100"))
	assert.Equal(t, 480, CalcDuration("2200", "0600"))
}

func TestCalcDuration_InvalidInputIsZero(t *testing.T) {
	assert.Equal(t, 0, CalcDuration("garbage", "1200"))
	assert.Equal(t, 0, CalcDuration("1200", "garbage"))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "09:30", FormatTime("0930"))
	assert.Equal(t, "00:05", FormatTime("5"))
	assert.Equal(t, "23:59", FormatTime("2359"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45m", FormatDuration(45))
	assert.Equal(t, "1h", FormatDuration(60))
	assert.Equal(t, "2h 5m", FormatDuration(125))
	assert.Equal(t, "0m", FormatDuration(0))
}

func TestDateStr(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, today, DateStr(0))

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	assert.Equal(t, yesterday, DateStr(-1))
}

func TestFormatDateDisplay(t *testing.T) {
	assert.Equal(t, "17 February", FormatDateDisplay("2026-02-17"))
	assert.Equal(t, "1 January", FormatDateDisplay("2026-01-01"))
	assert.Equal(t, "not-a-date", FormatDateDisplay("not-a-date"))
}
