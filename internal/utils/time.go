package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrBadTime reports an input that is not a valid zero-padded 24-hour HHMM
// string.
var ErrBadTime = errors.New("time must be a 24-hour HHMM string")

// minutesInDay is used to normalise a wraparound interval when the end time
// lexically precedes the start time.
const minutesInDay = 24 * 60

// ParseHHMM converts an "HHMM" string into minutes since midnight. Inputs
// shorter than four characters are left-padded with zeros first, matching
// how partially typed values are normalised in entry forms.
func ParseHHMM(hhmm string) (int, error) {
	s := hhmm
	if len(s) < 4 {
		s = strings.Repeat("0", 4-len(s)) + s
	}
	if len(s) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, hhmm)
	}

	hours, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, hhmm)
	}
	minutes, err := strconv.Atoi(s[2:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, hhmm)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, hhmm)
	}

	return hours*60 + minutes, nil
}

// CalcDuration returns the number of minutes between two HHMM times. When
// end precedes start the interval is treated as wrapping past midnight and
// normalised by a full day, e.g. CalcDuration("2300", "0100") == 120.
// Invalid inputs yield 0.
func CalcDuration(start, end string) int {
	startMin, err := ParseHHMM(start)
	if err != nil {
		return 0
	}
	endMin, err := ParseHHMM(end)
	if err != nil {
		return 0
	}

	if endMin < startMin {
		endMin += minutesInDay
	}
	return endMin - startMin
}

// FormatTime renders "0930" as "09:30".
func FormatTime(hhmm string) string {
	s := hhmm
	if len(s) < 4 {
		s = strings.Repeat("0", 4-len(s)) + s
	}
	return s[:2] + ":" + s[2:4]
}

// FormatDuration renders minutes as a compact human duration:
// 125 -> "2h 5m", 60 -> "1h", 45 -> "45m".
func FormatDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// DateStr returns the ISO 8601 date offset days from today in local time.
func DateStr(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format("2006-01-02")
}

// FormatDateDisplay renders an ISO date as "17 February" for headings.
// Unparseable input is returned unchanged.
func FormatDateDisplay(dateStr string) string {
	d, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return dateStr
	}
	return fmt.Sprintf("%d %s", d.Day(), d.Month().String())
}
