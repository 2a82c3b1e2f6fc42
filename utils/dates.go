package utils

import (
	"strings"
	"time"
)

// DateLayout is the bare calendar-date form used throughout stored
// documents and bucket labels.
const DateLayout = "2006-01-02"

// ParseDate parses a stored date string into a UTC calendar date.
// Historical documents mix full timestamps ("2024-01-05T09:30:00Z" or
// with offsets) and bare dates ("2024-01-05"); timestamps are tried
// first, then the date prefix. Returns ok=false for empty or
// unparsable input instead of an error so callers can skip bad
// records without aborting a whole aggregation.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Midnight(t.UTC()), true
	}
	// Some writers drop the offset entirely.
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return Midnight(t), true
	}
	if len(s) >= len(DateLayout) {
		if t, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Midnight truncates t to 00:00:00 UTC on the same calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC calendar date.
func Today() time.Time {
	return Midnight(time.Now().UTC())
}

// FormatDate renders t as a bare date string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DatePrefix returns the first ten characters of a stored date string,
// the bare-date part, without validating it.
func DatePrefix(s string) string {
	if len(s) > len(DateLayout) {
		return s[:len(DateLayout)]
	}
	return strings.TrimSpace(s)
}
