package calculator

import (
	"strconv"
	"strings"
	"time"
)

// Accepted date layouts, tried in order. The bare month/day form takes the
// year from the reference time.
var dateLayouts = []string{
	"2006/01/02",
	"2006-01-02",
	"2006/01/02 15:04",
	"2006-01-02 15:04",
	"01/02",
	"20060102",
}

// ParseDate parses an operator-supplied date string. now supplies the year
// for the bare MM/DD form. The result is truncated to a UTC date.
func ParseDate(raw string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, &UnparseableDateError{Raw: raw}
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if layout == "01/02" {
			t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return DateOnly(t), nil
	}

	return time.Time{}, &UnparseableDateError{Raw: raw}
}

// DateOnly truncates a time to its UTC calendar date. Dispatch dates are
// compared by equality, so every date in the system passes through here.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParsePSI parses a strength code from loose input. "psi" and any other
// non-digit characters are stripped; a short code gets "00" appended, so
// "30" reads as 3000. Returns false when no digits remain.
func ParsePSI(raw string) (int, bool) {
	s := strings.ReplaceAll(strings.ToLower(raw), "psi", "")

	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}

	code := digits.String()
	if len(code) <= 2 {
		code += "00"
	}

	psi, err := strconv.Atoi(code)
	if err != nil {
		return 0, false
	}
	return psi, true
}
