package models

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDate is returned for strings that are not a calendar date.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate accepts a calendar day ("2025-03-31", read as UTC midnight) or
// an RFC 3339 timestamp. The result is always in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidDate
}
