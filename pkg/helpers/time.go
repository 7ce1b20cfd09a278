package helpers

import (
	"strings"
	"time"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTime accepts the ISO-8601 shapes Postgres emits for timestamptz,
// timestamp and date values.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseTimePtr maps nil, empty or unparseable input to nil, never to the zero time.
func ParseTimePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, ok := ParseTime(*s)
	if !ok {
		return nil
	}
	return &t
}
