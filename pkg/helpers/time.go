package helpers

import (
	"strings"
	"time"
)

// API dates arrive either as plain dates from <input type="date"> or as full timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02 15:04:05 -0700",
}

// ParseTime parses s with the first matching layout. Plain dates resolve to UTC midnight.
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

// DateOnly returns the YYYY-MM-DD value used by date inputs, as written in s's own offset.
func DateOnly(s string) string {
	if t, ok := ParseTime(s); ok {
		return t.Format("2006-01-02")
	}
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}
