package entities

import (
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing free-text dates from CSV
// cells. Rows that match none of them keep their text fallback field.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"1/2/2006",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006",
}

// ParseDate parses a date string from an import row. Returns nil (not an
// error) for empty input.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return &t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// formatDate renders a nullable date for diffs and CSV dumps.
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// CleanValue normalizes an incoming CSV cell: trims whitespace and strips
// the "00:00:00" artifact left by spreadsheet date cells.
func CleanValue(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "00:00:00", ""))
}
