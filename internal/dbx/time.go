package dbx

import (
	"database/sql"
	"time"
)

// Timestamps are stored as RFC 3339 text so rows stay readable with any
// sqlite tooling and comparisons sort correctly.
const timeLayout = time.RFC3339Nano

// FormatTime renders t for storage (UTC, RFC 3339).
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// ParseTime parses a value written by FormatTime.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// FormatNullTime renders an optional timestamp; nil maps to SQL NULL.
func FormatNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return FormatTime(*t)
}

// ParseNullTime converts a nullable column back to an optional timestamp.
func ParseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := ParseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
