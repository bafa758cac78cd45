package shared

import (
	"errors"
	"net/http"
	"time"
)

var ErrEmptyDate = errors.New("date value is empty")

// ParseDate accepts RFC3339 or YYYY-MM-DD. Date-only values are read as
// UTC midnight, which is how departure dates and measure target dates are
// compared against forecast horizons.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, ErrEmptyDate
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

// ParseInstant reads an optional point-in-time query parameter. A missing
// parameter yields nil, which report handlers treat as "now".
func ParseInstant(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
