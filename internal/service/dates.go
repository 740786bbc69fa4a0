package service

import "time"

// parseDate accepts the date formats clients send ("2006-01-02" or RFC 3339).
// Empty input is a nil date, not an error.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
