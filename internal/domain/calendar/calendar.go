package calendar

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

// Months holds the full English month names indexed from January.
var Months = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// layouts accepted for work-log dates, tried in order.
var layouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
}

// ParseDate parses a client supplied date. Zoned inputs are normalized to UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDate
	}

	for _, layout := range layouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, ErrInvalidDate
}

// MonthName returns the English name of the calendar month of date.
func MonthName(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}

	return Months[t.Month()-1], nil
}

// MonthNumber maps a month name (any casing) to 1..12.
func MonthNumber(name string) (int, bool) {
	name = strings.TrimSpace(name)

	for i, m := range Months {
		if strings.EqualFold(m, name) {
			return i + 1, true
		}
	}

	return 0, false
}
