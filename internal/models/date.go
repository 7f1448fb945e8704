package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// Date is a calendar date stored as "YYYY-MM-DD".
// Drivers disagree on what a DATE column scans into (string, []byte or time.Time),
// so Scan accepts all three and always normalizes to the text form.
type Date string

// ParseDate validates s as YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(t.Format(DateLayout)), nil
}

// DateOf truncates t to its calendar date in t's own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

func (d Date) String() string { return string(d) }

// Time returns midnight UTC of d.
func (d Date) Time() (time.Time, error) {
	return time.Parse(DateLayout, string(d))
}

func (d Date) Value() (driver.Value, error) {
	return string(d), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case string:
		*d = Date(trimDate(v))
	case []byte:
		*d = Date(trimDate(string(v)))
	case time.Time:
		*d = Date(v.Format(DateLayout))
	default:
		return fmt.Errorf("scan date: unsupported type %T", src)
	}
	return nil
}

// trimDate drops a time part some drivers append to DATE values.
func trimDate(s string) string {
	if len(s) > len(DateLayout) {
		return s[:len(DateLayout)]
	}
	return s
}
