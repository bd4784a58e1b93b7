// Package clock converts between the wire representation of calendar values
// ("15:04" times, "2006-01-02" dates) and the store's native time and date columns.
package clock

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	timeLayout     = "15:04"
	longTimeLayout = "15:04:05"
	dateLayout     = "2006-01-02"
)

// Time is a wall-clock time of day with minute precision.
type Time struct {
	Hour   int
	Minute int
}

// ParseTime accepts "HH:MM" or "HH:MM:SS". Seconds are dropped.
func ParseTime(s string) (Time, error) {
	s = strings.TrimSpace(s)
	layout := timeLayout
	if strings.Count(s, ":") == 2 {
		layout = longTimeLayout
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return Time{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return Time{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// ParseTimePtr returns nil for an empty or nil input.
func ParseTimePtr(s *string) (*Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseTime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// FormatTime returns nil for a nil time, the "HH:MM" string otherwise.
func FormatTime(t *Time) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}

func (t Time) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:00", t.Hour, t.Minute), nil
}

func (t *Time) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*t = Time{Hour: v.Hour(), Minute: v.Minute()}
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	default:
		return fmt.Errorf("clock.Time: unsupported scan type %T", value)
	}
}

func (t *Time) scanString(s string) error {
	// postgres may append fractional seconds
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Time) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Before reports whether t is strictly earlier than u.
func (t Time) Before(u Time) bool {
	if t.Hour != u.Hour {
		return t.Hour < u.Hour
	}
	return t.Minute < u.Minute
}

// Date is a calendar date without a time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

// ParseDatePtr returns nil for an empty or nil input.
func ParseDatePtr(s *string) (*Date, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	d, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// DateOf returns the date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// FormatDate returns nil for a nil date.
func FormatDate(d *Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("clock.Date: unsupported scan type %T", value)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
