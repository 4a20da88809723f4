package Models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// DateOnly is a pure calendar date (year, month, day) with no time-of-day or
// timezone component. Assignment dates are stored and compared as DateOnly so
// a materialized day can never shift across a timezone conversion.
type DateOnly struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDateOnly(year int, month time.Month, day int) DateOnly {
	return DateOnly{Year: year, Month: month, Day: day}
}

// ParseDateOnly parses a YYYY-MM-DD string.
func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return DateOnly{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOnlyFromTime(t), nil
}

// DateOnlyFromTime truncates a timestamp to its calendar date in the
// timestamp's own location.
func DateOnlyFromTime(t time.Time) DateOnly {
	y, m, d := t.Date()
	return DateOnly{Year: y, Month: m, Day: d}
}

// Today returns the current calendar date in the given location.
func Today(loc *time.Location) DateOnly {
	if loc == nil {
		loc = time.Local
	}
	return DateOnlyFromTime(time.Now().In(loc))
}

func (d DateOnly) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d DateOnly) String() string {
	return d.Time().Format(dateOnlyLayout)
}

// Time returns the date at midnight UTC. Used only for calendar arithmetic,
// never persisted.
func (d DateOnly) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DayOfYear is 1-based: January 1st maps to 1.
func (d DateOnly) DayOfYear() int {
	return d.Time().YearDay()
}

func (d DateOnly) AddDays(n int) DateOnly {
	return DateOnlyFromTime(d.Time().AddDate(0, 0, n))
}

// Compare returns -1, 0 or 1 like time.Time.Compare.
func (d DateOnly) Compare(other DateOnly) int {
	a, b := d.Time(), other.Time()
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func (d DateOnly) Before(other DateOnly) bool { return d.Compare(other) < 0 }

func (d DateOnly) Equal(other DateOnly) bool { return d.Compare(other) == 0 }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = DateOnly{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date json: %s", s)
	}
	parsed, err := ParseDateOnly(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date as its ISO string so lexicographic comparison in SQL
// matches chronological order.
func (d DateOnly) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *DateOnly) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = DateOnly{}
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	case time.Time:
		*d = DateOnlyFromTime(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", value)
	}
}

func (d *DateOnly) scanString(s string) error {
	if len(s) > len(dateOnlyLayout) {
		// Some drivers hand back a full timestamp for date columns.
		s = s[:len(dateOnlyLayout)]
	}
	parsed, err := ParseDateOnly(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GormDataType maps DateOnly to a date column.
func (DateOnly) GormDataType() string {
	return "date"
}
