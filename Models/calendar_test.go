package Models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDateOnly(t *testing.T) {
	d, err := ParseDateOnly("2026-03-09")
	if err != nil {
		t.Fatalf("ParseDateOnly failed: %v", err)
	}
	if d.Year != 2026 || d.Month != time.March || d.Day != 9 {
		t.Fatalf("unexpected date: %+v", d)
	}
	if got := d.String(); got != "2026-03-09" {
		t.Fatalf("String() = %q, want 2026-03-09", got)
	}

	for _, bad := range []string{"", "2026-13-01", "09/03/2026", "2026-03-09T10:00:00Z"} {
		if _, err := ParseDateOnly(bad); err == nil {
			t.Fatalf("ParseDateOnly(%q) should have failed", bad)
		}
	}
}

func TestDayOfYearIsOneBased(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2026-01-01", 1},
		{"2026-02-01", 32},
		{"2026-12-31", 365},
		{"2024-12-31", 366}, // leap year
		{"2024-03-01", 61},
	}
	for _, tt := range tests {
		d, err := ParseDateOnly(tt.date)
		if err != nil {
			t.Fatalf("ParseDateOnly(%q) failed: %v", tt.date, err)
		}
		if got := d.DayOfYear(); got != tt.want {
			t.Fatalf("DayOfYear(%s) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestAddDaysCrossesBoundaries(t *testing.T) {
	tests := []struct {
		date string
		n    int
		want string
	}{
		{"2026-01-31", 1, "2026-02-01"},
		{"2026-12-31", 1, "2027-01-01"},
		{"2026-01-01", -1, "2025-12-31"},
		{"2024-02-28", 1, "2024-02-29"},
		{"2026-03-15", 0, "2026-03-15"},
	}
	for _, tt := range tests {
		d, err := ParseDateOnly(tt.date)
		if err != nil {
			t.Fatalf("ParseDateOnly(%q) failed: %v", tt.date, err)
		}
		if got := d.AddDays(tt.n).String(); got != tt.want {
			t.Fatalf("%s.AddDays(%d) = %s, want %s", tt.date, tt.n, got, tt.want)
		}
	}
}

func TestDateOnlyCompare(t *testing.T) {
	a := NewDateOnly(2026, time.May, 10)
	b := NewDateOnly(2026, time.May, 11)
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Fatalf("Compare ordering wrong")
	}
	if !a.Before(b) || b.Before(a) {
		t.Fatalf("Before ordering wrong")
	}
	if !a.Equal(a) || a.Equal(b) {
		t.Fatalf("Equal wrong")
	}
}

func TestDateOnlyJSONRoundTrip(t *testing.T) {
	d := NewDateOnly(2026, time.August, 31)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"2026-08-31"` {
		t.Fatalf("Marshal = %s", data)
	}

	var back DateOnly
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip changed date: %s != %s", back, d)
	}

	var zero DateOnly
	if err := json.Unmarshal([]byte("null"), &zero); err != nil {
		t.Fatalf("Unmarshal null failed: %v", err)
	}
	if !zero.IsZero() {
		t.Fatalf("null should scan to zero date, got %+v", zero)
	}
}

func TestDateOnlyScan(t *testing.T) {
	var d DateOnly
	if err := d.Scan("2026-07-04"); err != nil {
		t.Fatalf("Scan string failed: %v", err)
	}
	if d.String() != "2026-07-04" {
		t.Fatalf("Scan string = %s", d)
	}

	if err := d.Scan([]byte("2026-07-05")); err != nil {
		t.Fatalf("Scan bytes failed: %v", err)
	}
	if d.String() != "2026-07-05" {
		t.Fatalf("Scan bytes = %s", d)
	}

	// Some drivers return a full timestamp for date columns.
	if err := d.Scan("2026-07-06 00:00:00+00:00"); err != nil {
		t.Fatalf("Scan timestamp string failed: %v", err)
	}
	if d.String() != "2026-07-06" {
		t.Fatalf("Scan timestamp string = %s", d)
	}

	if err := d.Scan(time.Date(2026, time.July, 7, 23, 59, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan time.Time failed: %v", err)
	}
	if d.String() != "2026-07-07" {
		t.Fatalf("Scan time.Time = %s", d)
	}

	if err := d.Scan(42); err == nil {
		t.Fatalf("Scan int should have failed")
	}

	v, err := NewDateOnly(2026, time.July, 8).Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if v != "2026-07-08" {
		t.Fatalf("Value = %v", v)
	}
}
