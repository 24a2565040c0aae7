package model

import (
	"strings"
	"time"
)

// dayLayouts are the calendar formats accepted from source cells, tried in
// order. Timestamps are truncated to the date part before parsing.
var dayLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"2006/01/02",
}

// Day is a timezone-naive calendar day. The zero value means "no date".
type Day struct {
	t time.Time
}

// ParseDay parses a raw cell into a Day. Accepted inputs are date strings in
// one of the known layouts (optionally with a trailing time component) or an
// existing time value. Anything else yields the zero Day and false.
func ParseDay(v any) (Day, bool) {
	switch val := v.(type) {
	case Day:
		return val, !val.IsZero()
	case time.Time:
		if val.IsZero() {
			return Day{}, false
		}
		return DayOf(val), true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return Day{}, false
		}
		// Drop any time-of-day component ("2024-01-02T09:15:00", "1/2/2024 09:15").
		if i := strings.IndexAny(s, "T "); i > 0 {
			s = s[:i]
		}
		for _, layout := range dayLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return DayOf(t), true
			}
		}
	}
	return Day{}, false
}

// DayOf truncates a time to its calendar day.
func DayOf(t time.Time) Day {
	return Day{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// IsZero reports whether the day carries no date.
func (d Day) IsZero() bool { return d.t.IsZero() }

// Equal compares two days at calendar-day granularity.
func (d Day) Equal(other Day) bool { return d.t.Equal(other.t) }

// Before reports whether d falls before other.
func (d Day) Before(other Day) bool { return d.t.Before(other.t) }

// Time returns the underlying UTC-midnight time.
func (d Day) Time() time.Time { return d.t }

// Key returns the canonical map key for the day.
func (d Day) Key() string { return d.t.Format("2006-01-02") }

// String implements fmt.Stringer.
func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Key()
}

// MarshalJSON renders the day as a "2006-01-02" string.
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON parses a "2006-01-02" (or empty) string.
func (d *Day) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Day{}
		return nil
	}
	parsed, ok := ParseDay(s)
	if !ok {
		// Malformed dates degrade to the zero day rather than failing the row.
		*d = Day{}
		return nil
	}
	*d = parsed
	return nil
}
