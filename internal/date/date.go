// Package date provides a local calendar Date and the arithmetic the picker
// needs: day/month/year shifts, week and month boundaries, and parsing of the
// ISO and dd/mm/yyyy forms.
package date

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

const (
	isoFormat    = "2006-01-02"
	maskedFormat = "02/01/2006"
)

var (
	maskedPattern  = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	weekPattern    = regexp.MustCompile(`^(\d{4})-?W(\d{2})(?:-?([1-7]))?$`)
	ordinalPattern = regexp.MustCompile(`^(\d{4})-?(\d{3})$`)
)

// isoLayouts are tried in order by ParseISO.
var isoLayouts = []string{
	isoFormat,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"20060102",
	"2006-01",
	"2006",
}

// Earliest and Latest bound the dates a four-digit year can express.
var (
	Earliest = New(1, time.January, 1)
	Latest   = New(9999, time.December, 31) //nolint:mnd // last four-digit year
)

// Date represents a calendar date anchored at local midnight.
type Date struct {
	time.Time
}

// New creates a Date from year, month, day. Out-of-range values normalize
// the way time.Date does.
func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// FromTime drops the clock part of t.
func FromTime(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// Today returns the current date according to now. A nil now uses time.Now.
func Today(now func() time.Time) Date {
	if now == nil {
		now = time.Now
	}
	return FromTime(now())
}

// ParseISO parses an ISO-8601 date or date-time and keeps the calendar date.
// Week dates (2024-W33-1) and ordinal dates (2024-232) are accepted too.
func ParseISO(s string) (Date, error) {
	if m := weekPattern.FindStringSubmatch(s); m != nil {
		return parseWeekDate(s, m)
	}
	if m := ordinalPattern.FindStringSubmatch(s); m != nil {
		return parseOrdinalDate(s, m)
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return New(t.Year(), t.Month(), t.Day()), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q: expected ISO-8601", s)
}

// parseWeekDate resolves YYYY-Www[-D]. Week 1 holds January 4th and weeks
// start on Monday. A missing weekday means Monday.
func parseWeekDate(s string, m []string) (Date, error) {
	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	day := 1
	if m[3] != "" {
		day, _ = strconv.Atoi(m[3])
	}

	const daysPerWeek = 7
	jan4 := New(year, time.January, 4)
	monday := jan4.AddDays(-((int(jan4.Weekday()) + daysPerWeek - 1) % daysPerWeek))
	d := monday.AddDays((week-1)*daysPerWeek + day - 1)

	if y, w := d.ISOWeek(); y != year || w != week {
		return Date{}, fmt.Errorf("invalid date %q: %d has no week %d", s, year, week)
	}
	return d, nil
}

// parseOrdinalDate resolves YYYY-DDD, the day of the year counted from 1.
func parseOrdinalDate(s string, m []string) (Date, error) {
	year, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])

	d := New(year, time.January, day)
	if day < 1 || d.Year() != year {
		return Date{}, fmt.Errorf("invalid date %q: %d has no day %d", s, year, day)
	}
	return d, nil
}

// ParseMasked parses a strict dd/mm/yyyy string.
func ParseMasked(s string) (Date, error) {
	if !maskedPattern.MatchString(s) {
		return Date{}, fmt.Errorf("invalid date %q: expected dd/mm/yyyy", s)
	}
	t, err := time.Parse(maskedFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return New(t.Year(), t.Month(), t.Day()), nil
}

// ParseAny accepts either form, ISO first.
func ParseAny(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if d, err := ParseISO(s); err == nil {
		return d, nil
	}
	return ParseMasked(s)
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time.Format(isoFormat)
}

// Masked returns the date as dd/mm/yyyy.
func (d Date) Masked() string {
	return d.Time.Format(maskedFormat)
}

// Equal reports whether d and o are the same calendar day.
func (d Date) Equal(o Date) bool {
	y1, m1, d1 := d.Date()
	y2, m2, d2 := o.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Before reports whether d is an earlier calendar day than o.
func (d Date) Before(o Date) bool {
	return !d.Equal(o) && d.Time.Before(o.Time)
}

// Within reports whether d falls in the closed interval [start, end].
func (d Date) Within(start, end Date) bool {
	return !d.Before(start) && !end.Before(d)
}

// Clamp limits d to [lo, hi].
func (d Date) Clamp(lo, hi Date) Date {
	switch {
	case d.Before(lo):
		return lo
	case hi.Before(d):
		return hi
	default:
		return d
	}
}

// AddDays shifts by n days.
func (d Date) AddDays(n int) Date {
	return New(d.Year(), d.Month(), d.Day()+n)
}

// AddMonths shifts by n months, clamping the day to the target month's length.
func (d Date) AddMonths(n int) Date {
	first := New(d.Year(), d.Month()+time.Month(n), 1)
	day := min(d.Day(), first.DaysInMonth())
	return New(first.Year(), first.Month(), day)
}

// AddYears shifts by n years. Feb 29 lands on Feb 28 in common years.
func (d Date) AddYears(n int) Date {
	return d.AddMonths(n * 12) //nolint:mnd // months per year
}

// StartOfMonth returns the 1st of d's month.
func (d Date) StartOfMonth() Date {
	return New(d.Year(), d.Month(), 1)
}

// EndOfMonth returns the last day of d's month.
func (d Date) EndOfMonth() Date {
	return New(d.Year(), d.Month()+1, 0)
}

// DaysInMonth returns the number of days in d's month.
func (d Date) DaysInMonth() int {
	return d.EndOfMonth().Day()
}

// StartOfWeek returns the most recent day on or before d whose weekday is ws.
func (d Date) StartOfWeek(ws time.Weekday) Date {
	diff := (int(d.Weekday()) - int(ws) + 7) % 7 //nolint:mnd // days per week
	return d.AddDays(-diff)
}

// EndOfWeek returns the last day of the week containing d for week start ws.
func (d Date) EndOfWeek(ws time.Weekday) Date {
	return d.StartOfWeek(ws).AddDays(6) //nolint:mnd // last offset in a week
}

// MarshalYAML implements yaml.Marshaler.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.v3 Unmarshaler.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseAny(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAny(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
