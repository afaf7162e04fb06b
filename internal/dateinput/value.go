// Package dateinput implements the segmented dd/mm/yyyy editor: which segment
// has focus, how digits compose into it, stepping, deletion and paste.
package dateinput

import (
	"regexp"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/dateentry/internal/date"
)

// Segment identifies the field of the masked date that has logical focus.
type Segment int

const (
	SegmentNone Segment = iota
	SegmentDay
	SegmentMonth
	SegmentYear
)

// Placeholder returns the unset token for the segment's field.
func (s Segment) Placeholder() string {
	switch s {
	case SegmentDay:
		return "dd"
	case SegmentMonth:
		return "mm"
	case SegmentYear:
		return "yyyy"
	default:
		return ""
	}
}

// Spoken is the live-region text announced when the segment becomes active.
func (s Segment) Spoken() string {
	switch s {
	case SegmentDay:
		return "Day stepper selected"
	case SegmentMonth:
		return "Month stepper selected"
	case SegmentYear:
		return "Year stepper selected"
	default:
		return ""
	}
}

func (s Segment) String() string {
	switch s {
	case SegmentDay:
		return "day"
	case SegmentMonth:
		return "month"
	case SegmentYear:
		return "year"
	default:
		return "none"
	}
}

// ParseSegment is the inverse of String.
func ParseSegment(s string) (Segment, bool) {
	switch strings.ToLower(s) {
	case "day":
		return SegmentDay, true
	case "month":
		return SegmentMonth, true
	case "year":
		return SegmentYear, true
	case "none", "":
		return SegmentNone, true
	}
	return SegmentNone, false
}

// Empty is the all-placeholder value.
const Empty = "dd/mm/yyyy"

var shape = regexp.MustCompile(`^(\d{2}|dd)/(\d{2}|mm)/(\d{4}|yyyy)$`)

// Value is a masked date. Each field is either all digits or its placeholder.
type Value struct {
	day, month, year string
}

// EmptyValue returns a Value with every field unset.
func EmptyValue() Value {
	return Value{day: "dd", month: "mm", year: "yyyy"}
}

// ParseValue checks s against the masked shape.
func ParseValue(s string) (Value, bool) {
	m := shape.FindStringSubmatch(s)
	if m == nil {
		return EmptyValue(), false
	}
	return Value{day: m[1], month: m[2], year: m[3]}, true
}

// String renders dd/mm/yyyy.
func (v Value) String() string {
	return v.day + "/" + v.month + "/" + v.year
}

// Field returns the text of one segment.
func (v Value) Field(s Segment) string {
	switch s {
	case SegmentDay:
		return v.day
	case SegmentMonth:
		return v.month
	case SegmentYear:
		return v.year
	default:
		return ""
	}
}

// With returns a copy of v with segment s replaced.
func (v Value) With(s Segment, field string) Value {
	switch s {
	case SegmentDay:
		v.day = field
	case SegmentMonth:
		v.month = field
	case SegmentYear:
		v.year = field
	}
	return v
}

// IsSet reports whether segment s holds digits.
func (v Value) IsSet(s Segment) bool {
	f := v.Field(s)
	return f != "" && f != s.Placeholder()
}

// Date parses v when every field is numeric and forms a real calendar date.
func (v Value) Date() (date.Date, bool) {
	d, err := date.ParseMasked(v.String())
	if err != nil {
		return date.Date{}, false
	}
	return d, true
}

// AnchorDate is the date the calendar grid opens on: v when it parses,
// otherwise today.
func AnchorDate(v Value, now func() time.Time) date.Date {
	if d, ok := v.Date(); ok {
		return d
	}
	return date.Today(now)
}
