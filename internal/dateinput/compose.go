package dateinput

import (
	"strconv"
	"time"
)

// composer computes the field that results from typing digit into field.
// advance reports that the segment is complete and focus moves on.
type composer func(field string, tracking bool, digit byte) (next string, advance bool)

// step computes the field after an Up (delta 1) or Down (delta -1) press.
type stepper func(field string, delta int, now func() time.Time) string

// transitions is the per-segment transition table. Year is terminal, so its
// successor is itself.
var transitions = map[Segment]struct {
	compose composer
	step    stepper
	next    Segment
}{
	SegmentDay:   {compose: composeDay, step: stepDay, next: SegmentMonth},
	SegmentMonth: {compose: composeMonth, step: stepMonth, next: SegmentYear},
	SegmentYear:  {compose: composeYear, step: stepYear, next: SegmentYear},
}

const (
	maxDay   = 31
	maxMonth = 12
	maxYear  = 9999
)

// composeDay starts a fresh "0d" when tracking or unset. A tracked digit
// above 3 cannot begin a two-digit day, so it completes the segment at once.
// Otherwise the previous units digit and the new digit form the day.
func composeDay(field string, tracking bool, digit byte) (string, bool) {
	if tracking && digit > '3' {
		return single(digit), true
	}
	if tracking || field == SegmentDay.Placeholder() {
		return single(digit), false
	}
	return pair(field, digit, maxDay), true
}

// composeMonth lets 0 and 1 (and 2 outside tracking) open a two-digit month.
// Any other digit completes the segment.
func composeMonth(field string, tracking bool, digit byte) (string, bool) {
	fresh := tracking || field == SegmentMonth.Placeholder()
	if digit == '0' || digit == '1' || (digit == '2' && !tracking) {
		if fresh {
			return single(digit), false
		}
		return pair(field, digit, maxMonth), true
	}
	if fresh {
		return single(digit), true
	}
	return pair(field, digit, maxMonth), true
}

// composeYear shifts the four digits left and appends digit.
func composeYear(field string, _ bool, digit byte) (string, bool) {
	if field == SegmentYear.Placeholder() || len(field) != 4 {
		return "000" + string(digit), false
	}
	return field[1:] + string(digit), false
}

func stepDay(field string, delta int, _ func() time.Time) string {
	return pad(wrap(field, delta, maxDay), 2) //nolint:mnd // two-digit field
}

func stepMonth(field string, delta int, _ func() time.Time) string {
	return pad(wrap(field, delta, maxMonth), 2) //nolint:mnd // two-digit field
}

// stepYear moves one year from the current value, or from last year when
// the field is unset. The result stays within four digits.
func stepYear(field string, delta int, now func() time.Time) string {
	n := atoi(field)
	if n == 0 {
		if now == nil {
			now = time.Now
		}
		n = now().Year() - 1
	}
	n = min(max(n+delta, 0), maxYear)
	return pad(n, 4) //nolint:mnd // four-digit field
}

// wrap steps a 1..limit value with wraparound. An unset or zero field counts
// as 0 going up and 1 going down.
func wrap(field string, delta, limit int) int {
	n := atoi(field)
	if delta > 0 {
		return n%limit + 1
	}
	if n == 0 || n == 1 {
		return limit
	}
	return n - 1
}

func single(digit byte) string {
	return "0" + string(digit)
}

func pair(field string, digit byte, limit int) string {
	units := field[len(field)-1]
	n := int(units-'0')*10 + int(digit-'0') //nolint:mnd // decimal tens
	return pad(min(max(n, 1), limit), 2)    //nolint:mnd // two-digit field
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	return s
}
