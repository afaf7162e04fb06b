package dateinput

import (
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/dateentry/internal/date"
)

// Editor is the segmented date editor. It owns the masked value, the active
// segment and the tracking flag, and reports every change of the value
// through the OnChange callback.
type Editor struct {
	value          Value
	segment        Segment
	tracking       bool
	touch          bool
	calendarButton bool

	announcer Announcer
	onChange  func(string)
	onBlur    func()
	now       func() time.Time
}

// New creates an Editor holding initial, or the empty mask when initial is
// malformed. A nil announcer discards announcements.
func New(initial string, announcer Announcer) *Editor {
	if announcer == nil {
		announcer = &LiveRegion{}
	}
	v, _ := ParseValue(initial)
	return &Editor{
		value:          v,
		calendarButton: true,
		announcer:      announcer,
		now:            time.Now,
	}
}

// SetNow overrides the clock used for the year default and the anchor date.
func (e *Editor) SetNow(fn func() time.Time) { e.now = fn }

// SetTouch switches touch input mode. Touch mode disables the space toggle
// and segment clicks.
func (e *Editor) SetTouch(touch bool) { e.touch = touch }

// SetCalendarButton enables or disables the calendar toggle.
func (e *Editor) SetCalendarButton(enabled bool) { e.calendarButton = enabled }

// OnChange registers the change callback.
func (e *Editor) OnChange(fn func(string)) { e.onChange = fn }

// OnBlur registers the blur callback.
func (e *Editor) OnBlur(fn func()) { e.onBlur = fn }

// Value returns the masked value as dd/mm/yyyy.
func (e *Editor) Value() string { return e.value.String() }

// Masked returns the structured value.
func (e *Editor) Masked() Value { return e.value }

// Segment returns the active segment.
func (e *Editor) Segment() Segment { return e.segment }

// Tracking reports whether the next digit replaces the active segment.
func (e *Editor) Tracking() bool { return e.tracking }

// Touch reports whether touch input mode is on.
func (e *Editor) Touch() bool { return e.touch }

// Anchor derives the date the calendar grid should open on.
func (e *Editor) Anchor() date.Date {
	return AnchorDate(e.value, e.now)
}

// SetValue synchronizes with an externally supplied value. Anything that
// does not match the masked shape resets the editor to the empty mask. The
// external value always wins over an edit in progress.
func (e *Editor) SetValue(external string) {
	v, ok := ParseValue(external)
	if !ok {
		v = EmptyValue()
	}
	e.set(v)
}

// SelectSegment makes part the active segment. Changing segment arms the
// tracking flag and announces the new segment.
func (e *Editor) SelectSegment(part Segment) {
	if part != e.segment {
		e.tracking = true
		e.announcer.Announce(part.Spoken())
	}
	e.segment = part
}

// Focus activates the day segment when nothing is selected.
func (e *Editor) Focus() {
	if e.segment == SegmentNone {
		e.SelectSegment(SegmentDay)
	}
}

// Blur clears the announcement and the selection, then forwards to OnBlur.
func (e *Editor) Blur() {
	e.announcer.Announce("")
	e.SelectSegment(SegmentNone)
	if e.onBlur != nil {
		e.onBlur()
	}
}

// Click selects part as a pointer press on its field would. It is ignored
// in touch mode and reports whether it applied.
func (e *Editor) Click(part Segment) bool {
	if e.touch {
		return false
	}
	e.announcer.Announce(part.Spoken())
	e.SelectSegment(part)
	return true
}

// HandleKey applies one key press.
func (e *Editor) HandleKey(k Key) Result {
	switch k.Kind {
	case KeyLeft:
		e.moveLeft()
	case KeyRight:
		e.moveRight()
	case KeyUp:
		e.Step(1)
	case KeyDown:
		e.Step(-1)
	case KeyTab:
		if k.Shift {
			return Result{Handled: e.moveLeft()}
		}
		return Result{Handled: e.moveRight()}
	case KeyDelete, KeyBackspace:
		e.Delete()
	case KeySpace:
		if !e.touch && e.calendarButton {
			return Result{Handled: true, ToggleCalendar: true}
		}
	case KeyDigit:
		e.Type(k.Digit)
	default:
		return Result{}
	}
	return Result{Handled: true}
}

// moveLeft goes Year→Month→Day and reports whether the selection moved.
func (e *Editor) moveLeft() bool {
	switch e.segment {
	case SegmentYear:
		e.SelectSegment(SegmentMonth)
	case SegmentMonth:
		e.SelectSegment(SegmentDay)
	default:
		return false
	}
	return true
}

// moveRight goes Day→Month→Year and reports whether the selection moved.
func (e *Editor) moveRight() bool {
	switch e.segment {
	case SegmentDay:
		e.SelectSegment(SegmentMonth)
	case SegmentMonth:
		e.SelectSegment(SegmentYear)
	default:
		return false
	}
	return true
}

// Step increments (delta > 0) or decrements the active segment with
// wraparound for day and month.
func (e *Editor) Step(delta int) {
	t, ok := transitions[e.segment]
	if !ok {
		return
	}
	field := t.step(e.value.Field(e.segment), delta, e.now)
	e.set(e.value.With(e.segment, field))
	e.announcer.Announce(field)
}

// Type composes digit into the active segment, auto-advancing when the
// segment completes.
func (e *Editor) Type(digit byte) {
	t, ok := transitions[e.segment]
	if !ok || digit < '0' || digit > '9' {
		return
	}
	field, advance := t.compose(e.value.Field(e.segment), e.tracking, digit)
	e.set(e.value.With(e.segment, field))

	next := e.segment
	if advance {
		next = t.next
	}
	if next != e.segment {
		e.announcer.Announce(next.Spoken())
	} else {
		e.announcer.Announce(field)
	}
	e.segment = next
	e.tracking = advance
}

// Delete resets the active segment to its placeholder.
func (e *Editor) Delete() {
	if e.segment != SegmentNone {
		e.set(e.value.With(e.segment, e.segment.Placeholder()))
	}
	e.tracking = true
}

// Paste accepts ISO-8601 text (reformatted to dd/mm/yyyy) or literal
// dd/mm/yyyy text (kept verbatim). Anything else is rejected and leaves the
// editor untouched.
func (e *Editor) Paste(text string) bool {
	text = strings.TrimSpace(text)
	if d, err := date.ParseISO(text); err == nil {
		v, _ := ParseValue(d.Masked())
		e.set(v)
		return true
	}
	if _, err := date.ParseMasked(text); err == nil {
		v, _ := ParseValue(text)
		e.set(v)
		return true
	}
	return false
}

func (e *Editor) set(v Value) {
	if v == e.value {
		return
	}
	e.value = v
	if e.onChange != nil {
		e.onChange(v.String())
	}
}
