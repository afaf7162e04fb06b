// Package calendar implements the month grid: a fixed 6×7 window of days,
// roving keyboard focus over it, and commit/cancel of the selected date.
package calendar

import (
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/dateentry/internal/date"
)

// Grid dimensions.
const (
	Rows  = 6
	Cols  = 7
	Cells = Rows * Cols
)

// Tab indices of the roving tab stop. Inert marks cells outside the month.
const (
	TabStop   = 0
	TabSkip   = -1
	Inert     = -2
	NoFocus   = -1
	monthYear = "January 2006"
	cellLabel = "Monday 2 January 2006"
)

// Move is a keyboard navigation request inside the grid.
type Move int

const (
	MoveLeft Move = iota
	MoveRight
	MoveUp
	MoveDown
	MoveHome
	MoveEnd
	MovePageUp
	MovePageDown
)

var moveNames = map[string]struct {
	move  Move
	shift bool
}{
	"left":           {MoveLeft, false},
	"right":          {MoveRight, false},
	"up":             {MoveUp, false},
	"down":           {MoveDown, false},
	"home":           {MoveHome, false},
	"end":            {MoveEnd, false},
	"pgup":           {MovePageUp, false},
	"pageup":         {MovePageUp, false},
	"pgdown":         {MovePageDown, false},
	"pagedown":       {MovePageDown, false},
	"shift+pgup":     {MovePageUp, true},
	"shift+pageup":   {MovePageUp, true},
	"shift+pgdown":   {MovePageDown, true},
	"shift+pagedown": {MovePageDown, true},
}

// ParseMove maps a key name such as "pgup" or "shift+pgdown" to a Move.
func ParseMove(name string) (m Move, shift, ok bool) {
	v, ok := moveNames[strings.ToLower(strings.TrimSpace(name))]
	return v.move, v.shift, ok
}

// Cell is the derived state of one grid position.
type Cell struct {
	Index    int
	Date     date.Date
	InMonth  bool
	Selected bool
	Today    bool
	TabIndex int
	Label    string
}

// Heading is a weekday column header.
type Heading struct {
	Code        string
	Description string
}

var headings = [Cols]Heading{
	{"Su", "Sunday"},
	{"Mo", "Monday"},
	{"Tu", "Tuesday"},
	{"We", "Wednesday"},
	{"Th", "Thursday"},
	{"Fr", "Friday"},
	{"Sa", "Saturday"},
}

// Grid is the calendar grid model. The selected date doubles as the anchor
// of the displayed month, so keyboard focus and selection never diverge.
type Grid struct {
	selected  date.Date
	weekStart time.Weekday
	focused   int
	now       func() time.Time

	onChange func(date.Date)
	onCancel func()
}

// New creates a grid showing anchor's month with anchor selected.
func New(anchor date.Date, weekStart time.Weekday) *Grid {
	g := &Grid{weekStart: weekStart, now: time.Now}
	g.selectDate(anchor)
	return g
}

// SetNow overrides the clock used for the today marker.
func (g *Grid) SetNow(fn func() time.Time) { g.now = fn }

// OnChange registers the "date chosen" callback.
func (g *Grid) OnChange(fn func(date.Date)) { g.onChange = fn }

// OnCancel registers the cancellation callback.
func (g *Grid) OnCancel(fn func()) { g.onCancel = fn }

// Selected returns the selected date.
func (g *Grid) Selected() date.Date { return g.selected }

// WeekStart returns the configured first day of the week.
func (g *Grid) WeekStart() time.Weekday { return g.weekStart }

// Focused returns the index of the cell holding keyboard focus.
func (g *Grid) Focused() int { return g.focused }

// FirstCell returns the first displayed date for anchor's month: the latest
// weekStart day on or before the 1st.
func FirstCell(anchor date.Date, weekStart time.Weekday) date.Date {
	return anchor.StartOfMonth().StartOfWeek(weekStart)
}

// Window returns the 42 consecutive dates displayed for anchor's month.
func Window(anchor date.Date, weekStart time.Weekday) [Cells]date.Date {
	var days [Cells]date.Date
	first := FirstCell(anchor, weekStart)
	for i := range days {
		days[i] = first.AddDays(i)
	}
	return days
}

// IndexOf returns the cell index of d in anchor's window, or NoFocus.
func IndexOf(anchor, d date.Date, weekStart time.Weekday) int {
	for i, day := range Window(anchor, weekStart) {
		if day.Equal(d) {
			return i
		}
	}
	return NoFocus
}

// Cells derives the state of every grid position.
func (g *Grid) Cells() [Cells]Cell {
	var cells [Cells]Cell
	start, end := g.selected.StartOfMonth(), g.selected.EndOfMonth()
	today := date.Today(g.now)
	for i, d := range Window(g.selected, g.weekStart) {
		c := Cell{Index: i, Date: d, TabIndex: Inert, Label: d.Format(cellLabel)}
		if d.Within(start, end) {
			c.InMonth = true
			c.Selected = d.Equal(g.selected)
			c.Today = d.Equal(today)
			c.TabIndex = TabSkip
			if c.Selected {
				c.TabIndex = TabStop
			}
		}
		cells[i] = c
	}
	return cells
}

// Headings returns the weekday headers rotated to the week start.
func (g *Grid) Headings() [Cols]Heading {
	var out [Cols]Heading
	for i := range out {
		out[i] = headings[(int(g.weekStart)+i)%Cols]
	}
	return out
}

// Title names the displayed month, e.g. "March 2024".
func (g *Grid) Title() string {
	return g.selected.Format(monthYear)
}

// Caption is the usage hint shown under the title.
func (g *Grid) Caption() string {
	return "You can use the cursor keys to select a date"
}

// Navigate moves the selection from the focused date. Shift turns the page
// moves into year moves. Every Move is consumed, so it reports true.
func (g *Grid) Navigate(m Move, shift bool) bool {
	d := g.selected
	switch m {
	case MoveLeft:
		d = d.AddDays(-1)
	case MoveRight:
		d = d.AddDays(1)
	case MoveUp:
		d = d.AddDays(-7) //nolint:mnd // one week
	case MoveDown:
		d = d.AddDays(7) //nolint:mnd // one week
	case MoveHome:
		d = d.StartOfWeek(g.weekStart)
	case MoveEnd:
		d = d.EndOfWeek(g.weekStart)
	case MovePageUp:
		if shift {
			d = d.AddYears(-1)
		} else {
			d = d.AddMonths(-1)
		}
	case MovePageDown:
		if shift {
			d = d.AddYears(1)
		} else {
			d = d.AddMonths(1)
		}
	default:
		return false
	}
	if d = d.Clamp(date.Earliest, date.Latest); !d.Equal(g.selected) {
		g.selectDate(d)
	}
	return true
}

// PrevYear is the header button equivalent of Shift+PageUp.
func (g *Grid) PrevYear() { g.selectDate(g.selected.AddYears(-1)) }

// PrevMonth is the header button equivalent of PageUp.
func (g *Grid) PrevMonth() { g.selectDate(g.selected.AddMonths(-1)) }

// NextMonth is the header button equivalent of PageDown.
func (g *Grid) NextMonth() { g.selectDate(g.selected.AddMonths(1)) }

// NextYear is the header button equivalent of Shift+PageDown.
func (g *Grid) NextYear() { g.selectDate(g.selected.AddYears(1)) }

// FocusCell moves the selection to cell index when it lies in the displayed
// month. It reports whether the focus moved.
func (g *Grid) FocusCell(index int) bool {
	c, ok := g.cell(index)
	if !ok || !c.InMonth {
		return false
	}
	g.selectDate(c.Date)
	return true
}

// Activate commits the date of cell index. Inert cells are ignored.
func (g *Grid) Activate(index int) bool {
	c, ok := g.cell(index)
	if !ok || !c.InMonth {
		return false
	}
	g.commit(c.Date)
	return true
}

// Confirm commits the selected date (the OK button).
func (g *Grid) Confirm() { g.commit(g.selected) }

// Cancel signals that no date was chosen.
func (g *Grid) Cancel() {
	if g.onCancel != nil {
		g.onCancel()
	}
}

func (g *Grid) commit(d date.Date) {
	if g.onChange != nil {
		g.onChange(d)
	}
}

func (g *Grid) cell(index int) (Cell, bool) {
	if index < 0 || index >= Cells {
		return Cell{}, false
	}
	return g.Cells()[index], true
}

// selectDate makes d the selection and re-derives the focus index from the
// window that now contains it. The selection never leaves the years a
// dd/mm/yyyy value can hold.
func (g *Grid) selectDate(d date.Date) {
	d = d.Clamp(date.Earliest, date.Latest)
	g.selected = d
	g.focused = IndexOf(d, d, g.weekStart)
}
