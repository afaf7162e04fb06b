package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/dateentry/internal/calendar"
	"github.com/twiced-technology-gmbh/dateentry/internal/config"
	"github.com/twiced-technology-gmbh/dateentry/internal/dateinput"
)

// Layout constants. Columns are zero-based terminal cells.
const (
	cellWidth   = 4 // "%3d" plus a gap
	gridWidth   = calendar.Cols * cellWidth
	titleWidth  = gridWidth - 10 // between the two arrow pairs
	buttonGap   = "  "
	buttonLabel = "[Calendar]"
	cancelLabel = "[Cancel]"
	okLabel     = "[OK]"

	headerRows  = 3 // title, caption, weekday headings
	footerRows  = 1 // Cancel / OK
	gridHeight  = headerRows + calendar.Rows + footerRows
	buttonStart = len(dateinput.Empty) + len(buttonGap)
)

// span is a half-open column range [from, to).
type span struct{ from, to int }

func (s span) contains(x int) bool { return x >= s.from && x < s.to }

// Hit areas on the field row and inside the grid.
var (
	segmentSpans = map[dateinput.Segment]span{
		dateinput.SegmentDay:   {0, 2},
		dateinput.SegmentMonth: {3, 5},
		dateinput.SegmentYear:  {6, 10},
	}
	buttonSpan    = span{buttonStart, buttonStart + len(buttonLabel)}
	prevYearSpan  = span{0, 2}
	prevMonthSpan = span{3, 4}
	nextMonthSpan = span{gridWidth - 4, gridWidth - 3}
	nextYearSpan  = span{gridWidth - 2, gridWidth}
	cancelSpan    = span{0, len(cancelLabel)}
	okSpan        = span{len(cancelLabel) + 1, len(cancelLabel) + 1 + len(okLabel)}
)

// styles holds the lipgloss styles derived from the configured theme.
type styles struct {
	label         lipgloss.Style
	hint          lipgloss.Style
	segment       lipgloss.Style
	placeholder   lipgloss.Style
	active        lipgloss.Style
	button        lipgloss.Style
	buttonFocused lipgloss.Style
	live          lipgloss.Style
	title         lipgloss.Style
	heading       lipgloss.Style
	day           lipgloss.Style
	outside       lipgloss.Style
	today         lipgloss.Style
	selected      lipgloss.Style
	err           lipgloss.Style
}

func newStyles(theme config.ThemeConfig) styles {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Dim))
	highlight := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color(theme.Selected))

	return styles{
		label:         lipgloss.NewStyle().Bold(true),
		hint:          dim,
		segment:       lipgloss.NewStyle(),
		placeholder:   dim,
		active:        highlight,
		button:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		buttonFocused: highlight,
		live:          dim.Italic(true),
		title:         lipgloss.NewStyle().Bold(true),
		heading:       dim,
		day:           lipgloss.NewStyle(),
		outside:       dim.Faint(true),
		today:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Today)),
		selected:      highlight,
		err:           lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Error)).Bold(true),
	}
}

// View implements tea.Model.
func (p *Picker) View() string {
	var b strings.Builder

	b.WriteString(p.styles.label.Render(p.cfg.Label))
	b.WriteByte('\n')
	if p.cfg.Hint != "" {
		b.WriteString(p.styles.hint.Render(p.cfg.Hint))
		b.WriteByte('\n')
	}
	b.WriteString(p.renderField())
	b.WriteByte('\n')
	b.WriteString(p.styles.live.Render(p.live.Text()))
	b.WriteByte('\n')

	if p.grid != nil {
		b.WriteString(p.renderGrid())
		b.WriteByte('\n')
	}

	if p.err != nil {
		b.WriteString(p.styles.err.Render("Error: " + p.err.Error()))
		b.WriteByte('\n')
	}

	b.WriteString(p.help.ShortHelpView(p.helpBindings()))
	return b.String()
}

func (p *Picker) renderField() string {
	v := p.editor.Masked()
	segments := []dateinput.Segment{dateinput.SegmentDay, dateinput.SegmentMonth, dateinput.SegmentYear}
	parts := make([]string, len(segments))
	for i, s := range segments {
		style := p.styles.segment
		if !v.IsSet(s) {
			style = p.styles.placeholder
		}
		if p.focus == focusEditor && p.editor.Segment() == s {
			style = p.styles.active
		}
		parts[i] = style.Render(v.Field(s))
	}
	field := strings.Join(parts, "/")

	if p.cfg.CalendarButton() {
		style := p.styles.button
		if p.focus == focusButton && p.grid == nil {
			style = p.styles.buttonFocused
		}
		field += buttonGap + style.Render(buttonLabel)
	}
	return field
}

func (p *Picker) renderGrid() string {
	g := p.grid
	lines := make([]string, 0, gridHeight)

	title := lipgloss.PlaceHorizontal(titleWidth, lipgloss.Center, p.styles.title.Render(g.Title()))
	lines = append(lines, "<< < "+title+" > >>")
	lines = append(lines, p.styles.heading.Render(g.Caption()))

	var heads strings.Builder
	for _, h := range g.Headings() {
		heads.WriteString(p.styles.heading.Render(fmt.Sprintf("%*s", cellWidth-1, h.Code)))
		heads.WriteByte(' ')
	}
	lines = append(lines, heads.String())

	cells := g.Cells()
	for row := range calendar.Rows {
		var week strings.Builder
		for col := range calendar.Cols {
			c := cells[row*calendar.Cols+col]
			week.WriteString(p.cellStyle(c).Render(fmt.Sprintf("%*d", cellWidth-1, c.Date.Day())))
			week.WriteByte(' ')
		}
		lines = append(lines, week.String())
	}

	lines = append(lines, p.styles.button.Render(cancelLabel)+" "+p.styles.button.Render(okLabel))
	return strings.Join(lines, "\n")
}

func (p *Picker) cellStyle(c calendar.Cell) lipgloss.Style {
	switch {
	case !c.InMonth:
		return p.styles.outside
	case c.Selected:
		return p.styles.selected
	case c.Today:
		return p.styles.today
	default:
		return p.styles.day
	}
}

func (p *Picker) helpBindings() []key.Binding {
	switch {
	case p.grid != nil:
		return p.keys.gridHelp()
	case p.focus == focusButton:
		return p.keys.buttonHelp()
	default:
		return p.keys.editorHelp()
	}
}

// --- Mouse ---

func (p *Picker) fieldRow() int {
	if p.cfg.Hint != "" {
		return 2 //nolint:mnd // label + hint
	}
	return 1
}

func (p *Picker) gridTop() int {
	return p.fieldRow() + 2 //nolint:mnd // field + live region
}

func (p *Picker) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionMotion {
		p.hoverGrid(msg.X, msg.Y)
		return p, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return p, nil
	}

	onButton := msg.Y == p.fieldRow() && p.cfg.CalendarButton() && buttonSpan.contains(msg.X)

	if p.grid != nil {
		if p.clickGrid(msg.X, msg.Y) {
			return p, nil
		}
		if onButton {
			p.toggleCalendar()
			return p, nil
		}
		// A press anywhere else dismisses the grid, then acts normally.
		p.grid.Cancel()
	}

	if msg.Y != p.fieldRow() {
		return p, nil
	}
	if onButton {
		p.toggleCalendar()
		return p, nil
	}
	for seg, s := range segmentSpans {
		if !s.contains(msg.X) {
			continue
		}
		if p.editor.Touch() {
			p.openCalendar()
			return p, nil
		}
		p.focus = focusEditor
		p.editor.Click(seg)
		return p, nil
	}
	return p, nil
}

// gridCell maps a position inside the open grid's week rows to a cell index.
func (p *Picker) gridCell(x, y int) (int, bool) {
	row := y - p.gridTop() - headerRows
	if p.grid == nil || row < 0 || row >= calendar.Rows || x < 0 || x >= gridWidth {
		return 0, false
	}
	return row*calendar.Cols + x/cellWidth, true
}

// hoverGrid moves the grid focus to the in-month day under the pointer.
func (p *Picker) hoverGrid(x, y int) {
	if index, ok := p.gridCell(x, y); ok {
		p.grid.FocusCell(index)
	}
}

// clickGrid handles a press inside the open grid and reports whether the
// press landed there.
func (p *Picker) clickGrid(x, y int) bool {
	top := p.gridTop()
	if y < top || y >= top+gridHeight || x < 0 || x >= gridWidth {
		return false
	}

	g := p.grid
	switch row := y - top; {
	case row == 0:
		switch {
		case prevYearSpan.contains(x):
			g.PrevYear()
		case prevMonthSpan.contains(x):
			g.PrevMonth()
		case nextMonthSpan.contains(x):
			g.NextMonth()
		case nextYearSpan.contains(x):
			g.NextYear()
		}
	case row >= headerRows && row < headerRows+calendar.Rows:
		index, _ := p.gridCell(x, y)
		g.Activate(index)
	case row == gridHeight-1:
		switch {
		case cancelSpan.contains(x):
			g.Cancel()
		case okSpan.contains(x):
			g.Confirm()
		}
	}
	return true
}
