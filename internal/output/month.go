package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/twiced-technology-gmbh/dateentry/internal/calendar"
)

// MonthView is the JSON shape of a rendered calendar grid.
type MonthView struct {
	Title     string       `json:"title"`
	WeekStart string       `json:"week_start"`
	Selected  string       `json:"selected"`
	Focused   int          `json:"focused"`
	Headings  []string     `json:"headings"`
	Weeks     [][]CellView `json:"weeks"`
}

// CellView is one day of a MonthView.
type CellView struct {
	Date     string `json:"date"`
	Day      int    `json:"day"`
	InMonth  bool   `json:"in_month"`
	Selected bool   `json:"selected,omitempty"`
	Today    bool   `json:"today,omitempty"`
	TabIndex int    `json:"tab_index"`
	Label    string `json:"label"`
}

// NewMonthView captures the grid's derived state.
func NewMonthView(g *calendar.Grid) MonthView {
	v := MonthView{
		Title:     g.Title(),
		WeekStart: g.WeekStart().String(),
		Selected:  g.Selected().String(),
		Focused:   g.Focused(),
	}
	for _, h := range g.Headings() {
		v.Headings = append(v.Headings, h.Code)
	}
	cells := g.Cells()
	for row := range calendar.Rows {
		week := make([]CellView, 0, calendar.Cols)
		for _, c := range cells[row*calendar.Cols : (row+1)*calendar.Cols] {
			week = append(week, CellView{
				Date:     c.Date.String(),
				Day:      c.Date.Day(),
				InMonth:  c.InMonth,
				Selected: c.Selected,
				Today:    c.Today,
				TabIndex: c.TabIndex,
				Label:    c.Label,
			})
		}
		v.Weeks = append(v.Weeks, week)
	}
	return v
}

// Month renders the grid as a text calendar. The selected day is bracketed
// and today carries an asterisk, so the table reads without color.
func Month(w io.Writer, g *calendar.Grid) {
	const cellWidth = 5
	width := calendar.Cols * cellWidth

	title := g.Title()
	pad := max(0, (width-len(title))/2) //nolint:mnd // center
	fmt.Fprintln(w, strings.Repeat(" ", pad)+titleStyle.Render(title))

	var heads strings.Builder
	for _, h := range g.Headings() {
		heads.WriteString(fmt.Sprintf("%*s ", cellWidth-1, h.Code))
	}
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(heads.String(), " ")))

	cells := g.Cells()
	for row := range calendar.Rows {
		parts := make([]string, 0, calendar.Cols)
		for _, c := range cells[row*calendar.Cols : (row+1)*calendar.Cols] {
			parts = append(parts, renderCell(c))
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, ""), " "))
	}
}

func renderCell(c calendar.Cell) string {
	day := fmt.Sprintf("%2d", c.Date.Day())
	switch {
	case !c.InMonth:
		return dimStyle.Render("  "+day) + " "
	case c.Selected:
		return " " + selectedStyle.Render("["+day+"]")
	case c.Today:
		return "  " + todayStyle.Render(day+"*")
	default:
		return "  " + day + " "
	}
}
