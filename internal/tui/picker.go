// Package tui implements the terminal date picker: the segmented editor, the
// calendar button and the popover month grid, wired into one bubbletea model.
package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/dateentry/internal/calendar"
	"github.com/twiced-technology-gmbh/dateentry/internal/config"
	"github.com/twiced-technology-gmbh/dateentry/internal/date"
	"github.com/twiced-technology-gmbh/dateentry/internal/dateinput"
	"github.com/twiced-technology-gmbh/dateentry/internal/history"
)

// focus is the element holding keyboard focus while the grid is closed.
type focus int

const (
	focusEditor focus = iota
	focusButton
)

// Picker is the top-level bubbletea model. It owns the authoritative text
// value and pushes it into the editor whenever the grid commits a date.
type Picker struct {
	cfg    *config.Config
	value  string
	editor *dateinput.Editor
	live   *dateinput.LiveRegion
	grid   *calendar.Grid // nil while closed
	focus  focus
	keys   keyMap
	help   help.Model
	styles styles
	width  int
	height int
	err    error
	now    func() time.Time

	reload    func() (*config.Config, error)
	readClip  func() (string, error)
	submitted bool
}

// NewPicker creates a Picker from a config. The initial value comes from
// cfg.Value.
func NewPicker(cfg *config.Config) *Picker {
	p := &Picker{
		cfg:      cfg,
		live:     &dateinput.LiveRegion{},
		keys:     defaultKeyMap(),
		help:     help.New(),
		now:      time.Now,
		readClip: clipboard.ReadAll,
	}
	p.reload = func() (*config.Config, error) { return config.Load(p.cfg.Dir()) }

	p.editor = dateinput.New(cfg.Value, p.live)
	p.editor.OnChange(func(v string) { p.value = v })
	p.value = p.editor.Value()
	p.applyConfig(cfg)
	p.editor.Focus()
	return p
}

// SetNow overrides the clock used for the year default and the today marker (for testing).
func (p *Picker) SetNow(fn func() time.Time) {
	p.now = fn
	p.editor.SetNow(fn)
	if p.grid != nil {
		p.grid.SetNow(fn)
	}
}

// SetReloader replaces the function used to re-read the config on ReloadMsg.
func (p *Picker) SetReloader(fn func() (*config.Config, error)) {
	p.reload = fn
}

// SetClipboard replaces the clipboard reader used by ctrl+v (for testing).
func (p *Picker) SetClipboard(fn func() (string, error)) {
	p.readClip = fn
}

// Value returns the current dd/mm/yyyy text.
func (p *Picker) Value() string { return p.value }

// Submitted reports whether the user confirmed the value with enter.
func (p *Picker) Submitted() bool { return p.submitted }

// Editor exposes the segmented editor.
func (p *Picker) Editor() *dateinput.Editor { return p.editor }

// Grid returns the open calendar grid, or nil.
func (p *Picker) Grid() *calendar.Grid { return p.grid }

// Announcement returns the live-region text.
func (p *Picker) Announcement() string { return p.live.Text() }

// WatchDir returns the directory whose config.yml triggers a ReloadMsg.
func (p *Picker) WatchDir() string { return p.cfg.Dir() }

// Init implements tea.Model.
func (p *Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p.handleKey(msg)
	case tea.MouseMsg:
		return p.handleMouse(msg)
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.help.Width = msg.Width
		return p, nil
	case pasteMsg:
		p.paste(msg.text)
		return p, nil
	case ReloadMsg:
		p.reloadConfig()
		return p, nil
	case errMsg:
		p.err = msg.err
		return p, nil
	}
	return p, nil
}

func (p *Picker) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, p.keys.ForceQuit) {
		return p, tea.Quit
	}
	p.err = nil

	if p.grid != nil {
		p.handleGridKey(msg)
		return p, nil
	}

	if msg.Paste {
		if p.focus == focusEditor {
			p.paste(string(msg.Runes))
		}
		return p, nil
	}
	if key.Matches(msg, p.keys.Paste) {
		return p, p.readClipboard()
	}

	if p.focus == focusButton {
		return p.handleButtonKey(msg)
	}
	return p.handleEditorKey(msg)
}

func (p *Picker) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, p.keys.Submit):
		p.submitted = true
		p.record(history.ActionSubmit, "keyboard")
		return p, tea.Quit
	case key.Matches(msg, p.keys.Quit):
		return p, tea.Quit
	}

	k, ok := dateinput.ParseKey(msg.String())
	if !ok {
		return p, nil
	}
	res := p.editor.HandleKey(k)
	if res.ToggleCalendar {
		p.toggleCalendar()
	}
	if !res.Handled && k.Kind == dateinput.KeyTab {
		p.focusButton()
	}
	return p, nil
}

func (p *Picker) handleButtonKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		p.toggleCalendar()
	case "shift+tab":
		// Re-entering backwards lands on the last segment.
		p.focus = focusEditor
		p.editor.SelectSegment(dateinput.SegmentYear)
	case "tab":
		p.focusEditor()
	case keyEsc:
		return p, tea.Quit
	}
	return p, nil
}

func (p *Picker) handleGridKey(msg tea.KeyMsg) {
	g := p.grid
	if move, shift, ok := p.keys.gridMove(msg); ok {
		g.Navigate(move, shift)
		return
	}
	switch {
	case key.Matches(msg, p.keys.Choose):
		g.Activate(g.Focused())
	case key.Matches(msg, p.keys.OK):
		g.Confirm()
	case key.Matches(msg, p.keys.Cancel):
		g.Cancel()
	case key.Matches(msg, p.keys.PrevMonth):
		g.PrevMonth()
	case key.Matches(msg, p.keys.NextMonth):
		g.NextMonth()
	case key.Matches(msg, p.keys.PrevYear):
		g.PrevYear()
	case key.Matches(msg, p.keys.NextYear):
		g.NextYear()
	}
}

// focusButton moves focus from the editor to the calendar button. Without a
// button, focus stays on the editor.
func (p *Picker) focusButton() {
	if !p.cfg.CalendarButton() {
		return
	}
	p.editor.Blur()
	p.focus = focusButton
}

func (p *Picker) focusEditor() {
	p.focus = focusEditor
	p.editor.Focus()
}

func (p *Picker) toggleCalendar() {
	if p.grid != nil {
		p.closeCalendar()
		return
	}
	p.openCalendar()
}

func (p *Picker) openCalendar() {
	p.grid = p.newGrid(p.editor.Anchor())
}

func (p *Picker) newGrid(anchor date.Date) *calendar.Grid {
	g := calendar.New(anchor, p.cfg.WeekStartDay())
	g.SetNow(p.now)
	g.OnChange(p.commit)
	g.OnCancel(p.cancel)
	return g
}

func (p *Picker) closeCalendar() {
	p.grid = nil
	p.focusEditor()
}

// commit receives the date chosen in the grid.
func (p *Picker) commit(d date.Date) {
	p.editor.SetValue(d.Masked())
	p.closeCalendar()
	p.record(history.ActionCommit, "calendar")
}

func (p *Picker) cancel() {
	p.closeCalendar()
	p.record(history.ActionCancel, "calendar")
}

func (p *Picker) paste(text string) {
	if p.editor.Paste(text) {
		p.record(history.ActionPaste, text)
	}
}

func (p *Picker) readClipboard() tea.Cmd {
	read := p.readClip
	return func() tea.Msg {
		text, err := read()
		if err != nil {
			return errMsg{err}
		}
		return pasteMsg{text}
	}
}

func (p *Picker) record(action, detail string) {
	if !p.cfg.HistoryEnabled() || p.cfg.Dir() == "" {
		return
	}
	history.Record(p.cfg.Dir(), action, p.value, detail)
}

func (p *Picker) reloadConfig() {
	cfg, err := p.reload()
	if err != nil {
		p.err = err
		return
	}
	p.applyConfig(cfg)
	if p.grid != nil && p.grid.WeekStart() != cfg.WeekStartDay() {
		p.grid = p.newGrid(p.grid.Selected())
	}
}

func (p *Picker) applyConfig(cfg *config.Config) {
	p.cfg = cfg
	p.editor.SetTouch(cfg.Touch)
	p.editor.SetCalendarButton(cfg.CalendarButton())
	p.styles = newStyles(cfg.ThemeColors())
	if !cfg.CalendarButton() && p.focus == focusButton {
		p.focusEditor()
	}
}

// --- Messages ---

// ReloadMsg is sent by the config watcher to trigger a config refresh.
type ReloadMsg struct{}

type errMsg struct{ err error }

type pasteMsg struct{ text string }
