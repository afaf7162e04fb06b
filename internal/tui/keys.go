package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/dateentry/internal/calendar"
)

const keyEsc = "esc"

// keyMap holds the bindings shown in the help line. Editor keys are decoded
// by dateinput.ParseKey; the bindings here exist to match and describe them.
type keyMap struct {
	// Editor.
	Segment key.Binding
	Step    key.Binding
	Digits  key.Binding
	Clear   key.Binding
	Toggle  key.Binding
	Paste   key.Binding
	Submit  key.Binding
	Quit    key.Binding

	// Calendar button.
	Press key.Binding

	// Grid.
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Home      key.Binding
	End       key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	YearUp    key.Binding
	YearDown  key.Binding
	Choose    key.Binding
	OK        key.Binding
	Cancel    key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	PrevYear  key.Binding
	NextYear  key.Binding

	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Segment: key.NewBinding(key.WithKeys("left", "right", "tab", "shift+tab"), key.WithHelp("←/→/tab", "field")),
		Step:    key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "step")),
		Digits:  key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9", "type")),
		Clear:   key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("del", "clear field")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "calendar")),
		Paste:   key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
		Quit:    key.NewBinding(key.WithKeys(keyEsc), key.WithHelp("esc", "quit")),

		Press: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open calendar")),

		Left:      key.NewBinding(key.WithKeys("left", "h")),
		Right:     key.NewBinding(key.WithKeys("right", "l")),
		Up:        key.NewBinding(key.WithKeys("up", "k")),
		Down:      key.NewBinding(key.WithKeys("down", "j")),
		Home:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home/end", "week")),
		End:       key.NewBinding(key.WithKeys("end")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup/pgdn", "month")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown")),
		YearUp:    key.NewBinding(key.WithKeys("ctrl+pgup", "alt+pgup"), key.WithHelp("ctrl+pgup/pgdn", "year")),
		YearDown:  key.NewBinding(key.WithKeys("ctrl+pgdown", "alt+pgdown")),
		Choose:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "choose")),
		OK:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "ok")),
		Cancel:    key.NewBinding(key.WithKeys(keyEsc, "c"), key.WithHelp("esc", "cancel")),
		PrevMonth: key.NewBinding(key.WithKeys("[")),
		NextMonth: key.NewBinding(key.WithKeys("]")),
		PrevYear:  key.NewBinding(key.WithKeys("{")),
		NextYear:  key.NewBinding(key.WithKeys("}")),

		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// gridMove resolves a grid navigation key to a calendar move.
func (k keyMap) gridMove(msg tea.KeyMsg) (move calendar.Move, shift, ok bool) {
	switch {
	case key.Matches(msg, k.Left):
		return calendar.MoveLeft, false, true
	case key.Matches(msg, k.Right):
		return calendar.MoveRight, false, true
	case key.Matches(msg, k.Up):
		return calendar.MoveUp, false, true
	case key.Matches(msg, k.Down):
		return calendar.MoveDown, false, true
	case key.Matches(msg, k.Home):
		return calendar.MoveHome, false, true
	case key.Matches(msg, k.End):
		return calendar.MoveEnd, false, true
	case key.Matches(msg, k.PageUp):
		return calendar.MovePageUp, false, true
	case key.Matches(msg, k.PageDown):
		return calendar.MovePageDown, false, true
	case key.Matches(msg, k.YearUp):
		return calendar.MovePageUp, true, true
	case key.Matches(msg, k.YearDown):
		return calendar.MovePageDown, true, true
	}
	return 0, false, false
}

func (k keyMap) editorHelp() []key.Binding {
	return []key.Binding{k.Segment, k.Step, k.Digits, k.Clear, k.Toggle, k.Paste, k.Submit, k.Quit}
}

func (k keyMap) buttonHelp() []key.Binding {
	return []key.Binding{k.Press, k.Segment, k.Quit}
}

func (k keyMap) gridHelp() []key.Binding {
	return []key.Binding{k.Home, k.PageUp, k.YearUp, k.Choose, k.OK, k.Cancel}
}
