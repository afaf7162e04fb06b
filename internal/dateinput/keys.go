package dateinput

import "strings"

// KeyKind classifies the keys the editor reacts to.
type KeyKind int

const (
	KeyOther KeyKind = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyTab
	KeyDelete
	KeyBackspace
	KeySpace
	KeyDigit
)

// Key is a raw key event as seen by the editor.
type Key struct {
	Kind  KeyKind
	Shift bool
	Digit byte // '0'..'9' when Kind is KeyDigit
}

// Digit builds the key event for typing d.
func Digit(d byte) Key {
	return Key{Kind: KeyDigit, Digit: d}
}

var keyNames = map[string]Key{
	"left":      {Kind: KeyLeft},
	"right":     {Kind: KeyRight},
	"up":        {Kind: KeyUp},
	"down":      {Kind: KeyDown},
	"tab":       {Kind: KeyTab},
	"shift+tab": {Kind: KeyTab, Shift: true},
	"delete":    {Kind: KeyDelete},
	"backspace": {Kind: KeyBackspace},
	"space":     {Kind: KeySpace},
	" ":         {Kind: KeySpace},
}

// ParseKey maps a key name ("left", "shift+tab", "7", ...) to a Key.
func ParseKey(name string) (Key, bool) {
	if len(name) == 1 && name[0] >= '0' && name[0] <= '9' {
		return Digit(name[0]), true
	}
	k, ok := keyNames[strings.ToLower(name)]
	return k, ok
}

// Result tells the container what a key press did.
type Result struct {
	// Handled is false when the key should keep its default meaning,
	// e.g. Tab leaving the Year segment moves focus onward.
	Handled bool
	// ToggleCalendar asks the container to open or close the grid.
	ToggleCalendar bool
}
