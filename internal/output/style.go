package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	todayStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))

	// Action colors for the activity log.
	actionStyles = map[string]lipgloss.Style{
		"commit": lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		"submit": lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
		"paste":  lipgloss.NewStyle().Foreground(lipgloss.Color("110")),
		"cancel": lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}
)

// DisableColor strips all styling from table output and forces the ASCII
// color profile for anything else rendered through lipgloss.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	titleStyle = lipgloss.NewStyle()
	selectedStyle = lipgloss.NewStyle()
	todayStyle = lipgloss.NewStyle()
	actionStyles = map[string]lipgloss.Style{}
}

func actionStyle(action string) lipgloss.Style {
	if s, ok := actionStyles[action]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
