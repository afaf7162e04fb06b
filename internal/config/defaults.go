// Package config handles dateentry configuration.
package config

const (
	// AppName names the per-user config directory.
	AppName = "dateentry"
	// DefaultDir is the project-local config directory name.
	DefaultDir = ".dateentry"
	// DefaultLabel is the field label shown above the editor.
	DefaultLabel = "Date"
	// DefaultWeekStart is the first column of the calendar grid.
	DefaultWeekStart = "sunday"

	// ConfigFileName is the name of the config file within the config directory.
	ConfigFileName = "config.yml"
	// LockFileName is the advisory lock shared by config saves and history appends.
	LockFileName = ".lock"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2
)

// DefaultTheme holds the stock picker colors.
var DefaultTheme = ThemeConfig{
	Selected: "62",  // indigo
	Today:    "208", // orange
	Dim:      "241", // gray
	Error:    "196", // red
}

// boolPtr returns a pointer to the given bool value.
func boolPtr(v bool) *bool { return &v }
