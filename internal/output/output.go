// Package output renders command results as a table, JSON or compact lines.
package output

import (
	"os"
	"strings"
)

// Format represents an output format.
type Format int

const (
	// FormatAuto uses the default format (table).
	FormatAuto Format = iota
	FormatJSON
	FormatTable
	// FormatCompact prints one line per record.
	FormatCompact
)

// EnvVar selects the default format when no flag is given.
const EnvVar = "DATEENTRY_OUTPUT"

// ParseFormat reads a format name as accepted by EnvVar.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, true
	case "compact", "oneline":
		return FormatCompact, true
	case "table", "text":
		return FormatTable, true
	}
	return FormatAuto, false
}

// Detect picks the format from the flags, then EnvVar, then table.
func Detect(jsonFlag, tableFlag, compactFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case compactFlag:
		return FormatCompact
	case tableFlag:
		return FormatTable
	}
	if f, ok := ParseFormat(os.Getenv(EnvVar)); ok {
		return f
	}
	return FormatTable
}
