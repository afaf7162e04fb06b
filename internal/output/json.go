package output

import (
	"encoding/json"
	"fmt"
	"io"
)

func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false) // labels and announcements are printed verbatim
	return enc
}

// JSON writes data as indented JSON.
func JSON(w io.Writer, data any) error {
	if err := newEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON envelope for structured error output.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONError writes a structured error. Write failures are ignored.
func JSONError(w io.Writer, code, msg string, details map[string]any) {
	_ = newEncoder(w).Encode(ErrorResponse{Error: msg, Code: code, Details: details})
}

// Messagef writes a formatted informational line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
