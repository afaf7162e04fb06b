package output

import (
	"fmt"
	"io"

	"github.com/twiced-technology-gmbh/dateentry/internal/dateinput"
)

// Result is the outcome of an editing session.
type Result struct {
	Value        string `json:"value"`
	Date         string `json:"date,omitempty"`
	Complete     bool   `json:"complete"`
	Segment      string `json:"segment,omitempty"`
	Announcement string `json:"announcement,omitempty"`
}

// NewResult describes v. Date is set only when v is a real calendar date.
func NewResult(v dateinput.Value) Result {
	r := Result{Value: v.String()}
	if d, ok := v.Date(); ok {
		r.Date = d.String()
		r.Complete = true
	}
	return r
}

// Value writes r in the given format. Table prints the masked value with the
// announcement below it; compact prints one key:value line.
func Value(w io.Writer, format Format, r Result) error {
	switch format {
	case FormatJSON:
		return JSON(w, r)
	case FormatCompact:
		line := r.Value
		if r.Date != "" {
			line += " date:" + r.Date
		}
		if r.Segment != "" {
			line += " segment:" + r.Segment
		}
		if r.Announcement != "" {
			line += fmt.Sprintf(" said:%q", r.Announcement)
		}
		_, err := fmt.Fprintln(w, line)
		return err
	default:
		if _, err := fmt.Fprintln(w, r.Value); err != nil {
			return err
		}
		if r.Announcement != "" {
			_, err := fmt.Fprintln(w, dimStyle.Render(r.Announcement))
			return err
		}
		return nil
	}
}
