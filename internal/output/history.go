package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/twiced-technology-gmbh/dateentry/internal/history"
)

const timeLayout = "2006-01-02 15:04:05"

// History renders activity log entries as a table.
func History(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded.")
		return
	}

	const pad = 2
	actionW, valueW := 8, 7
	for _, e := range entries {
		actionW = max(actionW, len(e.Action)+pad)
		valueW = max(valueW, len(e.Value)+pad)
	}
	timeW := len(timeLayout) + pad

	header := fmt.Sprintf("%-*s %-*s %-*s %s", timeW, "TIME", actionW, "ACTION", valueW, "VALUE", "DETAIL")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, e := range entries {
		action := actionStyle(e.Action).Render(fmt.Sprintf("%-*s", actionW, e.Action))
		row := fmt.Sprintf("%-*s %s %-*s %s",
			timeW, e.Timestamp.Local().Format(timeLayout),
			action,
			valueW, e.Value,
			dimStyle.Render(e.Detail))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// HistoryCompact renders one line per entry.
func HistoryCompact(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded.")
		return
	}
	for _, e := range entries {
		line := e.Timestamp.Local().Format(timeLayout) + " " + e.Action + " " + e.Value
		if e.Detail != "" {
			line += fmt.Sprintf(" (%s)", e.Detail)
		}
		fmt.Fprintln(w, line)
	}
}
