// Package history keeps the picker activity log, an append-only JSONL file
// next to the config.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/dateentry/internal/filelock"
)

const (
	// FileName is the activity log inside the config directory.
	FileName = "activity.jsonl"

	logFileMode   = 0o600
	lockFileName  = ".lock"
	maxLogEntries = 10000 // truncate oldest entries when log exceeds this size
)

// Actions recorded by the picker.
const (
	ActionCommit = "commit" // a date was chosen in the calendar grid
	ActionCancel = "cancel" // the calendar grid was dismissed
	ActionPaste  = "paste"  // text was pasted into the editor
	ActionSubmit = "submit" // the picker returned a value
)

// Entry represents a single activity log entry.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Value     string    `json:"value"`
	Detail    string    `json:"detail,omitempty"`
}

// Append appends an entry to the activity log in dir. If the log exceeds
// maxLogEntries, the oldest entries are truncated.
func Append(dir string, entry Entry) error {
	unlock, err := filelock.Lock(filepath.Join(dir, lockFileName))
	if err != nil {
		return fmt.Errorf("locking log file: %w", err)
	}
	defer func() { _ = unlock() }()

	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // log path from trusted config dir
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling log entry: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing log entry: %w", err)
	}

	// Truncate if needed (best-effort; errors are non-fatal).
	_ = truncateIfNeeded(path, maxLogEntries)

	return nil
}

// Record appends an entry stamped with the current time. Errors are
// discarded: logging never fails the picker.
func Record(dir, action, value, detail string) {
	_ = Append(dir, Entry{
		Timestamp: time.Now(),
		Action:    action,
		Value:     value,
		Detail:    detail,
	})
}

// Read returns the newest limit entries, oldest first. A limit <= 0 returns
// every entry. A missing log yields no entries. Malformed lines are skipped.
func Read(dir string, limit int) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, FileName)) //nolint:gosec // trusted path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log file: %w", err)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// truncateIfNeeded rewrites the log keeping only the most recent max lines.
func truncateIfNeeded(path string, maxLines int) error {
	f, err := os.Open(path) //nolint:gosec // trusted path
	if err != nil {
		return err
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	_ = f.Close()

	if err := scanner.Err(); err != nil {
		return err
	}

	if len(lines) <= maxLines {
		return nil
	}

	lines = lines[len(lines)-maxLines:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(buf.String()), logFileMode)
}
