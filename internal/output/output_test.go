package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/dateentry/internal/calendar"
	"github.com/twiced-technology-gmbh/dateentry/internal/date"
	"github.com/twiced-technology-gmbh/dateentry/internal/dateinput"
	"github.com/twiced-technology-gmbh/dateentry/internal/history"
)

func TestMain(m *testing.M) {
	DisableColor()
	os.Exit(m.Run())
}

func marchGrid() *calendar.Grid {
	g := calendar.New(date.New(2024, time.March, 15), time.Sunday)
	g.SetNow(func() time.Time { return time.Date(2024, time.March, 20, 8, 0, 0, 0, time.Local) })
	return g
}

func TestDetect(t *testing.T) {
	t.Setenv(EnvVar, "")
	assert.Equal(t, FormatJSON, Detect(true, true, true))
	assert.Equal(t, FormatCompact, Detect(false, true, true))
	assert.Equal(t, FormatTable, Detect(false, false, false))

	t.Setenv(EnvVar, "json")
	assert.Equal(t, FormatJSON, Detect(false, false, false))
	assert.Equal(t, FormatTable, Detect(false, true, false))

	t.Setenv(EnvVar, "oneline")
	assert.Equal(t, FormatCompact, Detect(false, false, false))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"json":    FormatJSON,
		" JSON ":  FormatJSON,
		"text":    FormatTable,
		"table":   FormatTable,
		"compact": FormatCompact,
	} {
		got, ok := ParseFormat(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseFormat("yaml")
	assert.False(t, ok)
}

func TestNewResult(t *testing.T) {
	v, _ := dateinput.ParseValue("15/03/2024")
	r := NewResult(v)
	assert.Equal(t, "2024-03-15", r.Date)
	assert.True(t, r.Complete)

	v, _ = dateinput.ParseValue("31/02/2024")
	r = NewResult(v)
	assert.Empty(t, r.Date)
	assert.False(t, r.Complete)

	r = NewResult(dateinput.EmptyValue())
	assert.Equal(t, dateinput.Empty, r.Value)
}

func TestValueFormats(t *testing.T) {
	v, _ := dateinput.ParseValue("15/03/2024")
	r := NewResult(v)
	r.Segment = "year"
	r.Announcement = "Year stepper selected"

	var buf bytes.Buffer
	require.NoError(t, Value(&buf, FormatTable, r))
	assert.Equal(t, "15/03/2024\nYear stepper selected\n", buf.String())

	buf.Reset()
	require.NoError(t, Value(&buf, FormatCompact, r))
	assert.Equal(t, "15/03/2024 date:2024-03-15 segment:year said:\"Year stepper selected\"\n", buf.String())

	buf.Reset()
	require.NoError(t, Value(&buf, FormatJSON, r))
	var decoded Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r, decoded)
}

func TestMonth(t *testing.T) {
	var buf bytes.Buffer
	Month(&buf, marchGrid())
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	require.Len(t, lines, 2+calendar.Rows)
	assert.Equal(t, "March 2024", strings.TrimSpace(lines[0]))
	assert.Equal(t, "  Su   Mo   Tu   We   Th   Fr   Sa", lines[1])
	assert.Equal(t, "  25   26   27   28   29    1    2", lines[2])
	assert.Equal(t, "  10   11   12   13   14  [15]  16", lines[4])
	assert.Equal(t, "  17   18   19   20*  21   22   23", lines[5])
}

func TestNewMonthView(t *testing.T) {
	v := NewMonthView(marchGrid())
	assert.Equal(t, "March 2024", v.Title)
	assert.Equal(t, "Sunday", v.WeekStart)
	assert.Equal(t, "2024-03-15", v.Selected)
	assert.Equal(t, 19, v.Focused)
	require.Len(t, v.Weeks, calendar.Rows)

	c := v.Weeks[2][5]
	assert.Equal(t, "2024-03-15", c.Date)
	assert.True(t, c.Selected)
	assert.Equal(t, calendar.TabStop, c.TabIndex)
	assert.False(t, v.Weeks[0][0].InMonth)
}

func TestHistory(t *testing.T) {
	ts := time.Date(2024, time.March, 15, 9, 30, 0, 0, time.Local)
	entries := []history.Entry{
		{Timestamp: ts, Action: history.ActionCommit, Value: "15/03/2024", Detail: "calendar"},
		{Timestamp: ts, Action: history.ActionSubmit, Value: "15/03/2024"},
	}

	var buf bytes.Buffer
	History(&buf, entries)
	out := buf.String()
	assert.Contains(t, out, "TIME")
	assert.Contains(t, out, "2024-03-15 09:30:00")
	assert.Contains(t, out, "commit")
	assert.Contains(t, out, "calendar")

	buf.Reset()
	HistoryCompact(&buf, entries)
	assert.Equal(t,
		"2024-03-15 09:30:00 commit 15/03/2024 (calendar)\n2024-03-15 09:30:00 submit 15/03/2024\n",
		buf.String())
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	JSONError(&buf, "INVALID_DATE", "bad date", map[string]any{"input": "x"})

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "INVALID_DATE", resp.Code)
	assert.Equal(t, "bad date", resp.Error)
	assert.Equal(t, "x", resp.Details["input"])
}
