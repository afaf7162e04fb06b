package dateinput_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/dateentry/internal/dateinput"
)

func fixedNow() time.Time {
	return time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local)
}

// newEditor returns a focused editor with its live region and a record of
// every emitted value.
func newEditor(t *testing.T, initial string) (*dateinput.Editor, *dateinput.LiveRegion, *[]string) {
	t.Helper()
	live := &dateinput.LiveRegion{}
	e := dateinput.New(initial, live)
	e.SetNow(fixedNow)
	var changes []string
	e.OnChange(func(v string) { changes = append(changes, v) })
	e.Focus()
	return e, live, &changes
}

func typeDigits(e *dateinput.Editor, digits string) {
	for i := range len(digits) {
		e.HandleKey(dateinput.Digit(digits[i]))
	}
}

func TestTypingFullDate(t *testing.T) {
	e, live, changes := newEditor(t, "")

	typeDigits(e, "23112023")

	assert.Equal(t, "23/11/2023", e.Value())
	assert.Equal(t, dateinput.SegmentYear, e.Segment())
	assert.Equal(t, "2023", live.Text())
	require.NotEmpty(t, *changes)
	assert.Equal(t, "23/11/2023", (*changes)[len(*changes)-1])
}

func TestFocusSelectsDay(t *testing.T) {
	e, live, _ := newEditor(t, "")
	assert.Equal(t, dateinput.SegmentDay, e.Segment())
	assert.True(t, e.Tracking())
	assert.Equal(t, "Day stepper selected", live.Text())
}

func TestComposeDay(t *testing.T) {
	tests := []struct {
		name        string
		initial     string
		digits      string
		wantValue   string
		wantSegment dateinput.Segment
	}{
		{"first_digit_low", "", "2", "02/mm/yyyy", dateinput.SegmentDay},
		{"first_digit_high_tracked", "", "5", "05/mm/yyyy", dateinput.SegmentMonth},
		{"pair", "", "15", "15/mm/yyyy", dateinput.SegmentMonth},
		{"pair_clamped_high", "", "39", "31/mm/yyyy", dateinput.SegmentMonth},
		{"pair_clamped_low", "", "00", "01/mm/yyyy", dateinput.SegmentMonth},
		{"zero_then_seven", "", "07", "07/mm/yyyy", dateinput.SegmentMonth},
		{"replaces_existing", "28/02/2024", "1", "01/02/2024", dateinput.SegmentDay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := newEditor(t, tt.initial)
			typeDigits(e, tt.digits)
			assert.Equal(t, tt.wantValue, e.Value())
			assert.Equal(t, tt.wantSegment, e.Segment())
		})
	}
}

func TestComposeDayUntrackedPlaceholder(t *testing.T) {
	e, _, _ := newEditor(t, "")
	e.HandleKey(dateinput.Key{Kind: dateinput.KeyDelete}) // tracking stays armed
	e.Type('1')
	e.HandleKey(dateinput.Key{Kind: dateinput.KeyBackspace})
	assert.Equal(t, "dd/mm/yyyy", e.Value())

	// Delete arms tracking, so 8 completes the day immediately.
	e.Type('8')
	assert.Equal(t, "08/mm/yyyy", e.Value())
	assert.Equal(t, dateinput.SegmentMonth, e.Segment())
}

func TestDayTwoDigitsAlwaysValid(t *testing.T) {
	for a := byte('0'); a <= '9'; a++ {
		for b := byte('0'); b <= '9'; b++ {
			e, _, _ := newEditor(t, "")
			e.Type(a)
			if e.Segment() == dateinput.SegmentMonth {
				// a single high digit already completed the day
				assert.Equal(t, "0"+string(a), e.Masked().Field(dateinput.SegmentDay))
				continue
			}
			e.Type(b)
			day := e.Masked().Field(dateinput.SegmentDay)
			assert.Equal(t, dateinput.SegmentMonth, e.Segment(), "%c%c", a, b)
			assert.Len(t, day, 2)
			assert.GreaterOrEqual(t, day, "01")
			assert.LessOrEqual(t, day, "31")
		}
	}
}

func TestComposeMonth(t *testing.T) {
	tests := []struct {
		name        string
		digits      string
		wantMonth   string
		wantSegment dateinput.Segment
	}{
		{"zero_opens_pair", "0", "00", dateinput.SegmentMonth},
		{"one_opens_pair", "1", "01", dateinput.SegmentMonth},
		{"two_tracked_completes", "2", "02", dateinput.SegmentYear},
		{"nine_completes", "9", "09", dateinput.SegmentYear},
		{"pair_twelve", "12", "12", dateinput.SegmentYear},
		{"pair_clamped", "19", "12", dateinput.SegmentYear},
		{"pair_zero_clamped", "00", "01", dateinput.SegmentYear},
		{"pair_october", "10", "10", dateinput.SegmentYear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := newEditor(t, "")
			e.SelectSegment(dateinput.SegmentMonth)
			typeDigits(e, tt.digits)
			assert.Equal(t, tt.wantMonth, e.Masked().Field(dateinput.SegmentMonth))
			assert.Equal(t, tt.wantSegment, e.Segment())
		})
	}
}

func TestComposeMonthTwoUntracked(t *testing.T) {
	// After one typed digit tracking is off, so 2 may close a two-digit month.
	e, _, _ := newEditor(t, "01/01/2024")
	e.SelectSegment(dateinput.SegmentMonth)
	e.Type('1') // "01", tracking cleared
	require.False(t, e.Tracking())
	e.Type('2')
	assert.Equal(t, "01/12/2024", e.Value())
	assert.Equal(t, dateinput.SegmentYear, e.Segment())
	assert.True(t, e.Tracking())
}

func TestComposeYearShiftsLeft(t *testing.T) {
	e, _, _ := newEditor(t, "")
	e.SelectSegment(dateinput.SegmentYear)

	steps := []struct {
		digit byte
		want  string
	}{
		{'1', "0001"},
		{'9', "0019"},
		{'9', "0199"},
		{'8', "1998"},
		{'7', "9987"},
	}
	for _, s := range steps {
		e.Type(s.digit)
		assert.Equal(t, s.want, e.Masked().Field(dateinput.SegmentYear))
		assert.Equal(t, dateinput.SegmentYear, e.Segment())
	}
}

func TestAutoAdvanceAnnouncesSegment(t *testing.T) {
	e, live, _ := newEditor(t, "")
	e.Type('1')
	assert.Equal(t, "01", live.Text())
	e.Type('5')
	assert.Equal(t, "Month stepper selected", live.Text())
	e.Type('4')
	assert.Equal(t, "Year stepper selected", live.Text())
}

func TestStepMonthWraps(t *testing.T) {
	for m := 1; m <= 12; m++ {
		initial := "01/" + twoDigits(m) + "/2024"

		e, _, _ := newEditor(t, initial)
		e.SelectSegment(dateinput.SegmentMonth)
		e.HandleKey(dateinput.Key{Kind: dateinput.KeyUp})
		assert.Equal(t, twoDigits(m%12+1), e.Masked().Field(dateinput.SegmentMonth), "up from %d", m)

		e, _, _ = newEditor(t, initial)
		e.SelectSegment(dateinput.SegmentMonth)
		e.HandleKey(dateinput.Key{Kind: dateinput.KeyDown})
		want := m - 1
		if m == 1 {
			want = 12
		}
		assert.Equal(t, twoDigits(want), e.Masked().Field(dateinput.SegmentMonth), "down from %d", m)
	}
}

func TestStepDayWraps(t *testing.T) {
	e, live, _ := newEditor(t, "31/01/2024")
	e.HandleKey(dateinput.Key{Kind: dateinput.KeyUp})
	assert.Equal(t, "01/01/2024", e.Value())
	assert.Equal(t, "01", live.Text())

	e.HandleKey(dateinput.Key{Kind: dateinput.KeyDown})
	assert.Equal(t, "31/01/2024", e.Value())
	assert.Equal(t, dateinput.SegmentDay, e.Segment())
}

func TestStepUnsetDefaults(t *testing.T) {
	e, _, _ := newEditor(t, "")
	e.HandleKey(dateinput.Key{Kind: dateinput.KeyUp})
	assert.Equal(t, "01/mm/yyyy", e.Value())

	e, _, _ = newEditor(t, "")
	e.HandleKey(dateinput.Key{Kind: dateinput.KeyDown})
	assert.Equal(t, "31/mm/yyyy", e.Value())

	e, _, _ = newEditor(t, "")
	e.SelectSegment(dateinput.SegmentYear)
	e.HandleKey(dateinput.Key{Kind: dateinput.KeyUp})
	assert.Equal(t, "dd/mm/2024", e.Value())

	e, _, _ = newEditor(t, "")
	e.SelectSegment(dateinput.SegmentYear)
	e.HandleKey(dateinput.Key{Kind: dateinput.KeyDown})
	assert.Equal(t, "dd/mm/2022", e.Value())
}

func TestStepWithoutSegmentIsNoop(t *testing.T) {
	live := &dateinput.LiveRegion{}
	e := dateinput.New("10/10/2010", live)
	e.HandleKey(dateinput.Key{Kind: dateinput.KeyUp})
	assert.Equal(t, "10/10/2010", e.Value())
	assert.Empty(t, live.Text())
}

func TestDeleteResetsOnlyActiveSegment(t *testing.T) {
	tests := []struct {
		segment dateinput.Segment
		key     dateinput.KeyKind
		want    string
	}{
		{dateinput.SegmentDay, dateinput.KeyDelete, "dd/08/2024"},
		{dateinput.SegmentMonth, dateinput.KeyBackspace, "19/mm/2024"},
		{dateinput.SegmentYear, dateinput.KeyDelete, "19/08/yyyy"},
	}
	for _, tt := range tests {
		t.Run(tt.segment.String(), func(t *testing.T) {
			e, _, _ := newEditor(t, "19/08/2024")
			e.SelectSegment(tt.segment)
			e.Type('1') // clear tracking to prove Delete re-arms it
			e.SetValue("19/08/2024")

			e.HandleKey(dateinput.Key{Kind: tt.key})
			assert.Equal(t, tt.want, e.Value())
			assert.Equal(t, tt.segment, e.Segment())
			assert.True(t, e.Tracking())
		})
	}
}

func TestHorizontalNavigation(t *testing.T) {
	e, _, _ := newEditor(t, "")

	assert.True(t, e.HandleKey(dateinput.Key{Kind: dateinput.KeyLeft}).Handled)
	assert.Equal(t, dateinput.SegmentDay, e.Segment())

	e.HandleKey(dateinput.Key{Kind: dateinput.KeyRight})
	assert.Equal(t, dateinput.SegmentMonth, e.Segment())
	e.HandleKey(dateinput.Key{Kind: dateinput.KeyRight})
	assert.Equal(t, dateinput.SegmentYear, e.Segment())
	e.HandleKey(dateinput.Key{Kind: dateinput.KeyRight})
	assert.Equal(t, dateinput.SegmentYear, e.Segment())

	e.HandleKey(dateinput.Key{Kind: dateinput.KeyLeft})
	assert.Equal(t, dateinput.SegmentMonth, e.Segment())
}

func TestTabNavigation(t *testing.T) {
	e, _, _ := newEditor(t, "")
	tab := dateinput.Key{Kind: dateinput.KeyTab}
	shiftTab := dateinput.Key{Kind: dateinput.KeyTab, Shift: true}

	assert.False(t, e.HandleKey(shiftTab).Handled, "shift+tab at day passes through")

	assert.True(t, e.HandleKey(tab).Handled)
	assert.Equal(t, dateinput.SegmentMonth, e.Segment())
	assert.True(t, e.HandleKey(tab).Handled)
	assert.Equal(t, dateinput.SegmentYear, e.Segment())
	assert.False(t, e.HandleKey(tab).Handled, "tab at year passes through")
	assert.Equal(t, dateinput.SegmentYear, e.Segment())

	assert.True(t, e.HandleKey(shiftTab).Handled)
	assert.Equal(t, dateinput.SegmentMonth, e.Segment())
}

func TestSegmentChangeArmsTracking(t *testing.T) {
	e, live, _ := newEditor(t, "")
	e.Type('1')
	require.False(t, e.Tracking())

	e.SelectSegment(dateinput.SegmentDay)
	assert.False(t, e.Tracking(), "reselecting the same segment keeps tracking")
	assert.Equal(t, "01", live.Text())

	e.SelectSegment(dateinput.SegmentYear)
	assert.True(t, e.Tracking())
	assert.Equal(t, "Year stepper selected", live.Text())
}

func TestPaste(t *testing.T) {
	tests := []struct {
		name string
		text string
		ok   bool
		want string
	}{
		{"iso", "2024-08-19", true, "19/08/2024"},
		{"iso_datetime", "2024-08-19T12:00:00Z", true, "19/08/2024"},
		{"iso_week", "2024-W33-1", true, "12/08/2024"},
		{"iso_ordinal", "2024-232", true, "19/08/2024"},
		{"masked_verbatim", "01/02/2023", true, "01/02/2023"},
		{"masked_trailing_newline", "01/02/2023\n", true, "01/02/2023"},
		{"garbage", "not a date", false, "05/05/2005"},
		{"impossible_masked", "31/02/2023", false, "05/05/2005"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, changes := newEditor(t, "05/05/2005")
			segment := e.Segment()
			assert.Equal(t, tt.ok, e.Paste(tt.text))
			assert.Equal(t, tt.want, e.Value())
			assert.Equal(t, segment, e.Segment())
			if !tt.ok {
				assert.Empty(t, *changes)
			}
		})
	}
}

func TestSetValue(t *testing.T) {
	e, _, changes := newEditor(t, "")

	e.SetValue("12/mm/2020")
	assert.Equal(t, "12/mm/2020", e.Value())

	e.SetValue("2020-01-01")
	assert.Equal(t, dateinput.Empty, e.Value())

	e.SetValue("1/1/2020")
	assert.Equal(t, dateinput.Empty, e.Value())

	assert.Equal(t, []string{"12/mm/2020", dateinput.Empty}, *changes)
}

func TestSetValueOverwritesEditInProgress(t *testing.T) {
	e, _, _ := newEditor(t, "01/01/2020")
	e.SelectSegment(dateinput.SegmentYear)
	typeDigits(e, "19")

	e.SetValue("01/01/2020")
	assert.Equal(t, "01/01/2020", e.Value())
}

func TestSpaceTogglesCalendar(t *testing.T) {
	space := dateinput.Key{Kind: dateinput.KeySpace}

	e, _, _ := newEditor(t, "")
	assert.True(t, e.HandleKey(space).ToggleCalendar)

	e.SetTouch(true)
	assert.False(t, e.HandleKey(space).ToggleCalendar)

	e.SetTouch(false)
	e.SetCalendarButton(false)
	assert.False(t, e.HandleKey(space).ToggleCalendar)
}

func TestClickAndBlur(t *testing.T) {
	e, live, _ := newEditor(t, "")
	blurred := false
	e.OnBlur(func() { blurred = true })

	assert.True(t, e.Click(dateinput.SegmentYear))
	assert.Equal(t, dateinput.SegmentYear, e.Segment())
	assert.Equal(t, "Year stepper selected", live.Text())

	e.Blur()
	assert.True(t, blurred)
	assert.Equal(t, dateinput.SegmentNone, e.Segment())
	assert.Empty(t, live.Text())

	e.SetTouch(true)
	assert.False(t, e.Click(dateinput.SegmentMonth))
	assert.Equal(t, dateinput.SegmentNone, e.Segment())
}

func TestAnchor(t *testing.T) {
	e, _, _ := newEditor(t, "29/02/2024")
	assert.Equal(t, "2024-02-29", e.Anchor().String())

	e.SetValue("31/02/2024")
	assert.Equal(t, "2024-03-15", e.Anchor().String())

	e.SetValue(dateinput.Empty)
	assert.Equal(t, "2024-03-15", e.Anchor().String())
}

func TestParseKey(t *testing.T) {
	k, ok := dateinput.ParseKey("shift+tab")
	require.True(t, ok)
	assert.Equal(t, dateinput.Key{Kind: dateinput.KeyTab, Shift: true}, k)

	k, ok = dateinput.ParseKey("7")
	require.True(t, ok)
	assert.Equal(t, dateinput.Digit('7'), k)

	_, ok = dateinput.ParseKey("f5")
	assert.False(t, ok)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + string(rune('0'+n))
	}
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}
