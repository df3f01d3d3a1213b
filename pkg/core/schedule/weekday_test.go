package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvol/shiftengine/pkg/core/model"
)

func TestWeekdayOf_KnownDates(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected model.Weekday
	}{
		{"monday", DateOf(2025, time.January, 6), model.Monday},
		{"tuesday", DateOf(2025, time.January, 7), model.Tuesday},
		{"sunday", DateOf(2025, time.January, 5), model.Sunday},
		{"saturday", DateOf(2024, time.December, 28), model.Saturday},
		{"leap day", DateOf(2024, time.February, 29), model.Thursday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WeekdayOf(tt.date))
		})
	}
}

func TestDateOf_MidnightUTC(t *testing.T) {
	d := DateOf(2025, time.March, 15)
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, "2025-03-15", d.Format("2006-01-02"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, DateOf(2025, time.January, 6), d)

	_, err = ParseDate("06/01/2025")
	assert.Error(t, err)

	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}

func TestNormalizeWeekdayKey(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Monday", "monday"},
		{"  MONDAY  ", "monday"},
		{"miércoles", "miercoles"},
		{"SÁBADO", "sabado"},
		{"sunday", "sunday"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeWeekdayKey(tt.in))
		})
	}
}

func TestParseWeekdayKey(t *testing.T) {
	tests := []struct {
		in       string
		expected model.Weekday
	}{
		{"monday", model.Monday},
		{"Lunes", model.Monday},
		{"MIÉRCOLES", model.Wednesday},
		{"miercoles", model.Wednesday},
		{" sábado ", model.Saturday},
		{"Domingo", model.Sunday},
		{"Friday", model.Friday},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, err := ParseWeekdayKey(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, w)
		})
	}
}

func TestParseWeekdayKey_Unrecognized(t *testing.T) {
	_, err := ParseWeekdayKey("someday")
	assert.Error(t, err)

	_, err = ParseWeekdayKey("")
	assert.Error(t, err)
}

// Creation and generation must derive weekdays identically: a template
// created for a given date has to match that same date when the window is
// generated.
func TestWeekdayOf_RoundTripsThroughKey(t *testing.T) {
	date := DateOf(2025, time.January, 6)
	w := WeekdayOf(date)

	parsed, err := ParseWeekdayKey(w.Key())
	require.NoError(t, err)
	assert.Equal(t, w, parsed)
}
