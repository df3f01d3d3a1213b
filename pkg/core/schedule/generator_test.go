package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvol/shiftengine/pkg/core/model"
)

func mondayTemplate(id string, maxCapacity int) model.ShiftTemplate {
	return model.ShiftTemplate{
		ID:          id,
		Weekday:     model.Monday,
		StartTime:   "09:00",
		EndTime:     "13:00",
		MaxCapacity: maxCapacity,
		Site:        model.Site{ID: "site-1", Name: "Community Kitchen"},
	}
}

// Window includes exactly one Monday, 2025-01-06: the Monday template must
// yield exactly one occurrence dated 2025-01-06 and none for 2025-01-07.
func TestGenerate_SingleWeekdayMatch(t *testing.T) {
	today := DateOf(2025, time.January, 6)
	window := Window{PastDays: 3, FutureDays: 2} // 2025-01-03 .. 2025-01-07

	occurrences := Generate(
		[]model.ShiftTemplate{mondayTemplate("tpl-1", 10)},
		EnrollmentIndex{},
		window,
		today,
		nil,
	)

	require.Len(t, occurrences, 1)
	assert.Equal(t, "2025-01-06", occurrences[0].Date)
	assert.Equal(t, "tpl-1", occurrences[0].Template.ID)
	assert.Empty(t, occurrences[0].Enrolled)
	assert.Equal(t, model.StateAvailable, occurrences[0].State)
}

func TestWindow_Dates(t *testing.T) {
	today := DateOf(2025, time.June, 15)
	dates := DefaultWindow.Dates(today)

	require.Len(t, dates, 37)
	assert.Equal(t, "2025-05-16", dates[0].Format("2006-01-02"))
	assert.Equal(t, "2025-06-21", dates[len(dates)-1].Format("2006-01-02"))

	// Upper bound is exclusive: today+7 itself is not in the window
	for _, d := range dates {
		assert.True(t, d.Before(today.AddDate(0, 0, 7)))
		assert.False(t, d.Before(today.AddDate(0, 0, -30)))
	}
}

// Time of day on "today" must not shift the window's dates
func TestWindow_Dates_IgnoresTimeOfDay(t *testing.T) {
	lateEvening := time.Date(2025, time.June, 15, 23, 45, 0, 0, time.UTC)
	assert.Equal(t,
		DefaultWindow.DateKeys(DateOf(2025, time.June, 15)),
		DefaultWindow.DateKeys(lateEvening),
	)
}

func TestGenerate_OccurrenceInvariants(t *testing.T) {
	today := DateOf(2025, time.June, 15)
	templates := []model.ShiftTemplate{
		mondayTemplate("tpl-mon", 10),
		{
			ID: "tpl-thu", Weekday: model.Thursday, StartTime: "18:00", EndTime: "21:00",
			MaxCapacity: 5, Site: model.Site{ID: "site-2"},
		},
	}

	occurrences := Generate(templates, EnrollmentIndex{}, DefaultWindow, today, nil)
	require.NotEmpty(t, occurrences)

	lower := today.AddDate(0, 0, -30)
	upper := today.AddDate(0, 0, 7)
	for _, occ := range occurrences {
		date, err := ParseDate(occ.Date)
		require.NoError(t, err)

		// Every occurrence's date matches its template's weekday bucket
		assert.Equal(t, occ.Template.Weekday, WeekdayOf(date))

		// Every occurrence's date lies in [today-30, today+7)
		assert.False(t, date.Before(lower))
		assert.True(t, date.Before(upper))
	}

	// 2025-05-16 .. 2025-06-21 holds 5 Mondays and 5 Thursdays
	mondays := 0
	thursdays := 0
	for _, occ := range occurrences {
		switch occ.Template.ID {
		case "tpl-mon":
			mondays++
		case "tpl-thu":
			thursdays++
		}
	}
	assert.Equal(t, 5, mondays)
	assert.Equal(t, 5, thursdays)
}

func TestGenerate_JoinsEnrollments(t *testing.T) {
	today := DateOf(2025, time.January, 6)
	window := Window{PastDays: 3, FutureDays: 2}

	records := []model.EnrollmentRecord{
		{TemplateID: "tpl-1", VolunteerID: "vol-a", Date: "2025-01-06"},
		{TemplateID: "tpl-1", VolunteerID: "vol-b", Date: "2025-01-06"},
		{TemplateID: "tpl-other", VolunteerID: "vol-c", Date: "2025-01-06"},
		{TemplateID: "tpl-1", VolunteerID: "vol-d", Date: "2025-01-13"}, // outside window
	}
	idx := BuildEnrollmentIndex(records)

	occurrences := Generate([]model.ShiftTemplate{mondayTemplate("tpl-1", 2)}, idx, window, today, nil)

	require.Len(t, occurrences, 1)
	occ := occurrences[0]

	// Enrollment count matches exactly the records for (template, date)
	assert.ElementsMatch(t, []string{"vol-a", "vol-b"}, occ.Enrolled)
	assert.Equal(t, model.StateFull, occ.State)
}

func TestGenerate_Idempotent(t *testing.T) {
	today := DateOf(2025, time.June, 15)
	templates := []model.ShiftTemplate{
		mondayTemplate("tpl-1", 10),
		{ID: "tpl-2", Weekday: model.Friday, MaxCapacity: 4, Site: model.Site{ID: "site-2"}},
	}
	idx := BuildEnrollmentIndex([]model.EnrollmentRecord{
		{TemplateID: "tpl-1", VolunteerID: "vol-a", Date: "2025-06-09"},
	})

	first := Generate(templates, idx, DefaultWindow, today, nil)
	second := Generate(templates, idx, DefaultWindow, today, nil)

	assert.Equal(t, first, second)
}

func TestGenerate_ClosedDates(t *testing.T) {
	today := DateOf(2025, time.January, 6)
	window := Window{PastDays: 3, FutureDays: 2}
	closed := map[string]bool{"2025-01-06": true}

	occurrences := Generate([]model.ShiftTemplate{mondayTemplate("tpl-1", 10)}, EnrollmentIndex{}, window, today, closed)

	assert.Empty(t, occurrences)
}

func TestGenerate_NoTemplates(t *testing.T) {
	occurrences := Generate(nil, EnrollmentIndex{}, DefaultWindow, DateOf(2025, time.June, 15), nil)
	assert.Empty(t, occurrences)
}

func TestBuildEnrollmentIndex(t *testing.T) {
	idx := BuildEnrollmentIndex([]model.EnrollmentRecord{
		{TemplateID: "tpl-1", VolunteerID: "vol-a", Date: "2025-01-06"},
		{TemplateID: "tpl-1", VolunteerID: "vol-b", Date: "2025-01-06"},
		{TemplateID: "tpl-2", VolunteerID: "vol-a", Date: "2025-01-07"},
	})

	assert.ElementsMatch(t, []string{"vol-a", "vol-b"}, idx.Enrolled("2025-01-06", "tpl-1"))
	assert.Equal(t, []string{"vol-a"}, idx.Enrolled("2025-01-07", "tpl-2"))
	assert.Empty(t, idx.Enrolled("2025-01-06", "tpl-2"))
	assert.Empty(t, idx.Enrolled("2025-01-08", "tpl-1"))
}
