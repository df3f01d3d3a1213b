package schedule

import (
	"time"

	"github.com/openvol/shiftengine/pkg/core/model"
)

// Window bounds occurrence generation around "today":
// [today - PastDays, today + FutureDays).
type Window struct {
	PastDays   int
	FutureDays int
}

// DefaultWindow is the rolling window the signup screens work over
var DefaultWindow = Window{PastDays: 30, FutureDays: 7}

// Dates enumerates every date in the window as midnight-UTC days.
// The lower bound is inclusive, the upper bound exclusive.
func (w Window) Dates(today time.Time) []time.Time {
	start := DateOf(today.Year(), today.Month(), today.Day()).AddDate(0, 0, -w.PastDays)
	total := w.PastDays + w.FutureDays
	dates := make([]time.Time, 0, total)
	for i := 0; i < total; i++ {
		dates = append(dates, start.AddDate(0, 0, i))
	}
	return dates
}

// DateKeys returns the window's dates formatted as "2006-01-02" keys,
// the shape the batched enrollment fetch takes
func (w Window) DateKeys(today time.Time) []string {
	dates := w.Dates(today)
	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = d.Format("2006-01-02")
	}
	return keys
}

// Generate materializes one ShiftOccurrence for every (date, template) pair
// in the window whose weekday buckets match. It is a pure function of its
// inputs: no occurrence is persisted, and calling it twice with the same
// inputs yields the same set.
//
// closed holds dates (as "2006-01-02" keys) on which no occurrences are
// generated regardless of weekday, e.g. venue closures; nil means no
// closures.
func Generate(templates []model.ShiftTemplate, idx EnrollmentIndex, window Window, today time.Time, closed map[string]bool) []model.ShiftOccurrence {
	var occurrences []model.ShiftOccurrence
	for _, date := range window.Dates(today) {
		key := date.Format("2006-01-02")
		if closed[key] {
			continue
		}
		weekday := WeekdayOf(date)
		for _, tpl := range templates {
			if tpl.Weekday != weekday {
				continue
			}
			enrolled := idx.Enrolled(key, tpl.ID)
			occurrences = append(occurrences, model.ShiftOccurrence{
				Template: tpl,
				Date:     key,
				Enrolled: enrolled,
				State:    StateFor(len(enrolled), tpl.MaxCapacity),
			})
		}
	}
	return occurrences
}
