package schedule

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/openvol/shiftengine/pkg/core/model"
)

// DateOf builds a calendar date from explicit parts at midnight UTC.
// Dates must always be constructed this way, never parsed out of a
// pre-formatted local timestamp: a UTC-shifting conversion near midnight
// moves the date by a day and silently changes its weekday.
func DateOf(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "2006-01-02" date string into a midnight-UTC date
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// WeekdayOf maps a date to its canonical weekday bucket. The same function
// is used when generating occurrences and when deriving the weekday at
// template-creation time; the two call sites must never diverge or newly
// created templates stop matching any generated date.
func WeekdayOf(date time.Time) model.Weekday {
	return model.Weekday(date.Weekday())
}

// stripAccents removes combining marks so that e.g. "miércoles" and
// "miercoles" compare equal.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeWeekdayKey lower-cases, trims, and accent-strips a weekday key
func NormalizeWeekdayKey(key string) string {
	folded, _, err := transform.String(stripAccents, key)
	if err != nil {
		folded = key
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// weekdayAliases maps normalized legacy weekday keys to their bucket.
// Templates were historically authored with human-language weekday strings;
// this table is the compatibility shim that resolves them.
var weekdayAliases = map[string]model.Weekday{
	"sunday":    model.Sunday,
	"monday":    model.Monday,
	"tuesday":   model.Tuesday,
	"wednesday": model.Wednesday,
	"thursday":  model.Thursday,
	"friday":    model.Friday,
	"saturday":  model.Saturday,
	"domingo":   model.Sunday,
	"lunes":     model.Monday,
	"martes":    model.Tuesday,
	"miercoles": model.Wednesday,
	"jueves":    model.Thursday,
	"viernes":   model.Friday,
	"sabado":    model.Saturday,
}

// ParseWeekdayKey resolves an authored weekday key (any supported language,
// any casing or accenting) to its canonical bucket
func ParseWeekdayKey(key string) (model.Weekday, error) {
	w, ok := weekdayAliases[NormalizeWeekdayKey(key)]
	if !ok {
		return 0, fmt.Errorf("unrecognized weekday key %q", key)
	}
	return w, nil
}
