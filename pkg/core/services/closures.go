package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/openvol/shiftengine/internal/config"
	"github.com/openvol/shiftengine/pkg/core/schedule"
)

// closureDates expands the configured closure rules into the set of window
// dates on which no occurrences are generated. Each rule is anchored at the
// window start so that recurring patterns enumerate inside the window.
func closureDates(rules []config.ClosureRule, window schedule.Window, today time.Time) (map[string]bool, error) {
	if len(rules) == 0 {
		return nil, nil
	}

	dates := window.Dates(today)
	if len(dates) == 0 {
		return nil, nil
	}
	first := dates[0]
	last := dates[len(dates)-1]

	closed := make(map[string]bool)
	for i, rule := range rules {
		r, err := rrule.StrToRRule(rule.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in closureRules[%d]: %w", i, err)
		}
		r.DTStart(first)

		for _, occ := range r.Between(first, last, true) {
			closed[occ.Format("2006-01-02")] = true
		}
	}
	return closed, nil
}
