package schedule

import "github.com/openvol/shiftengine/pkg/core/model"

// limitedThreshold is the fraction of max capacity at which an occurrence
// stops being freely available
const limitedThreshold = 0.8

// StateFor classifies an occurrence's remaining capacity.
//
// A non-positive max is invalid input (capacity is validated at template
// creation); it is treated as full so that bad data blocks new signups
// rather than inviting them. Both comparisons are inclusive: enrolled == max
// is full, enrolled == 80% of max is limited.
func StateFor(enrolled, max int) model.CapacityState {
	if max <= 0 {
		return model.StateFull
	}
	if enrolled >= max {
		return model.StateFull
	}
	if float64(enrolled) >= float64(max)*limitedThreshold {
		return model.StateLimited
	}
	return model.StateAvailable
}
