package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openvol/shiftengine/pkg/core/model"
)

func TestStateFor(t *testing.T) {
	tests := []struct {
		name     string
		enrolled int
		max      int
		expected model.CapacityState
	}{
		{"empty shift", 0, 10, model.StateAvailable},
		{"below threshold", 7, 10, model.StateAvailable},
		{"exactly at 80 percent", 8, 10, model.StateLimited},
		{"above threshold", 9, 10, model.StateLimited},
		{"exactly at max", 10, 10, model.StateFull},
		{"over max", 12, 10, model.StateFull},
		{"capacity one empty", 0, 1, model.StateAvailable},
		{"capacity one full", 1, 1, model.StateFull},
		{"fractional threshold rounds via float", 4, 5, model.StateLimited}, // 4 >= 4.0
		{"just under fractional threshold", 3, 5, model.StateAvailable},     // 3 < 4.0
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StateFor(tt.enrolled, tt.max))
		})
	}
}

// A non-positive max is invalid input; it must classify as full so bad data
// blocks signups instead of inviting them, and must never divide by zero.
func TestStateFor_InvalidMax(t *testing.T) {
	assert.Equal(t, model.StateFull, StateFor(0, 0))
	assert.Equal(t, model.StateFull, StateFor(5, 0))
	assert.Equal(t, model.StateFull, StateFor(0, -3))
}
