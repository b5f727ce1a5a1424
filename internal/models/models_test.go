package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperatingHoursOpenAt(t *testing.T) {
	hours := OperatingHours{
		"mon": {Open: 9 * 60, Close: 18 * 60},
		"sat": {Open: 10 * 60, Close: 14 * 60},
	}

	tests := []struct {
		name     string
		hours    OperatingHours
		weekday  string
		at       Clock
		expected bool
	}{
		{name: "Open during window", hours: hours, weekday: "mon", at: 10 * 60, expected: true},
		{name: "Exactly at open", hours: hours, weekday: "mon", at: 9 * 60, expected: true},
		{name: "Exactly at close", hours: hours, weekday: "mon", at: 18 * 60, expected: true},
		{name: "Before open", hours: hours, weekday: "mon", at: 8 * 60, expected: false},
		{name: "After close", hours: hours, weekday: "sat", at: 15 * 60, expected: false},
		{name: "Closed weekday missing", hours: hours, weekday: "sun", at: 12 * 60, expected: false},
		{name: "Nil hours always open", hours: nil, weekday: "sun", at: 3 * 60, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.hours.OpenAt(tt.weekday, tt.at))
		})
	}
}

func TestPlaceNormalize(t *testing.T) {
	tests := []struct {
		name             string
		place            Place
		expectedDuration int
		expectedPriority float64
	}{
		{
			name:             "Zero values get defaults",
			place:            Place{ID: "a"},
			expectedDuration: DefaultVisitDuration,
			expectedPriority: 1.0,
		},
		{
			name:             "Explicit values kept",
			place:            Place{ID: "b", VisitDurationMinutes: 45, Priority: 0.3},
			expectedDuration: 45,
			expectedPriority: 0.3,
		},
		{
			name:             "Priority above one reset",
			place:            Place{ID: "c", VisitDurationMinutes: 60, Priority: 5},
			expectedDuration: 60,
			expectedPriority: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.place.Normalize()
			assert.Equal(t, tt.expectedDuration, tt.place.VisitDurationMinutes)
			assert.Equal(t, tt.expectedPriority, tt.place.Priority)
		})
	}
}

func TestTransportModeValid(t *testing.T) {
	assert.True(t, ModeWalk.Valid())
	assert.True(t, ModeTransit.Valid())
	assert.True(t, ModeDrive.Valid())
	assert.False(t, TransportMode("bicycle").Valid())
	assert.False(t, TransportMode("").Valid())
}
