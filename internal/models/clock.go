package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Clock is a time of day in minutes since midnight. It serializes as an
// "HH:MM" string, the format the itinerary API exposes for departure and
// arrival times.
type Clock int

// ParseClock parses an "HH:MM" string
func ParseClock(s string) (Clock, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock %q: expected HH:MM", s)
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock %q: out of range", s)
	}
	return Clock(h*60 + m), nil
}

// Add returns the clock advanced by the given number of minutes, wrapping
// past midnight
func (c Clock) Add(minutes int) Clock {
	total := (int(c) + minutes) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}
	return Clock(total)
}

// String formats the clock as "HH:MM"
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60%24, int(c)%60)
}

// MarshalJSON encodes the clock as an "HH:MM" string
func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts an "HH:MM" string
func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
