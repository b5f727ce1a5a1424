package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Clock
		wantErr  bool
	}{
		{name: "Morning", input: "09:30", expected: 9*60 + 30},
		{name: "Midnight", input: "00:00", expected: 0},
		{name: "Last minute of day", input: "23:59", expected: 23*60 + 59},
		{name: "Hour out of range", input: "24:00", wantErr: true},
		{name: "Minute out of range", input: "12:60", wantErr: true},
		{name: "Missing separator", input: "1230", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClockAddWrapsMidnight(t *testing.T) {
	c, err := ParseClock("23:30")
	assert.NoError(t, err)

	assert.Equal(t, "00:15", c.Add(45).String())
}

func TestClockJSON(t *testing.T) {
	type wrapper struct {
		At Clock `json:"at"`
	}

	data, err := json.Marshal(wrapper{At: 14*60 + 5})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"at":"14:05"}`, string(data))

	var decoded wrapper
	assert.NoError(t, json.Unmarshal([]byte(`{"at":"08:45"}`), &decoded))
	assert.Equal(t, Clock(8*60+45), decoded.At)
}
