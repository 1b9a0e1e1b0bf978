package identity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zarlcorp/zpin/internal/pin"
)

func TestDetailsFromMap(t *testing.T) {
	want := pin.Details{Gender: pin.Female, Year: 1986, Month: 10, Day: 15}

	tests := []struct {
		name string
		m    map[string]any
	}{
		{"ints", map[string]any{"gender": "female", "year": 1986, "month": 10, "day": 15}},
		{"typed gender", map[string]any{"gender": pin.Female, "year": 1986, "month": 10, "day": 15}},
		{"strings", map[string]any{"gender": "Female", "year": "1986", "month": "10", "day": "15"}},
		{"json floats", map[string]any{"gender": "female", "year": 1986.0, "month": 10.0, "day": 15.0}},
		{"extra keys ignored", map[string]any{"gender": "female", "year": 1986, "month": 10, "day": 15, "name": "Mari"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetailsFromMap(tt.m)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestDetailsFromMapJSON(t *testing.T) {
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"gender":"male","year":2000,"month":2,"day":29}`), &m))

	d, err := DetailsFromMap(m)
	require.NoError(t, err)

	code, err := New().Generate(d)
	require.NoError(t, err)
	assert.True(t, pin.Validate(code))
}

func TestDetailsFromMapErrors(t *testing.T) {
	tests := []struct {
		name string
		m    map[string]any
	}{
		{"nil", nil},
		{"missing gender", map[string]any{"year": 1986, "month": 10, "day": 15}},
		{"empty gender", map[string]any{"gender": "", "year": 1986, "month": 10, "day": 15}},
		{"gender not a string", map[string]any{"gender": 1, "year": 1986, "month": 10, "day": 15}},
		{"missing year", map[string]any{"gender": "male", "month": 10, "day": 15}},
		{"zero month", map[string]any{"gender": "male", "year": 1986, "month": 0, "day": 15}},
		{"fractional day", map[string]any{"gender": "male", "year": 1986, "month": 10, "day": 1.5}},
		{"non-numeric year", map[string]any{"gender": "male", "year": "nineteen", "month": 10, "day": 15}},
		{"huge year", map[string]any{"gender": "male", "year": 1e300, "month": 10, "day": 15}},
		{"negative huge day", map[string]any{"gender": "male", "year": 1986, "month": 10, "day": -1e19}},
		{"wrong type", map[string]any{"gender": "male", "year": []int{1986}, "month": 10, "day": 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DetailsFromMap(tt.m)
			assert.ErrorIs(t, err, pin.ErrArgument)
		})
	}
}
