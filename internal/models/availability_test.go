package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklySlots_UnmarshalWireFormat(t *testing.T) {
	payload := `{
		"1": {
			"18:00-19:00": {"start": "18:00", "end": "19:00", "available": true},
			"09:00-10:00": {"start": "09:00", "end": "10:00", "available": false}
		},
		"6": {
			"10:00-11:00": {"start": "10:00", "end": "11:00", "available": true}
		}
	}`

	var weekly WeeklySlots
	require.NoError(t, json.Unmarshal([]byte(payload), &weekly))

	monday := weekly[1]
	require.Len(t, monday, 2)
	// Normalized into start-time order regardless of JSON key order
	assert.Equal(t, "09:00-10:00", monday[0].Label)
	assert.False(t, monday[0].Available)
	assert.Equal(t, "18:00-19:00", monday[1].Label)
	assert.True(t, monday[1].Available)

	assert.Len(t, weekly[6], 1)
	assert.Empty(t, weekly[0])
	assert.Empty(t, weekly[2])
}

func TestWeeklySlots_MarshalOmitsEmptyDays(t *testing.T) {
	var weekly WeeklySlots
	weekly[2] = DaySlots{{Label: "14:00-15:00", Start: "14:00", End: "15:00", Available: true}}

	data, err := json.Marshal(weekly)
	require.NoError(t, err)

	var raw map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	require.Len(t, raw, 1)
	require.Contains(t, raw, "2")
	assert.Contains(t, raw["2"], "14:00-15:00")
}

func TestWeeklySlots_MarshalDerivesMissingLabel(t *testing.T) {
	var weekly WeeklySlots
	weekly[3] = DaySlots{{Start: "08:00", End: "09:00", Available: true}}

	data, err := json.Marshal(weekly)
	require.NoError(t, err)

	var raw map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw["3"], "08:00-09:00")
}

func TestWeeklySlots_RoundTrip(t *testing.T) {
	payload := `{"5": {"20:00-21:00": {"start": "20:00", "end": "21:00", "available": true}}}`

	var weekly WeeklySlots
	require.NoError(t, json.Unmarshal([]byte(payload), &weekly))

	data, err := json.Marshal(weekly)
	require.NoError(t, err)

	var again WeeklySlots
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, weekly, again)
}

func TestWeeklySlots_RejectsInvalidDayKey(t *testing.T) {
	for _, payload := range []string{
		`{"7": {}}`,
		`{"-1": {}}`,
		`{"monday": {}}`,
	} {
		var weekly WeeklySlots
		assert.Error(t, json.Unmarshal([]byte(payload), &weekly), "payload %s", payload)
	}
}

func TestWeeklySlots_IsEmpty(t *testing.T) {
	var weekly WeeklySlots
	assert.True(t, weekly.IsEmpty())

	weekly[0] = DaySlots{{Label: "09:00-10:00", Start: "09:00", End: "10:00"}}
	assert.False(t, weekly.IsEmpty())
}

func TestAvailability_LocationFallback(t *testing.T) {
	a := &Availability{TimeZone: "Mars/OlympusMons"}
	assert.Equal(t, "UTC", a.Location().String())

	a.TimeZone = "America/Argentina/Buenos_Aires"
	assert.Equal(t, "America/Argentina/Buenos_Aires", a.Location().String())
}
