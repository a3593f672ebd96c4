package schedule

import (
	"testing"
	"time"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mondayAvailability() *models.Availability {
	var weekly models.WeeklySlots
	weekly[int(time.Monday)] = models.DaySlots{
		{Label: "09:00-10:00", Start: "09:00", End: "10:00", Available: true},
		{Label: "18:00-19:00", Start: "18:00", End: "19:00", Available: true},
		{Label: "12:00-13:00", Start: "12:00", End: "13:00", Available: false},
	}
	return &models.Availability{
		MentorID:    "mentor-1",
		TimeZone:    "UTC",
		WeeklySlots: weekly,
	}
}

func TestResolve_FutureMonday(t *testing.T) {
	avail := mondayAvailability()

	// 2025-06-02 is a Monday
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 5, 28, 10, 0, 0, 0, time.UTC)

	slots := Resolve(avail, date, now)
	require.Len(t, slots, 2)

	// Unavailable entries are dropped, remainder sorted ascending
	assert.Equal(t, "09:00-10:00", slots[0].Label)
	assert.Equal(t, "18:00-19:00", slots[1].Label)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), slots[0].StartsAt)
	assert.Equal(t, time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC), slots[1].StartsAt)
}

func TestResolve_SameDayFiltersPastSlots(t *testing.T) {
	avail := mondayAvailability()

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	// 09:30 on that same Monday: the 09:00 slot has already started
	now := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

	slots := Resolve(avail, date, now)
	require.Len(t, slots, 1)
	assert.Equal(t, "18:00-19:00", slots[0].Label)
}

func TestResolve_SlotStartEqualToNowIsNotBookable(t *testing.T) {
	avail := mondayAvailability()

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	slots := Resolve(avail, date, now)
	// Strictly-in-the-future rule: 09:00 == now is excluded
	require.Len(t, slots, 1)
	assert.Equal(t, "18:00-19:00", slots[0].Label)
}

func TestResolve_DayWithoutEntries(t *testing.T) {
	avail := mondayAvailability()

	// 2025-06-03 is a Tuesday, which has no template entries
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 5, 28, 10, 0, 0, 0, time.UTC)

	slots := Resolve(avail, date, now)
	assert.Empty(t, slots)
}

func TestResolve_HonorsTimeZone(t *testing.T) {
	avail := mondayAvailability()
	avail.TimeZone = "America/Argentina/Buenos_Aires" // UTC-3, no DST

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 5, 28, 10, 0, 0, 0, time.UTC)

	slots := Resolve(avail, date, now)
	require.Len(t, slots, 2)
	// 09:00 wall clock in Buenos Aires is 12:00 UTC
	assert.Equal(t, time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC), slots[0].StartsAt.UTC())
}

func TestResolve_UnknownTimeZoneFallsBackToUTC(t *testing.T) {
	avail := mondayAvailability()
	avail.TimeZone = "Not/AZone"

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 5, 28, 10, 0, 0, 0, time.UTC)

	slots := Resolve(avail, date, now)
	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), slots[0].StartsAt)
}

func TestResolve_SkipsMalformedEntries(t *testing.T) {
	var weekly models.WeeklySlots
	weekly[int(time.Monday)] = models.DaySlots{
		{Label: "bad", Start: "nine", End: "ten", Available: true},
		{Label: "10:00-11:00", Start: "10:00", End: "11:00", Available: true},
	}
	avail := &models.Availability{TimeZone: "UTC", WeeklySlots: weekly}

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 5, 28, 10, 0, 0, 0, time.UTC)

	slots := Resolve(avail, date, now)
	require.Len(t, slots, 1)
	assert.Equal(t, "10:00-11:00", slots[0].Label)
}

func TestParseClock(t *testing.T) {
	h, m, err := parseClock("08:30")
	require.NoError(t, err)
	assert.Equal(t, 8, h)
	assert.Equal(t, 30, m)

	for _, bad := range []string{"", "8", "25:00", "10:75", "aa:bb"} {
		_, _, err := parseClock(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}
