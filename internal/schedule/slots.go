// Package schedule reconciles a mentor's recurring weekly availability
// template against concrete calendar dates. It is pure: no persistence,
// no global clock.
package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

// Slot is a concrete bookable window on a specific date
type Slot struct {
	Label    string    `json:"timeSlot"`
	Start    string    `json:"start"`
	End      string    `json:"end"`
	StartsAt time.Time `json:"date"`
}

// Resolve turns the weekly template into the bookable windows for one
// calendar date. Only entries marked available whose start instant lies
// strictly after now survive; the result is ordered by start instant.
// A date whose weekday has no entries yields an empty slice, not an error.
func Resolve(avail *models.Availability, date time.Time, now time.Time) []Slot {
	loc := avail.Location()
	date = date.In(loc)

	daySlots := avail.WeeklySlots.Day(date.Weekday())
	if len(daySlots) == 0 {
		return []Slot{}
	}

	resolved := make([]Slot, 0, len(daySlots))
	for _, slot := range daySlots {
		if !slot.Available {
			continue
		}

		hour, minute, err := parseClock(slot.Start)
		if err != nil {
			// Malformed template entries are skipped rather than failing
			// the whole resolution
			continue
		}

		startsAt := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc)
		if !startsAt.After(now) {
			continue
		}

		resolved = append(resolved, Slot{
			Label:    slot.Label,
			Start:    slot.Start,
			End:      slot.End,
			StartsAt: startsAt,
		})
	}

	sort.Slice(resolved, func(i, j int) bool {
		return resolved[i].StartsAt.Before(resolved[j].StartsAt)
	})

	return resolved
}

// parseClock parses an "HH:MM" wall-clock label
func parseClock(v string) (hour, minute int, err error) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q", v)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", v)
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", v)
	}

	return hour, minute, nil
}
