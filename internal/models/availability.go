package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// DefaultTimeZone is applied when a mentor never set one
const DefaultTimeZone = "America/Argentina/Buenos_Aires"

// TimeSlot is one recurring bookable window within a day. Start and End
// are wall-clock labels ("09:00"); Label is the slot key the frontend
// displays ("09:00-10:00"). Label/time consistency is the caller's
// responsibility, not validated here.
type TimeSlot struct {
	Label     string `json:"-"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// DaySlots is the ordered list of slots declared for one weekday
type DaySlots []TimeSlot

// WeeklySlots is a mentor's recurring weekly template, indexed by
// time.Weekday (0=Sunday..6=Saturday). An empty day means no slots
// defined for that day, which is distinct from an explicit
// available:false entry.
//
// The wire format is the nested mapping the frontend already speaks:
//
//	{"1": {"09:00-10:00": {"start":"09:00","end":"10:00","available":true}}}
type WeeklySlots [7]DaySlots

// Day returns the slots declared for a weekday
func (w WeeklySlots) Day(d time.Weekday) DaySlots {
	return w[int(d)]
}

// IsEmpty reports whether no day has any slot
func (w WeeklySlots) IsEmpty() bool {
	for _, day := range w {
		if len(day) > 0 {
			return false
		}
	}
	return true
}

// MarshalJSON emits the nested day-index -> slot-label mapping, omitting
// days with no slots.
func (w WeeklySlots) MarshalJSON() ([]byte, error) {
	out := make(map[string]map[string]TimeSlot, 7)
	for day, slots := range w {
		if len(slots) == 0 {
			continue
		}
		entries := make(map[string]TimeSlot, len(slots))
		for _, s := range slots {
			label := s.Label
			if label == "" {
				label = s.Start + "-" + s.End
			}
			entries[label] = s
		}
		out[strconv.Itoa(day)] = entries
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses the nested mapping and normalizes each day into an
// ordered slot list (by start time, then label).
func (w *WeeklySlots) UnmarshalJSON(data []byte) error {
	var raw map[string]map[string]TimeSlot
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var parsed WeeklySlots
	for dayKey, entries := range raw {
		day, err := strconv.Atoi(dayKey)
		if err != nil || day < 0 || day > 6 {
			return fmt.Errorf("invalid day-of-week key %q", dayKey)
		}

		slots := make(DaySlots, 0, len(entries))
		for label, slot := range entries {
			slot.Label = label
			slots = append(slots, slot)
		}
		sort.Slice(slots, func(i, j int) bool {
			if slots[i].Start != slots[j].Start {
				return slots[i].Start < slots[j].Start
			}
			return slots[i].Label < slots[j].Label
		})
		parsed[day] = slots
	}

	*w = parsed
	return nil
}

// Availability is a mentor's recurring weekly availability template,
// one-to-one with the mentor profile, created lazily on first access.
type Availability struct {
	ID          string      `json:"_id"`
	MentorID    string      `json:"mentorId"`
	TimeZone    string      `json:"timeZone"`
	WeeklySlots WeeklySlots `json:"weeklySlots"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Location resolves the availability timezone, falling back to UTC when
// the stored label is unknown to the tzdata on this host.
func (a *Availability) Location() *time.Location {
	loc, err := time.LoadLocation(a.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UpdateAvailabilityRequest partially overwrites the caller's availability.
// Nil fields are left untouched.
type UpdateAvailabilityRequest struct {
	TimeZone    *string      `json:"timeZone"`
	WeeklySlots *WeeklySlots `json:"weeklySlots"`
}
