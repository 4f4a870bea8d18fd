// Package availability derives the legal start and end times for a booking
// within one (studio, date) partition. The calculator never offers a choice
// that could overlap an existing booking.
package availability

import (
	"fmt"
	"sort"

	"github.com/Domenick1991/studiobooking/internal/domain"
	"github.com/Domenick1991/studiobooking/internal/timegrid"
)

// StartTimes returns the grid slots that are free for a new booking, in grid
// order. A slot is free iff its minute is not covered by any existing
// booking's [start, end) interval. A fully booked studio yields an empty
// slice.
func StartTimes(existing []domain.Booking) []string {
	occupied := make(map[int]bool)
	for _, b := range existing {
		start, err := timegrid.TimeToMinutes(b.StartTime)
		if err != nil {
			continue
		}
		end, err := timegrid.TimeToMinutes(b.EndTime)
		if err != nil {
			continue
		}
		for m := start; m < end; m += timegrid.SlotMinutes {
			occupied[m] = true
		}
	}

	var free []string
	for _, slot := range timegrid.Slots() {
		m, _ := timegrid.TimeToMinutes(slot)
		if !occupied[m] {
			free = append(free, slot)
		}
	}
	return free
}

// EndTimes returns the legal end times for a booking starting at start,
// ascending: every 30-minute tick after start, up to and including the start
// of the next booking in the partition (or 24:00 when none follows). The
// booking identified by excludeID is left out of the conflict set so an edit
// does not collide with itself. An empty start yields an empty slice.
func EndTimes(existing []domain.Booking, start string, excludeID string) ([]string, error) {
	if start == "" {
		return nil, nil
	}
	startMins, err := timegrid.TimeToMinutes(start)
	if err != nil {
		return nil, fmt.Errorf("parse start time: %w", err)
	}

	var laterStarts []int
	for _, b := range existing {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		m, err := timegrid.TimeToMinutes(b.StartTime)
		if err != nil {
			continue
		}
		if m > startMins {
			laterStarts = append(laterStarts, m)
		}
	}

	limit := timegrid.DayEnd
	if len(laterStarts) > 0 {
		sort.Ints(laterStarts)
		limit = laterStarts[0]
	}

	var options []string
	for m := startMins + timegrid.SlotMinutes; m <= limit; m += timegrid.SlotMinutes {
		options = append(options, timegrid.MinutesToTime(m))
	}
	return options, nil
}
