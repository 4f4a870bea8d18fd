// Package timegrid defines the fixed half-hour slot lattice of a bookable day
// and the conversions between HH:MM strings and minute offsets.
package timegrid

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	SlotMinutes = 30

	// DayStart is the first bookable slot, 08:00.
	DayStart = 8 * 60
	// DayEnd is the end-of-day boundary, minute 1440 (24:00). It is a legal
	// end time but never a legal start time.
	DayEnd = 24 * 60
)

// Slots returns every 30-minute start slot of a bookable day, 08:00 through
// 23:00, ascending. The grid is the same for every calendar day.
func Slots() []string {
	slots := make([]string, 0, (DayEnd-DayStart)/SlotMinutes-1)
	for m := DayStart; m <= DayEnd-2*SlotMinutes; m += SlotMinutes {
		slots = append(slots, MinutesToTime(m))
	}
	return slots
}

// TimeToMinutes parses HH:MM into minutes since midnight. "24:00" maps to 1440.
func TimeToMinutes(t string) (int, error) {
	h, m, ok := splitTime(t)
	if !ok {
		return 0, fmt.Errorf("malformed time %q", t)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("time %q out of range", t)
	}
	return h*60 + m, nil
}

// MinutesToTime renders minutes since midnight as zero-padded HH:MM. Minute
// 1440 renders as "24:00".
func MinutesToTime(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// FormatTo12Hour converts HH:MM to a 12-hour clock with AM/PM for display.
// Hour 0 shows as 12.
func FormatTo12Hour(t string) string {
	h, m, ok := splitTime(t)
	if !ok {
		return ""
	}
	ampm := "AM"
	if h >= 12 && h < 24 {
		ampm = "PM"
	}
	h = h % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, m, ampm)
}

// Aligned reports whether mins sits on the 30-minute lattice.
func Aligned(mins int) bool {
	return mins%SlotMinutes == 0
}

func splitTime(t string) (h, m int, ok bool) {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	m, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return h, m, true
}
