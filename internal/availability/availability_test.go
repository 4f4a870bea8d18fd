package availability

import (
	"testing"

	"github.com/Domenick1991/studiobooking/internal/domain"
	"github.com/Domenick1991/studiobooking/internal/timegrid"
	"github.com/stretchr/testify/assert"
)

func booking(id, start, end string) domain.Booking {
	return domain.Booking{
		ID:        id,
		Studio:    "studio-1",
		Date:      "2024-01-10",
		StartTime: start,
		EndTime:   end,
	}
}

func TestStartTimes_EmptyPartition(t *testing.T) {
	assert.Equal(t, timegrid.Slots(), StartTimes(nil))
}

func TestStartTimes_ExcludesOccupiedSlots(t *testing.T) {
	existing := []domain.Booking{booking("b1", "09:00", "10:00")}

	got := StartTimes(existing)

	assert.NotContains(t, got, "09:00")
	assert.NotContains(t, got, "09:30")
	assert.Contains(t, got, "08:00")
	assert.Contains(t, got, "08:30")
	assert.Contains(t, got, "10:00")
	assert.Contains(t, got, "10:30")
	assert.Len(t, got, 29)
}

func TestStartTimes_FullyBooked(t *testing.T) {
	existing := []domain.Booking{booking("b1", "08:00", "24:00")}

	assert.Empty(t, StartTimes(existing))
}

func TestStartTimes_AbuttingBookings(t *testing.T) {
	existing := []domain.Booking{
		booking("b1", "09:00", "10:00"),
		booking("b2", "10:00", "11:00"),
	}

	got := StartTimes(existing)

	// Exactly abutting intervals do not overlap; everything outside
	// [09:00, 11:00) stays selectable.
	assert.NotContains(t, got, "09:00")
	assert.NotContains(t, got, "10:30")
	assert.Contains(t, got, "08:30")
	assert.Contains(t, got, "11:00")
}

func TestEndTimes_NoStartChosen(t *testing.T) {
	got, err := EndTimes(nil, "", "")
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestEndTimes_NoLaterBooking_RunsToEndOfDay(t *testing.T) {
	existing := []domain.Booking{booking("b1", "09:00", "10:00")}

	got, err := EndTimes(existing, "10:00", "")

	assert.NoError(t, err)
	assert.Len(t, got, 28)
	assert.Equal(t, "10:30", got[0])
	assert.Equal(t, "24:00", got[len(got)-1])
}

func TestEndTimes_CappedAtNextBookingStart(t *testing.T) {
	existing := []domain.Booking{
		booking("b1", "09:00", "10:00"),
		booking("b2", "14:00", "15:00"),
	}

	got, err := EndTimes(existing, "10:00", "")

	assert.NoError(t, err)
	assert.Equal(t, "10:30", got[0])
	assert.Equal(t, "14:00", got[len(got)-1])
	assert.Len(t, got, 8)
	assert.NotContains(t, got, "14:30")
}

func TestEndTimes_ExcludesEditedBooking(t *testing.T) {
	existing := []domain.Booking{
		booking("b1", "10:00", "11:00"),
		booking("b2", "14:00", "15:00"),
	}

	// Editing b1: its own interval must not cap the options, the 14:00
	// booking must.
	got, err := EndTimes(existing, "09:00", "b1")

	assert.NoError(t, err)
	assert.Equal(t, "09:30", got[0])
	assert.Equal(t, "14:00", got[len(got)-1])
}

func TestEndTimes_MalformedStart(t *testing.T) {
	_, err := EndTimes(nil, "not-a-time", "")
	assert.Error(t, err)
}
