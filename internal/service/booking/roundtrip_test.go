package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Domenick1991/studiobooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo is a minimal in-memory repository for exercising the service
// against real state transitions instead of canned mock returns.
type memoryRepo struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]domain.Booking
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{bookings: make(map[string]domain.Booking)}
}

func (r *memoryRepo) ListByDate(ctx context.Context, date string) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListAll(ctx context.Context) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Booking
	for _, b := range r.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (r *memoryRepo) Insert(ctx context.Context, nb domain.NewBooking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.bookings {
		if existing.Studio == nb.Studio && existing.Date == nb.Date &&
			nb.StartTime < existing.EndTime && existing.StartTime < nb.EndTime {
			return nil, domain.ErrConflict
		}
	}
	r.seq++
	b := domain.Booking{
		ID:        fmt.Sprintf("mem-%d", r.seq),
		Studio:    nb.Studio,
		Date:      nb.Date,
		StartTime: nb.StartTime,
		EndTime:   nb.EndTime,
		Name:      nb.Name,
		Purpose:   nb.Purpose,
		Subject:   nb.Subject,
	}
	r.bookings[b.ID] = b
	return &b, nil
}

func (r *memoryRepo) Update(ctx context.Context, booking domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[booking.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for id, existing := range r.bookings {
		if id == booking.ID {
			continue
		}
		if existing.Studio == stored.Studio && existing.Date == stored.Date &&
			booking.StartTime < existing.EndTime && existing.StartTime < booking.EndTime {
			return nil, domain.ErrConflict
		}
	}
	stored.StartTime = booking.StartTime
	stored.EndTime = booking.EndTime
	stored.Name = booking.Name
	stored.Purpose = booking.Purpose
	stored.Subject = booking.Subject
	r.bookings[booking.ID] = stored
	return &stored, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func newMemoryService(repo *memoryRepo) *BookingService {
	return NewBookingService(repo, domain.NewCatalog(nil), nil, nil, "", 7, WithClock(fixedClock))
}

func TestRoundTrip_InsertThenReadBack(t *testing.T) {
	repo := newMemoryRepo()
	svc := newMemoryService(repo)

	input := validInput()
	created, err := svc.CreateBooking(context.Background(), input)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	day, err := svc.ListDay(context.Background(), input.Date)
	require.NoError(t, err)
	require.Len(t, day, 1)

	got := day[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, input.Studio, got.Studio)
	assert.Equal(t, input.Date, got.Date)
	assert.Equal(t, input.StartTime, got.StartTime)
	assert.Equal(t, input.EndTime, got.EndTime)
	assert.Equal(t, input.Name, got.Name)
	assert.Equal(t, input.Purpose, got.Purpose)
	assert.Equal(t, input.Subject, got.Subject)
}

func TestConcurrentOverlap_SecondInsertConflicts(t *testing.T) {
	repo := newMemoryRepo()
	svc := newMemoryService(repo)

	first := validInput()
	_, err := svc.CreateBooking(context.Background(), first)
	require.NoError(t, err)

	// A second client holding a stale availability snapshot picks an
	// overlapping interval.
	second := validInput()
	second.StartTime = "10:30"
	second.EndTime = "11:30"
	_, err = svc.CreateBooking(context.Background(), second)
	assert.ErrorIs(t, err, domain.ErrConflict)

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAbuttingBookingsBothCommit(t *testing.T) {
	repo := newMemoryRepo()
	svc := newMemoryService(repo)

	first := validInput() // 10:00-11:00
	_, err := svc.CreateBooking(context.Background(), first)
	require.NoError(t, err)

	second := validInput()
	second.StartTime = "11:00"
	second.EndTime = "12:00"
	_, err = svc.CreateBooking(context.Background(), second)
	assert.NoError(t, err)
}

func TestEditFlow_StartTimeShiftWithinOwnSlot(t *testing.T) {
	repo := newMemoryRepo()
	svc := newMemoryService(repo)

	created, err := svc.CreateBooking(context.Background(), validInput())
	require.NoError(t, err)

	later := validInput()
	later.StartTime = "14:00"
	later.EndTime = "15:00"
	_, err = svc.CreateBooking(context.Background(), later)
	require.NoError(t, err)

	// Stretch the first booking up to the later one's start; its own old
	// interval must not block the edit.
	updated, err := svc.UpdateBooking(context.Background(), UpdateBookingInput{
		ID:        created.ID,
		StartTime: "10:00",
		EndTime:   "14:00",
		Name:      created.Name,
		Purpose:   created.Purpose,
		Subject:   created.Subject,
	})
	require.NoError(t, err)
	assert.Equal(t, "14:00", updated.EndTime)
	assert.Equal(t, created.Studio, updated.Studio)
	assert.Equal(t, created.Date, updated.Date)

	// Overlapping the later booking still conflicts.
	_, err = svc.UpdateBooking(context.Background(), UpdateBookingInput{
		ID:        created.ID,
		StartTime: "10:00",
		EndTime:   "14:30",
		Name:      created.Name,
		Purpose:   created.Purpose,
		Subject:   created.Subject,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDeleteNonexistentDoesNotAlterStore(t *testing.T) {
	repo := newMemoryRepo()
	svc := newMemoryService(repo)

	_, err := svc.CreateBooking(context.Background(), validInput())
	require.NoError(t, err)

	err = svc.DeleteBooking(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
