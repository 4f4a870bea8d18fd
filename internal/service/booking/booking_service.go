package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/studiobooking/internal/availability"
	"github.com/Domenick1991/studiobooking/internal/domain"
	"github.com/Domenick1991/studiobooking/internal/kafka"
	"github.com/Domenick1991/studiobooking/internal/repository"
	"github.com/Domenick1991/studiobooking/internal/timegrid"
	"github.com/rs/zerolog/log"
)

const dateLayout = "2006-01-02"

type BookingUseCase interface {
	ListDay(ctx context.Context, date string) ([]domain.Booking, error)
	AvailableStartTimes(ctx context.Context, studio, date string) ([]string, error)
	AvailableEndTimes(ctx context.Context, studio, date, start, excludeID string) ([]string, error)
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, input UpdateBookingInput) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

type Cache interface {
	GetDay(ctx context.Context, date string) ([]domain.Booking, error)
	SetDay(ctx context.Context, date string, bookings []domain.Booking) error
	InvalidateDay(ctx context.Context, date string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Broadcaster pushes a no-payload change signal to in-process listeners.
type Broadcaster interface {
	Broadcast()
}

type BookingService struct {
	repo        repository.BookingRepository
	catalog     *domain.Catalog
	cache       Cache
	producer    Producer
	broadcaster Broadcaster
	topic       string
	horizonDays int
	now         func() time.Time
}

type CreateBookingInput struct {
	Studio    string                  `json:"studio"`
	Date      string                  `json:"date"`
	StartTime string                  `json:"start_time"`
	EndTime   string                  `json:"end_time"`
	Name      string                  `json:"name"`
	Purpose   domain.RecordingPurpose `json:"recording_purpose"`
	Subject   string                  `json:"subject"`
}

// UpdateBookingInput carries the editable fields only. Studio and date are an
// immutable key during edit.
type UpdateBookingInput struct {
	ID        string                  `json:"id"`
	StartTime string                  `json:"start_time"`
	EndTime   string                  `json:"end_time"`
	Name      string                  `json:"name"`
	Purpose   domain.RecordingPurpose `json:"recording_purpose"`
	Subject   string                  `json:"subject"`
}

type BookingServiceOption func(*BookingService)

func WithBroadcaster(b Broadcaster) BookingServiceOption {
	return func(s *BookingService) {
		s.broadcaster = b
	}
}

// WithClock overrides the wall clock used by the booking-horizon rule.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	repo repository.BookingRepository,
	catalog *domain.Catalog,
	cache Cache,
	producer Producer,
	topic string,
	horizonDays int,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		repo:        repo,
		catalog:     catalog,
		cache:       cache,
		producer:    producer,
		topic:       topic,
		horizonDays: horizonDays,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) ListDay(ctx context.Context, date string) ([]domain.Booking, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetDay(ctx, date); err == nil && cached != nil {
			return cached, nil
		}
	}

	bookings, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetDay(ctx, date, bookings)
	}
	return bookings, nil
}

func (s *BookingService) AvailableStartTimes(ctx context.Context, studio, date string) ([]string, error) {
	partition, err := s.partition(ctx, studio, date)
	if err != nil {
		return nil, err
	}
	return availability.StartTimes(partition), nil
}

func (s *BookingService) AvailableEndTimes(ctx context.Context, studio, date, start, excludeID string) ([]string, error) {
	partition, err := s.partition(ctx, studio, date)
	if err != nil {
		return nil, err
	}
	return availability.EndTimes(partition, start, excludeID)
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if !s.catalog.Contains(input.Studio) {
		return nil, domain.ErrUnknownStudio
	}
	if err := validateFields(input.Name, input.Subject, input.StartTime, input.EndTime); err != nil {
		return nil, err
	}
	if err := validateDate(input.Date); err != nil {
		return nil, err
	}
	purpose, err := normalizePurpose(input.Purpose)
	if err != nil {
		return nil, err
	}
	if err := validateInterval(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	date := s.clampToHorizon(input.Date)

	created, err := s.repo.Insert(ctx, domain.NewBooking{
		Studio:    input.Studio,
		Date:      date,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Name:      input.Name,
		Purpose:   purpose,
		Subject:   input.Subject,
	})
	if err != nil {
		return nil, err
	}

	s.afterChange(ctx, "booking_created", created)
	return created, nil
}

func (s *BookingService) UpdateBooking(ctx context.Context, input UpdateBookingInput) (*domain.Booking, error) {
	if input.ID == "" {
		return nil, domain.MissingField("id")
	}
	// The date window is not re-validated here: the date cannot change
	// during an edit.
	if err := validateFields(input.Name, input.Subject, input.StartTime, input.EndTime); err != nil {
		return nil, err
	}
	purpose, err := normalizePurpose(input.Purpose)
	if err != nil {
		return nil, err
	}
	if err := validateInterval(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, domain.Booking{
		ID:        input.ID,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Name:      input.Name,
		Purpose:   purpose,
		Subject:   input.Subject,
	})
	if err != nil {
		return nil, err
	}

	s.afterChange(ctx, "booking_updated", updated)
	return updated, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.afterChange(ctx, "booking_deleted", target)
	return nil
}

func (s *BookingService) partition(ctx context.Context, studio, date string) ([]domain.Booking, error) {
	if !s.catalog.Contains(studio) {
		return nil, domain.ErrUnknownStudio
	}
	day, err := s.ListDay(ctx, date)
	if err != nil {
		return nil, err
	}

	var partition []domain.Booking
	for _, b := range day {
		if b.Studio == studio {
			partition = append(partition, b)
		}
	}
	return partition, nil
}

// clampToHorizon substitutes today for dates outside the rolling booking
// window [today, today+horizon-1]. Default substitution, not rejection, but
// the silent intent change is worth a warning.
func (s *BookingService) clampToHorizon(date string) string {
	today := s.now().Format(dateLayout)
	max := s.now().AddDate(0, 0, s.horizonDays-1).Format(dateLayout)
	if date >= today && date <= max {
		return date
	}
	log.Warn().Str("date", date).Str("substituted", today).Msg("booking date outside horizon, defaulting to today")
	return today
}

func (s *BookingService) afterChange(ctx context.Context, eventType string, b *domain.Booking) {
	if s.cache != nil {
		if err := s.cache.InvalidateDay(ctx, b.Date); err != nil {
			log.Warn().Err(err).Str("date", b.Date).Msg("failed to invalidate day cache")
		}
	}
	if s.producer != nil && s.topic != "" {
		event := kafka.BookingEvent{
			Type:      eventType,
			BookingID: b.ID,
			Studio:    b.Studio,
			Date:      b.Date,
			At:        s.now(),
		}
		if err := s.producer.Publish(ctx, s.topic, b.ID, event); err != nil {
			log.Warn().Err(err).Str("type", eventType).Str("booking_id", b.ID).Msg("failed to publish booking event")
		}
	}
	if s.broadcaster != nil {
		s.broadcaster.Broadcast()
	}
}

func validateFields(name, subject, start, end string) error {
	switch {
	case name == "":
		return domain.MissingField("name")
	case subject == "":
		return domain.MissingField("subject")
	case start == "":
		return domain.MissingField("start_time")
	case end == "":
		return domain.MissingField("end_time")
	}
	return nil
}

func validateDate(date string) error {
	if date == "" {
		return domain.MissingField("date")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return domain.InvalidField("date", "expected YYYY-MM-DD")
	}
	return nil
}

func validateInterval(start, end string) error {
	startMins, err := timegrid.TimeToMinutes(start)
	if err != nil {
		return domain.InvalidField("start_time", err.Error())
	}
	endMins, err := timegrid.TimeToMinutes(end)
	if err != nil {
		return domain.InvalidField("end_time", err.Error())
	}
	if !timegrid.Aligned(startMins) || !timegrid.Aligned(endMins) {
		return domain.InvalidField("start_time", "times must be aligned to 30 minutes")
	}
	if startMins < timegrid.DayStart || startMins >= timegrid.DayEnd {
		return domain.InvalidField("start_time", fmt.Sprintf("must be within %s-%s", timegrid.MinutesToTime(timegrid.DayStart), timegrid.MinutesToTime(timegrid.DayEnd-timegrid.SlotMinutes)))
	}
	if endMins > timegrid.DayEnd {
		return domain.InvalidField("end_time", "must not pass 24:00")
	}
	if endMins <= startMins {
		return domain.InvalidField("end_time", "must be after start time")
	}
	return nil
}

func normalizePurpose(p domain.RecordingPurpose) (domain.RecordingPurpose, error) {
	if p == "" {
		return domain.RecordingPurposes[0], nil
	}
	if !p.Valid() {
		return "", domain.InvalidField("recording_purpose", fmt.Sprintf("unknown purpose %q", p))
	}
	return p, nil
}

var _ BookingUseCase = (*BookingService)(nil)
