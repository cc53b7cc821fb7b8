package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mkrivosheev/aeroreserve/internal/domain"
	"github.com/mkrivosheev/aeroreserve/internal/kafka"
	"github.com/mkrivosheev/aeroreserve/internal/repository"
)

type BookingUseCase interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, bookingNumber int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	Confirm(ctx context.Context, bookingNumber int64) (*domain.Booking, error)
	UpdateSeat(ctx context.Context, bookingNumber int64, seatNumber string) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingNumber int64) (*domain.Booking, error)
	Purge(ctx context.Context, bookingNumber int64) error
	MarkRefunded(ctx context.Context, bookingNumber int64) (*domain.Booking, error)
	ExpirePendingBookings(ctx context.Context) ([]domain.Booking, error)
}

type Cache interface {
	AcquireSeatLock(ctx context.Context, flightNumber int64, seat string, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flightNumber int64, seat string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	UserID       int64  `json:"user_id"`
	FlightNumber int64  `json:"flight_number"`
	SeatNumber   string `json:"seat_number"`
}

type BookingService struct {
	bookings     repository.BookingRepository
	flights      repository.FlightRepository
	users        repository.UserRepository
	sequences    repository.SequenceAllocator
	cache        Cache
	producer     Producer
	bookingTopic string
	holdTTL      time.Duration
}

type BookingServiceOption func(*BookingService)

func WithCache(cache Cache) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

func WithProducer(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	users repository.UserRepository,
	sequences repository.SequenceAllocator,
	holdTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:  bookings,
		flights:   flights,
		users:     users,
		sequences: sequences,
		holdTTL:   holdTTL,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create runs the whole reservation path: user and flight lookups, seat lock,
// booking number allocation, then the transactional seat-decrement + insert.
// The flight snapshot is taken here so later flight edits never change what
// this booking was sold as.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.UserID <= 0 {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	if input.FlightNumber <= 0 {
		return nil, fmt.Errorf("%w: flight number is required", domain.ErrValidation)
	}
	if input.SeatNumber == "" {
		return nil, fmt.Errorf("%w: seat number is required", domain.ErrValidation)
	}

	user, err := s.users.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	flight, err := s.flights.GetByNumber(ctx, input.FlightNumber)
	if err != nil {
		return nil, err
	}

	locked := false
	if s.cache != nil {
		ok, err := s.cache.AcquireSeatLock(ctx, flight.FlightNumber, input.SeatNumber, s.holdTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrSeatLocked
		}
		locked = true
	}

	number, err := s.sequences.Next(ctx, repository.EntityBookings)
	if err != nil {
		if locked {
			_ = s.cache.ReleaseSeatLock(ctx, flight.FlightNumber, input.SeatNumber)
		}
		return nil, err
	}

	snapshot := snapshotFlight(flight)
	booking := &domain.Booking{
		ID:            uuid.NewString(),
		BookingNumber: number,
		UserID:        user.UserID,
		FlightNumber:  flight.FlightNumber,
		SeatNumber:    input.SeatNumber,
		FlightDetails: snapshot,
		PaymentAmount: snapshot.Price,
		ExpiresAt:     time.Now().Add(s.holdTTL),
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		if locked {
			_ = s.cache.ReleaseSeatLock(ctx, flight.FlightNumber, input.SeatNumber)
		}
		return nil, err
	}

	s.publishBooking(ctx, "booking_created", booking)
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, bookingNumber int64) (*domain.Booking, error) {
	return s.bookings.GetByNumber(ctx, bookingNumber)
}

func (s *BookingService) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// Confirm moves a pending booking to confirmed and marks the payment
// completed. Anything other than pending is rejected.
func (s *BookingService) Confirm(ctx context.Context, bookingNumber int64) (*domain.Booking, error) {
	updated, err := s.bookings.Confirm(ctx, bookingNumber)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.ReleaseSeatLock(ctx, updated.FlightNumber, updated.SeatNumber)
	}
	s.publishBooking(ctx, "booking_confirmed", updated)
	return updated, nil
}

func (s *BookingService) UpdateSeat(ctx context.Context, bookingNumber int64, seatNumber string) (*domain.Booking, error) {
	if seatNumber == "" {
		return nil, fmt.Errorf("%w: seat number is required", domain.ErrValidation)
	}
	return s.bookings.UpdateSeat(ctx, bookingNumber, seatNumber)
}

// Cancel releases the reserved seat exactly once: the repository's status
// guard decides a single winner, and only the winner reaches the release.
func (s *BookingService) Cancel(ctx context.Context, bookingNumber int64) (*domain.Booking, error) {
	updated, err := s.bookings.Cancel(ctx, bookingNumber)
	if err != nil {
		return nil, err
	}

	if err := s.flights.ReleaseSeat(ctx, updated.FlightNumber); err != nil {
		return nil, fmt.Errorf("booking %d cancelled, release seat: %w", bookingNumber, err)
	}
	if s.cache != nil {
		_ = s.cache.ReleaseSeatLock(ctx, updated.FlightNumber, updated.SeatNumber)
	}
	s.publishBooking(ctx, "booking_cancelled", updated)
	return updated, nil
}

// Purge removes the booking row after making sure its seat went back to
// inventory. A booking that is already cancelled has released its seat, so
// only the cancel winner triggers a release here.
func (s *BookingService) Purge(ctx context.Context, bookingNumber int64) error {
	_, err := s.Cancel(ctx, bookingNumber)
	if err != nil && !errors.Is(err, domain.ErrInvalidTransition) {
		return err
	}
	return s.bookings.Delete(ctx, bookingNumber)
}

// MarkRefunded flips the payment status completed → refunded. Called by the
// refund workflow in lockstep with Cancel.
func (s *BookingService) MarkRefunded(ctx context.Context, bookingNumber int64) (*domain.Booking, error) {
	return s.bookings.MarkRefunded(ctx, bookingNumber)
}

// ExpirePendingBookings cancels pending bookings past their hold deadline and
// returns each seat to inventory.
func (s *BookingService) ExpirePendingBookings(ctx context.Context) ([]domain.Booking, error) {
	expired, err := s.bookings.ExpirePendingBefore(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	for _, b := range expired {
		if err := s.flights.ReleaseSeat(ctx, b.FlightNumber); err != nil {
			log.Printf("release seat for expired booking %d: %v", b.BookingNumber, err)
		}
		if s.cache != nil {
			_ = s.cache.ReleaseSeatLock(ctx, b.FlightNumber, b.SeatNumber)
		}
		s.publishBooking(ctx, "booking_expired", &b)
	}
	return expired, nil
}

func (s *BookingService) publishBooking(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:          eventType,
		BookingNumber: booking.BookingNumber,
		FlightNumber:  booking.FlightNumber,
		UserID:        booking.UserID,
		SeatNumber:    booking.SeatNumber,
		Status:        string(booking.Status),
		PaymentStatus: string(booking.PaymentStatus),
		ExpiresAt:     booking.ExpiresAt,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, fmt.Sprintf("%d", booking.BookingNumber), event); err != nil {
		log.Printf("publish %s for booking %d: %v", eventType, booking.BookingNumber, err)
	}
}

func snapshotFlight(f *domain.Flight) domain.FlightSnapshot {
	return domain.FlightSnapshot{
		Airline:     f.Airline,
		Departure:   f.Departure,
		Arrival:     f.Arrival,
		AircraftID:  f.AircraftID,
		RouteID:     f.RouteID,
		Date:        f.Date,
		Time:        f.Time,
		Duration:    f.Duration,
		Price:       f.Prices.For(f.FlightClass),
		FlightClass: f.FlightClass,
	}
}

var _ BookingUseCase = (*BookingService)(nil)
