package flights

import (
	"context"
	"fmt"
	"time"

	"github.com/mkrivosheev/aeroreserve/internal/domain"
	"github.com/mkrivosheev/aeroreserve/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByNumber(ctx context.Context, flightNumber int64) (*domain.Flight, error)
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	Update(ctx context.Context, flight *domain.Flight) error
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type CreateFlightInput struct {
	Airline        string             `json:"airline"`
	AircraftID     int64              `json:"aircraft_id"`
	RouteID        int64              `json:"route_id"`
	Departure      string             `json:"departure"`
	Arrival        string             `json:"arrival"`
	Date           time.Time          `json:"date"`
	Time           string             `json:"time"`
	Duration       string             `json:"duration"`
	AvailableSeats int                `json:"available_seats"`
	FlightType     string             `json:"flight_type"`
	FlightClass    domain.FlightClass `json:"flight_class"`
	Prices         domain.Prices      `json:"prices"`
}

type FlightService struct {
	repo      repository.FlightRepository
	sequences repository.SequenceAllocator
	cache     FlightCache
	cacheTTL  time.Duration
}

func NewFlightService(repo repository.FlightRepository, sequences repository.SequenceAllocator, cache FlightCache, cacheTTL time.Duration) *FlightService {
	return &FlightService{repo: repo, sequences: sequences, cache: cache, cacheTTL: cacheTTL}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByNumber(ctx context.Context, flightNumber int64) (*domain.Flight, error) {
	return s.repo.GetByNumber(ctx, flightNumber)
}

// Create allocates the flight number from the flights sequence before
// inserting, so numbers stay unique under concurrent creation.
func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	if input.Airline == "" {
		return nil, fmt.Errorf("%w: airline is required", domain.ErrValidation)
	}
	if input.AvailableSeats < 0 {
		return nil, fmt.Errorf("%w: available seats must not be negative", domain.ErrValidation)
	}

	number, err := s.sequences.Next(ctx, repository.EntityFlights)
	if err != nil {
		return nil, err
	}

	flight := &domain.Flight{
		FlightNumber:   number,
		Airline:        input.Airline,
		AircraftID:     input.AircraftID,
		RouteID:        input.RouteID,
		Departure:      input.Departure,
		Arrival:        input.Arrival,
		Date:           input.Date,
		Time:           input.Time,
		Duration:       input.Duration,
		AvailableSeats: input.AvailableSeats,
		FlightType:     input.FlightType,
		FlightClass:    input.FlightClass,
		Prices:         input.Prices,
		Status:         domain.FlightStatusScheduled,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return flight, nil
}

func (s *FlightService) Update(ctx context.Context, flight *domain.Flight) error {
	if err := s.repo.Update(ctx, flight); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return nil
}

var _ FlightUseCase = (*FlightService)(nil)
