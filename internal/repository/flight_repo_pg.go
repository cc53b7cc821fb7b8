package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkrivosheev/aeroreserve/internal/domain"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByNumber(ctx context.Context, flightNumber int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	ReserveSeat(ctx context.Context, flightNumber int64) error
	ReleaseSeat(ctx context.Context, flightNumber int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `flight_number, airline, aircraft_id, route_id, departure, arrival, date, time, duration, available_seats, flight_type, flight_class, price_economy, price_business, status, created_at, updated_at`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.FlightNumber, &f.Airline, &f.AircraftID, &f.RouteID, &f.Departure, &f.Arrival, &f.Date, &f.Time, &f.Duration, &f.AvailableSeats, &f.FlightType, &f.FlightClass, &f.Prices.Economy, &f.Prices.Business, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY date, flight_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByNumber(ctx context.Context, flightNumber int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE flight_number=$1`, flightNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFlightNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, airline, aircraft_id, route_id, departure, arrival, date, time, duration, available_seats, flight_type, flight_class, price_economy, price_business, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at`,
		flight.FlightNumber, flight.Airline, flight.AircraftID, flight.RouteID, flight.Departure, flight.Arrival, flight.Date, flight.Time, flight.Duration, flight.AvailableSeats, flight.FlightType, flight.FlightClass, flight.Prices.Economy, flight.Prices.Business, flight.Status).
		Scan(&flight.CreatedAt, &flight.UpdatedAt)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	cmd, err := r.db.Exec(ctx, `UPDATE flights SET airline=$2, aircraft_id=$3, route_id=$4, departure=$5, arrival=$6, date=$7, time=$8, duration=$9, available_seats=$10, flight_type=$11, flight_class=$12, price_economy=$13, price_business=$14, status=$15, updated_at=now()
		WHERE flight_number=$1`,
		flight.FlightNumber, flight.Airline, flight.AircraftID, flight.RouteID, flight.Departure, flight.Arrival, flight.Date, flight.Time, flight.Duration, flight.AvailableSeats, flight.FlightType, flight.FlightClass, flight.Prices.Economy, flight.Prices.Business, flight.Status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

// ReserveSeat checks and decrements the seat counter in one statement, so
// exactly one caller wins the last seat.
func (r *PGFlightRepository) ReserveSeat(ctx context.Context, flightNumber int64) error {
	res, err := r.db.Exec(ctx, `UPDATE flights SET available_seats = available_seats - 1, updated_at = now() WHERE flight_number=$1 AND available_seats > 0`, flightNumber)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNoSeatsAvailable
	}
	return nil
}

func (r *PGFlightRepository) ReleaseSeat(ctx context.Context, flightNumber int64) error {
	res, err := r.db.Exec(ctx, `UPDATE flights SET available_seats = available_seats + 1, updated_at = now() WHERE flight_number=$1`, flightNumber)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
