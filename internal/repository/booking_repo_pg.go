package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkrivosheev/aeroreserve/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByNumber(ctx context.Context, bookingNumber int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	Confirm(ctx context.Context, bookingNumber int64) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingNumber int64) (*domain.Booking, error)
	UpdateSeat(ctx context.Context, bookingNumber int64, seatNumber string) (*domain.Booking, error)
	MarkRefunded(ctx context.Context, bookingNumber int64) (*domain.Booking, error)
	Delete(ctx context.Context, bookingNumber int64) error
	ExpirePendingBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, booking_number, user_id, flight_number, seat_number, flight_details, booking_status, flight_status, payment_status, payment_amount, expires_at, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var details []byte
	if err := row.Scan(&b.ID, &b.BookingNumber, &b.UserID, &b.FlightNumber, &b.SeatNumber, &details, &b.Status, &b.FlightStatus, &b.PaymentStatus, &b.PaymentAmount, &b.ExpiresAt, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(details, &b.FlightDetails); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create decrements the flight's seat counter and inserts the booking row in
// one transaction. Either both happen or neither does, so a failed insert can
// never strand a reserved seat.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - 1, updated_at = now() WHERE flight_number=$1 AND available_seats > 0`, booking.FlightNumber)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNoSeatsAvailable
	}

	details, err := json.Marshal(booking.FlightDetails)
	if err != nil {
		return err
	}

	booking.Status = domain.BookingStatusPending
	booking.FlightStatus = domain.BookingFlightScheduled
	booking.PaymentStatus = domain.PaymentStatusPending
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (id, booking_number, user_id, flight_number, seat_number, flight_details, booking_status, flight_status, payment_status, payment_amount, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`,
		booking.ID, booking.BookingNumber, booking.UserID, booking.FlightNumber, booking.SeatNumber, details, booking.Status, booking.FlightStatus, booking.PaymentStatus, booking.PaymentAmount, booking.ExpiresAt).
		Scan(&booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetByNumber(ctx context.Context, bookingNumber int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE booking_number=$1`, bookingNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY booking_number`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// Confirm moves pending → confirmed/completed. The status guard in the WHERE
// clause makes the transition settle exactly once under concurrent calls.
func (r *PGBookingRepository) Confirm(ctx context.Context, bookingNumber int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET booking_status=$2, payment_status=$3, updated_at=now()
		WHERE booking_number=$1 AND booking_status=$4
		RETURNING `+bookingColumns,
		bookingNumber, domain.BookingStatusConfirmed, domain.PaymentStatusCompleted, domain.BookingStatusPending))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.transitionError(ctx, bookingNumber)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Cancel moves any non-cancelled booking to cancelled. Callers release the
// seat only when the returned error is nil, which is what keeps double-cancel
// from releasing twice.
func (r *PGBookingRepository) Cancel(ctx context.Context, bookingNumber int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET booking_status=$2, updated_at=now()
		WHERE booking_number=$1 AND booking_status <> $2
		RETURNING `+bookingColumns,
		bookingNumber, domain.BookingStatusCancelled))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.transitionError(ctx, bookingNumber)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) UpdateSeat(ctx context.Context, bookingNumber int64, seatNumber string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET seat_number=$2, updated_at=now()
		WHERE booking_number=$1 AND booking_status <> $3
		RETURNING `+bookingColumns,
		bookingNumber, seatNumber, domain.BookingStatusCancelled))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.transitionError(ctx, bookingNumber)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// MarkRefunded moves payment_status completed → refunded, in lockstep with
// the refund workflow's booking cancellation.
func (r *PGBookingRepository) MarkRefunded(ctx context.Context, bookingNumber int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET payment_status=$2, updated_at=now()
		WHERE booking_number=$1 AND payment_status=$3
		RETURNING `+bookingColumns,
		bookingNumber, domain.PaymentStatusRefunded, domain.PaymentStatusCompleted))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.transitionError(ctx, bookingNumber)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) Delete(ctx context.Context, bookingNumber int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE booking_number=$1`, bookingNumber)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *PGBookingRepository) ExpirePendingBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `UPDATE bookings SET booking_status=$1, updated_at=now()
		WHERE booking_status=$2 AND expires_at <= $3
		RETURNING `+bookingColumns,
		domain.BookingStatusCancelled, domain.BookingStatusPending, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expired []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		expired = append(expired, *b)
	}
	return expired, rows.Err()
}

// transitionError tells a missing booking apart from one whose status guard
// rejected the update.
func (r *PGBookingRepository) transitionError(ctx context.Context, bookingNumber int64) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE booking_number=$1)`, bookingNumber).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return domain.ErrInvalidTransition
	}
	return domain.ErrBookingNotFound
}

var _ BookingRepository = (*PGBookingRepository)(nil)
