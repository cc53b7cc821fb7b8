package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkrivosheev/aeroreserve/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByBooking(ctx context.Context, bookingNumber int64) ([]domain.Payment, error)
}

type PGPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) PaymentRepository {
	return &PGPaymentRepository{db: db}
}

// Payments are insert-only; there is no update path.
func (r *PGPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	return r.db.QueryRow(ctx, `INSERT INTO payments (id, user_id, booking_number, card_type, card_number, card_expiry, cvv, name_on_card, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`,
		payment.ID, payment.UserID, payment.BookingNumber, payment.CardType, payment.CardNumber, payment.CardExpiry, payment.CVV, payment.NameOnCard, payment.Amount, payment.Status).
		Scan(&payment.CreatedAt)
}

func (r *PGPaymentRepository) ListByBooking(ctx context.Context, bookingNumber int64) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, booking_number, card_type, card_number, card_expiry, cvv, name_on_card, amount, status, created_at FROM payments WHERE booking_number=$1 ORDER BY created_at`, bookingNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.BookingNumber, &p.CardType, &p.CardNumber, &p.CardExpiry, &p.CVV, &p.NameOnCard, &p.Amount, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

var _ PaymentRepository = (*PGPaymentRepository)(nil)
