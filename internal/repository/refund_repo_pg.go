package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkrivosheev/aeroreserve/internal/domain"
)

type RefundRepository interface {
	Create(ctx context.Context, refund *domain.Refund) error
	GetByID(ctx context.Context, id string) (*domain.Refund, error)
	List(ctx context.Context) ([]domain.Refund, error)
	UpdateStatus(ctx context.Context, id string, status domain.RefundStatus) (*domain.Refund, error)
	Delete(ctx context.Context, id string) error
}

type PGRefundRepository struct {
	db *pgxpool.Pool
}

func NewRefundRepository(db *pgxpool.Pool) RefundRepository {
	return &PGRefundRepository{db: db}
}

const refundColumns = `id, user_id, booking_number, refunded_amount, refund_method, reason, comment, refund_status, created_at, updated_at`

func scanRefund(row pgx.Row) (*domain.Refund, error) {
	var rf domain.Refund
	if err := row.Scan(&rf.ID, &rf.UserID, &rf.BookingNumber, &rf.RefundedAmount, &rf.RefundMethod, &rf.Reason, &rf.Comment, &rf.Status, &rf.CreatedAt, &rf.UpdatedAt); err != nil {
		return nil, err
	}
	return &rf, nil
}

func (r *PGRefundRepository) Create(ctx context.Context, refund *domain.Refund) error {
	return r.db.QueryRow(ctx, `INSERT INTO refunds (id, user_id, booking_number, refunded_amount, refund_method, reason, comment, refund_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		refund.ID, refund.UserID, refund.BookingNumber, refund.RefundedAmount, refund.RefundMethod, refund.Reason, refund.Comment, refund.Status).
		Scan(&refund.CreatedAt, &refund.UpdatedAt)
}

func (r *PGRefundRepository) GetByID(ctx context.Context, id string) (*domain.Refund, error) {
	rf, err := scanRefund(r.db.QueryRow(ctx, `SELECT `+refundColumns+` FROM refunds WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRefundNotFound
	}
	if err != nil {
		return nil, err
	}
	return rf, nil
}

func (r *PGRefundRepository) List(ctx context.Context) ([]domain.Refund, error) {
	rows, err := r.db.Query(ctx, `SELECT `+refundColumns+` FROM refunds ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refunds := make([]domain.Refund, 0)
	for rows.Next() {
		rf, err := scanRefund(rows)
		if err != nil {
			return nil, err
		}
		refunds = append(refunds, *rf)
	}
	return refunds, rows.Err()
}

// UpdateStatus refuses to move a refund off Processed: a processed refund has
// already cascaded into the booking and must stay terminal.
func (r *PGRefundRepository) UpdateStatus(ctx context.Context, id string, status domain.RefundStatus) (*domain.Refund, error) {
	rf, err := scanRefund(r.db.QueryRow(ctx, `UPDATE refunds SET refund_status=$2, updated_at=now()
		WHERE id=$1 AND refund_status <> $3
		RETURNING `+refundColumns,
		id, status, domain.RefundStatusProcessed))
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM refunds WHERE id=$1)`, id).Scan(&exists); err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrInvalidTransition
		}
		return nil, domain.ErrRefundNotFound
	}
	if err != nil {
		return nil, err
	}
	return rf, nil
}

func (r *PGRefundRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM refunds WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrRefundNotFound
	}
	return nil
}

var _ RefundRepository = (*PGRefundRepository)(nil)
