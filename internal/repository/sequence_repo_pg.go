package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkrivosheev/aeroreserve/internal/domain"
)

// Entity classes with their own number sequence.
const (
	EntityBookings = "bookings"
	EntityFlights  = "flights"
	EntityAircraft = "aircraft"
	EntityRoutes   = "routes"
	EntityCrew     = "crew"
	EntityUsers    = "users"
)

type SequenceAllocator interface {
	Next(ctx context.Context, entity string) (int64, error)
}

type PGSequenceAllocator struct {
	db *pgxpool.Pool
}

func NewSequenceAllocator(db *pgxpool.Pool) SequenceAllocator {
	return &PGSequenceAllocator{db: db}
}

// Next increments and returns the counter for the entity class in a single
// statement. The counter row is created on first use. Two concurrent callers
// can never observe the same value: the upsert serializes on the row lock.
func (r *PGSequenceAllocator) Next(ctx context.Context, entity string) (int64, error) {
	var next int64
	err := r.db.QueryRow(ctx, `INSERT INTO sequence_counters (entity, last_value) VALUES ($1, 1)
		ON CONFLICT (entity) DO UPDATE SET last_value = sequence_counters.last_value + 1
		RETURNING last_value`, entity).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("%w: next %s number: %v", domain.ErrStorageUnavailable, entity, err)
	}
	return next, nil
}

var _ SequenceAllocator = (*PGSequenceAllocator)(nil)
