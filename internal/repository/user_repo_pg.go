package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkrivosheev/aeroreserve/internal/domain"
)

// UserRepository is the read side of the user collection the admin layer
// owns; the booking core only needs existence checks.
type UserRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.User, error)
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) GetByUserID(ctx context.Context, userID int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT user_id, name, username, email FROM users WHERE user_id=$1`, userID)
	var u domain.User
	if err := row.Scan(&u.UserID, &u.Name, &u.Username, &u.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
