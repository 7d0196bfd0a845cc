package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/AdelereKehinde/Estate-management/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type userRepo struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (id, email, full_name, password_hash, role, created_at)
		VALUES ($1,$2,$3,$4,$5, NOW())
		RETURNING created_at
	`, u.ID, u.Email, u.FullName, u.PasswordHash, u.Role)
	return translateError(row.Scan(&u.CreatedAt))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, full_name, password_hash, role, created_at
		FROM users WHERE lower(email)=lower($1)
	`, email)
	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
