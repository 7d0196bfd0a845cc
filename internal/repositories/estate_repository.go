package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AdelereKehinde/Estate-management/internal/models"
)

type EstateRepository interface {
	Create(ctx context.Context, e *models.Estate) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Estate, error)
	List(ctx context.Context, opts ListOptions) ([]*models.Estate, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type estateRepo struct {
	db DB
}

func NewEstateRepository(db DB) EstateRepository {
	return &estateRepo{db: db}
}

func (r *estateRepo) Create(ctx context.Context, e *models.Estate) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO estates (id, name, location, created_at)
		VALUES ($1,$2,$3, NOW())
		RETURNING created_at
	`, e.ID, e.Name, e.Location)
	return translateError(row.Scan(&e.CreatedAt))
}

func (r *estateRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Estate, error) {
	e, err := scanEstate(r.db.QueryRow(ctx, baseSelectEstate()+" WHERE id=$1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

func (r *estateRepo) List(ctx context.Context, opts ListOptions) ([]*models.Estate, error) {
	var q queryBuilder
	sql := baseSelectEstate() + " ORDER BY created_at, id" + q.page(opts)
	rows, err := r.db.Query(ctx, sql, q.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanEstate)
}

func (r *estateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM estates WHERE id=$1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectEstate() string {
	return `SELECT id, name, location, created_at FROM estates`
}

func scanEstate(row pgx.Row) (*models.Estate, error) {
	var e models.Estate
	if err := row.Scan(&e.ID, &e.Name, &e.Location, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
