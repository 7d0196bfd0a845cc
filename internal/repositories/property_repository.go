package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AdelereKehinde/Estate-management/internal/models"
)

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	List(ctx context.Context, f PropertyFilter) ([]*models.Property, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type propertyRepo struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO properties (id, estate_id, code, address, created_at)
		VALUES ($1,$2,$3,$4, NOW())
		RETURNING created_at
	`, p.ID, p.EstateID, p.Code, p.Address)
	return translateError(row.Scan(&p.CreatedAt))
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	p, err := scanProperty(r.db.QueryRow(ctx, baseSelectProperty()+" WHERE id=$1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *propertyRepo) List(ctx context.Context, f PropertyFilter) ([]*models.Property, error) {
	var q queryBuilder
	if f.EstateID != nil {
		q.add("estate_id=?", *f.EstateID)
	}
	sql := baseSelectProperty() + q.where() + " ORDER BY created_at, id" + q.page(f.ListOptions)
	rows, err := r.db.Query(ctx, sql, q.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanProperty)
}

func (r *propertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectProperty() string {
	return `SELECT id, estate_id, code, address, created_at FROM properties`
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	if err := row.Scan(&p.ID, &p.EstateID, &p.Code, &p.Address, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
