package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AdelereKehinde/Estate-management/internal/models"
)

/* ───────────── public interface ───────────── */

type UnitRepository interface {
	Create(ctx context.Context, u *models.Unit) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	List(ctx context.Context, f UnitFilter) ([]*models.Unit, error)

	SetOccupied(ctx context.Context, id uuid.UUID, occupied bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type unitRepo struct {
	db DB
}

func NewUnitRepository(db DB) UnitRepository {
	return &unitRepo{db: db}
}

func (r *unitRepo) Create(ctx context.Context, u *models.Unit) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO units (id, property_id, label, bedrooms, occupied, created_at)
		VALUES ($1,$2,$3,$4,$5, NOW())
		RETURNING created_at
	`, u.ID, u.PropertyID, u.Label, u.Bedrooms, u.Occupied)
	return translateError(row.Scan(&u.CreatedAt))
}

func (r *unitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	return r.getOne(ctx, baseSelectUnit()+" WHERE id=$1", id)
}

func (r *unitRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	return r.getOne(ctx, baseSelectUnit()+" WHERE id=$1 FOR UPDATE", id)
}

func (r *unitRepo) getOne(ctx context.Context, sql string, id uuid.UUID) (*models.Unit, error) {
	u, err := scanUnit(r.db.QueryRow(ctx, sql, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *unitRepo) List(ctx context.Context, f UnitFilter) ([]*models.Unit, error) {
	var q queryBuilder
	if f.PropertyID != nil {
		q.add("property_id=?", *f.PropertyID)
	}
	if f.Occupied != nil {
		q.add("occupied=?", *f.Occupied)
	}
	sql := baseSelectUnit() + q.where() + " ORDER BY created_at, id" + q.page(f.ListOptions)
	rows, err := r.db.Query(ctx, sql, q.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanUnit)
}

func (r *unitRepo) SetOccupied(ctx context.Context, id uuid.UUID, occupied bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE units SET occupied=$1 WHERE id=$2`, occupied, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *unitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM units WHERE id=$1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

/* ---------- internals ---------- */

func baseSelectUnit() string {
	return `
		SELECT id, property_id, label, bedrooms, occupied, created_at
		FROM units`
}

func scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	if err := row.Scan(&u.ID, &u.PropertyID, &u.Label, &u.Bedrooms, &u.Occupied, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
