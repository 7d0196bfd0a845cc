package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AdelereKehinde/Estate-management/internal/models"
)

type LeaseRepository interface {
	Create(ctx context.Context, l *models.Lease) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error)
	List(ctx context.Context, f LeaseFilter) ([]*models.Lease, error)
	CountByUnitID(ctx context.Context, unitID uuid.UUID) (int, error)
}

type leaseRepo struct {
	db DB
}

func NewLeaseRepository(db DB) LeaseRepository {
	return &leaseRepo{db: db}
}

func (r *leaseRepo) Create(ctx context.Context, l *models.Lease) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO leases (
			id, unit_id, tenant_id, start_date, end_date,
			rent_amount, frequency_months, active, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW())
		RETURNING created_at
	`,
		l.ID,
		l.UnitID,
		l.TenantID,
		l.StartDate,
		l.EndDate,
		l.RentAmount,
		l.FrequencyMonths,
		l.Active,
	)
	return translateError(row.Scan(&l.CreatedAt))
}

func (r *leaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	l, err := scanLease(r.db.QueryRow(ctx, baseSelectLease()+" WHERE id=$1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return l, err
}

func (r *leaseRepo) List(ctx context.Context, f LeaseFilter) ([]*models.Lease, error) {
	var q queryBuilder
	if f.UnitID != nil {
		q.add("unit_id=?", *f.UnitID)
	}
	if f.TenantID != nil {
		q.add("tenant_id=?", *f.TenantID)
	}
	if f.Active != nil {
		q.add("active=?", *f.Active)
	}
	sql := baseSelectLease() + q.where() + " ORDER BY created_at, id" + q.page(f.ListOptions)
	rows, err := r.db.Query(ctx, sql, q.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanLease)
}

func (r *leaseRepo) CountByUnitID(ctx context.Context, unitID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM leases WHERE unit_id=$1`, unitID).Scan(&n)
	return n, err
}

func baseSelectLease() string {
	return `
		SELECT
			id, unit_id, tenant_id, start_date, end_date,
			rent_amount, frequency_months, active, created_at
		FROM leases`
}

func scanLease(row pgx.Row) (*models.Lease, error) {
	var l models.Lease
	err := row.Scan(
		&l.ID,
		&l.UnitID,
		&l.TenantID,
		&l.StartDate,
		&l.EndDate,
		&l.RentAmount,
		&l.FrequencyMonths,
		&l.Active,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
