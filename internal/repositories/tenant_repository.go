package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AdelereKehinde/Estate-management/internal/models"
)

type TenantRepository interface {
	Create(ctx context.Context, t *models.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetByEmail(ctx context.Context, email string) (*models.Tenant, error)
	List(ctx context.Context, f TenantFilter) ([]*models.Tenant, error)
}

type tenantRepo struct {
	db DB
}

func NewTenantRepository(db DB) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) Create(ctx context.Context, t *models.Tenant) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO tenants (id, full_name, email, phone, created_at)
		VALUES ($1,$2,$3,$4, NOW())
		RETURNING created_at
	`, t.ID, t.FullName, t.Email, t.Phone)
	return translateError(row.Scan(&t.CreatedAt))
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return r.getOne(ctx, baseSelectTenant()+" WHERE id=$1", id)
}

func (r *tenantRepo) GetByEmail(ctx context.Context, email string) (*models.Tenant, error) {
	return r.getOne(ctx, baseSelectTenant()+" WHERE lower(email)=lower($1)", email)
}

func (r *tenantRepo) getOne(ctx context.Context, sql string, arg any) (*models.Tenant, error) {
	t, err := scanTenant(r.db.QueryRow(ctx, sql, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return t, err
}

func (r *tenantRepo) List(ctx context.Context, f TenantFilter) ([]*models.Tenant, error) {
	var q queryBuilder
	if f.Query != "" {
		q.add("(full_name ILIKE ? OR email ILIKE ?)", "%"+f.Query+"%")
	}
	sql := baseSelectTenant() + q.where() + " ORDER BY created_at, id" + q.page(f.ListOptions)
	rows, err := r.db.Query(ctx, sql, q.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTenant)
}

func baseSelectTenant() string {
	return `SELECT id, full_name, email, phone, created_at FROM tenants`
}

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	var t models.Tenant
	if err := row.Scan(&t.ID, &t.FullName, &t.Email, &t.Phone, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
