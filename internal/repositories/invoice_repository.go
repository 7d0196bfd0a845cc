package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AdelereKehinde/Estate-management/internal/models"
)

/* ───────────── public interface ───────────── */

type InvoiceRepository interface {
	// CreateMany inserts every invoice or none of them when run inside
	// WithTx.
	CreateMany(ctx context.Context, invoices []*models.Invoice) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	List(ctx context.Context, f InvoiceFilter) ([]*models.Invoice, error)
	ListDueDatesByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]models.Date, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status models.InvoiceStatus) error

	// CountOverdue counts pending invoices due strictly before asOf.
	CountOverdue(ctx context.Context, asOf models.Date) (int, error)
}

/* ───────────── implementation ───────────── */

type invoiceRepo struct {
	db DB
}

func NewInvoiceRepository(db DB) InvoiceRepository {
	return &invoiceRepo{db: db}
}

// CreateMany queues every insert into one pgx batch, so the whole schedule
// costs a single round-trip.
func (r *invoiceRepo) CreateMany(ctx context.Context, invoices []*models.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, inv := range invoices {
		batch.Queue(`
			INSERT INTO invoices (id, lease_id, due_date, amount, status, ref, created_at)
			VALUES ($1,$2,$3,$4,$5,$6, NOW())
			RETURNING created_at
		`, inv.ID, inv.LeaseID, inv.DueDate, inv.Amount, inv.Status, inv.Ref)
	}

	br := r.db.SendBatch(ctx, batch)
	for _, inv := range invoices {
		if err := br.QueryRow().Scan(&inv.CreatedAt); err != nil {
			_ = br.Close()
			return translateError(err)
		}
	}
	return translateError(br.Close())
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	return r.getOne(ctx, baseSelectInvoice()+" WHERE i.id=$1", id)
}

func (r *invoiceRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	return r.getOne(ctx, baseSelectInvoice()+" WHERE i.id=$1 FOR UPDATE", id)
}

func (r *invoiceRepo) getOne(ctx context.Context, sql string, id uuid.UUID) (*models.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRow(ctx, sql, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return inv, err
}

func (r *invoiceRepo) List(ctx context.Context, f InvoiceFilter) ([]*models.Invoice, error) {
	var q queryBuilder
	from := baseSelectInvoice()
	if f.TenantID != nil {
		from += " JOIN leases l ON l.id = i.lease_id"
		q.add("l.tenant_id=?", *f.TenantID)
	}
	if f.Status != nil {
		q.add("i.status=?", *f.Status)
	}
	if f.LeaseID != nil {
		q.add("i.lease_id=?", *f.LeaseID)
	}
	sql := from + q.where() + " ORDER BY i.due_date, i.created_at, i.id" + q.page(f.ListOptions)
	rows, err := r.db.Query(ctx, sql, q.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanInvoice)
}

func (r *invoiceRepo) ListDueDatesByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]models.Date, error) {
	rows, err := r.db.Query(ctx, `SELECT due_date FROM invoices WHERE lease_id=$1 ORDER BY due_date`, leaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Date
	for rows.Next() {
		var d models.Date
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.InvoiceStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE invoices SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *invoiceRepo) CountOverdue(ctx context.Context, asOf models.Date) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM invoices
		WHERE status=$1 AND due_date < $2
	`, models.InvoiceStatusPending, asOf).Scan(&n)
	return n, err
}

/* ---------- internals ---------- */

func baseSelectInvoice() string {
	return `
		SELECT i.id, i.lease_id, i.due_date, i.amount, i.status, i.ref, i.created_at
		FROM invoices i`
}

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(
		&inv.ID,
		&inv.LeaseID,
		&inv.DueDate,
		&inv.Amount,
		&inv.Status,
		&inv.Ref,
		&inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
