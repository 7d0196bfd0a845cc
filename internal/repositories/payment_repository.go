package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AdelereKehinde/Estate-management/internal/models"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error
	ListByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]*models.Payment, error)
}

type paymentRepo struct {
	db DB
}

func NewPaymentRepository(db DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, p *models.Payment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO payments (id, invoice_id, amount, paid_at, txn_ref)
		VALUES ($1,$2,$3,$4,$5)
	`, p.ID, p.InvoiceID, p.Amount, p.PaidAt, p.TxnRef)
	return translateError(err)
}

func (r *paymentRepo) ListByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, invoice_id, amount, paid_at, txn_ref
		FROM payments
		WHERE invoice_id=$1
		ORDER BY paid_at, id
	`, invoiceID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPayment)
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	if err := row.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.PaidAt, &p.TxnRef); err != nil {
		return nil, err
	}
	return &p, nil
}
