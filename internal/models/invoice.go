package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	// InvoiceStatusOverdue is never stored; reports derive it from the due
	// date of pending invoices.
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// Invoice is one billing period of a lease. Amount is copied from the lease
// when the invoice is generated and never recomputed.
type Invoice struct {
	ID        uuid.UUID       `json:"id"`
	LeaseID   uuid.UUID       `json:"lease_id"`
	DueDate   Date            `json:"due_date"`
	Amount    decimal.Decimal `json:"amount"`
	Status    InvoiceStatus   `json:"status"`
	Ref       *string         `json:"ref"`
	CreatedAt time.Time       `json:"created_at"`
}

// Payment settles one invoice. TxnRef is supplied by the payer and is
// unique across all payments.
type Payment struct {
	ID        uuid.UUID       `json:"id"`
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paid_at"`
	TxnRef    string          `json:"txn_ref"`
}
