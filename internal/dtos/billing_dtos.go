package dtos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	InvoiceID uuid.UUID       `json:"invoice_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	TxnRef    string          `json:"txn_ref" validate:"required"`
}
