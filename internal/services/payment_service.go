package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/AdelereKehinde/Estate-management/internal/dtos"
	"github.com/AdelereKehinde/Estate-management/internal/metrics"
	"github.com/AdelereKehinde/Estate-management/internal/models"
	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

type PaymentService struct {
	store repositories.Store
	now   func() time.Time
}

func NewPaymentService(store repositories.Store) *PaymentService {
	return &PaymentService{store: store, now: time.Now}
}

// RecordPayment settles an invoice. The payment must cover the full invoice
// amount; overpayment is accepted. The payment row and the paid status are
// committed together. A txn_ref already used by any payment is rejected
// with a conflict.
func (s *PaymentService) RecordPayment(ctx context.Context, req dtos.RecordPaymentRequest) (*models.Payment, error) {
	payment := &models.Payment{
		ID:        uuid.New(),
		InvoiceID: req.InvoiceID,
		Amount:    req.Amount,
		PaidAt:    s.now().UTC(),
		TxnRef:    req.TxnRef,
	}

	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		inv, err := tx.Invoices().GetByIDForUpdate(ctx, req.InvoiceID)
		if err != nil {
			return utils.InternalError("Failed to load invoice", err)
		}
		if inv == nil {
			return utils.NotFoundError("Invoice not found")
		}
		if req.Amount.LessThan(inv.Amount) {
			metrics.PaymentRejectionsCounter.WithLabelValues("underpayment").Inc()
			return utils.InvalidArgumentError("Amount less than invoice")
		}

		if err := tx.Payments().Create(ctx, payment); err != nil {
			if errors.Is(err, utils.ErrDuplicateKey) {
				metrics.PaymentRejectionsCounter.WithLabelValues("duplicate_txn_ref").Inc()
				return utils.ConflictError("Duplicate transaction reference", err)
			}
			return utils.InternalError("Failed to record payment", err)
		}
		if err := tx.Invoices().UpdateStatus(ctx, inv.ID, models.InvoiceStatusPaid); err != nil {
			return utils.InternalError("Failed to mark invoice paid", err)
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err, "Failed to record payment")
	}

	metrics.PaymentsRecordedCounter.Inc()
	utils.Logger.WithFields(logrus.Fields{
		"payment_id": payment.ID,
		"invoice_id": payment.InvoiceID,
		"txn_ref":    payment.TxnRef,
	}).Info("Payment recorded")
	return payment, nil
}

func (s *PaymentService) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]*models.Payment, error) {
	inv, err := s.store.Invoices().GetByID(ctx, invoiceID)
	if err != nil {
		return nil, utils.InternalError("Failed to load invoice", err)
	}
	if inv == nil {
		return nil, utils.NotFoundError("Invoice not found")
	}
	payments, err := s.store.Payments().ListByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, utils.InternalError("Failed to list payments", err)
	}
	return payments, nil
}
