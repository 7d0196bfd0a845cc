package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/AdelereKehinde/Estate-management/internal/dtos"
	"github.com/AdelereKehinde/Estate-management/internal/models"
	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/services"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

// BillingController serves invoices and payments.
type BillingController struct {
	invoiceService *services.InvoiceService
	paymentService *services.PaymentService
	validate       *validator.Validate
}

func NewBillingController(is *services.InvoiceService, ps *services.PaymentService) *BillingController {
	return &BillingController{invoiceService: is, paymentService: ps, validate: newValidator()}
}

// GET /invoices?status=&tenant_id=&lease_id=
func (c *BillingController) ListInvoicesHandler(w http.ResponseWriter, r *http.Request) {
	var (
		f   repositories.InvoiceFilter
		err error
	)
	if f.ListOptions, err = listOptions(r); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.InvoiceStatus(raw)
		if status != models.InvoiceStatusPending && status != models.InvoiceStatusPaid {
			utils.HandleAppError(w, invalidQuery("status must be one of [pending paid]", nil))
			return
		}
		f.Status = &status
	}
	if f.TenantID, err = queryUUID(r, "tenant_id"); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if f.LeaseID, err = queryUUID(r, "lease_id"); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	invoices, err := c.invoiceService.ListInvoices(r.Context(), f)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, invoices)
}

// POST /payments
func (c *BillingController) RecordPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.RecordPaymentRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	payment, err := c.paymentService.RecordPayment(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payment)
}

// GET /invoices/{id}/payments
func (c *BillingController) ListPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	payments, err := c.paymentService.ListPayments(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payments)
}
