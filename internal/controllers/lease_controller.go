package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/AdelereKehinde/Estate-management/internal/dtos"
	"github.com/AdelereKehinde/Estate-management/internal/middleware"
	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/services"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

type LeaseController struct {
	leaseService   *services.LeaseService
	invoiceService *services.InvoiceService
	validate       *validator.Validate
}

func NewLeaseController(ls *services.LeaseService, is *services.InvoiceService) *LeaseController {
	return &LeaseController{leaseService: ls, invoiceService: is, validate: newValidator()}
}

// POST /leases
func (c *LeaseController) CreateLeaseHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithFields(logrus.Fields{
		"handler": "CreateLeaseHandler",
		"user_id": middleware.UserIDFrom(r.Context()),
		"role":    middleware.RoleFrom(r.Context()),
	})

	var req dtos.CreateLeaseRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	lease, err := c.leaseService.CreateLease(r.Context(), req)
	if err != nil {
		logger.WithError(err).Debug("Lease rejected")
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, lease)
}

// GET /leases/{id}
func (c *LeaseController) GetLeaseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	lease, err := c.leaseService.GetLease(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, lease)
}

// GET /leases?unit_id=&tenant_id=&active=
func (c *LeaseController) ListLeasesHandler(w http.ResponseWriter, r *http.Request) {
	var (
		f   repositories.LeaseFilter
		err error
	)
	if f.ListOptions, err = listOptions(r); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if f.UnitID, err = queryUUID(r, "unit_id"); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if f.TenantID, err = queryUUID(r, "tenant_id"); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if f.Active, err = queryBool(r, "active"); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	leases, err := c.leaseService.ListLeases(r.Context(), f)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, leases)
}

// POST /leases/{id}/generate-invoices
func (c *LeaseController) GenerateInvoicesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	created, err := c.invoiceService.GenerateInvoices(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.GenerateInvoicesResponse{Created: created})
}
