package controllers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/AdelereKehinde/Estate-management/internal/dtos"
	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/services"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

type TenantController struct {
	tenantService *services.TenantService
	validate      *validator.Validate
}

func NewTenantController(s *services.TenantService) *TenantController {
	return &TenantController{tenantService: s, validate: newValidator()}
}

// POST /tenants
func (c *TenantController) CreateTenantHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateTenantRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	tenant, err := c.tenantService.CreateTenant(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}

// GET /tenants?q=
func (c *TenantController) ListTenantsHandler(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	f := repositories.TenantFilter{
		Query:       strings.TrimSpace(r.URL.Query().Get("q")),
		ListOptions: opts,
	}
	tenants, err := c.tenantService.ListTenants(r.Context(), f)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenants)
}
