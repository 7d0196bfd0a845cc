package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/AdelereKehinde/Estate-management/internal/dtos"
	"github.com/AdelereKehinde/Estate-management/internal/models"
	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/services"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

type MaintenanceController struct {
	maintenanceService *services.MaintenanceService
	validate           *validator.Validate
}

func NewMaintenanceController(s *services.MaintenanceService) *MaintenanceController {
	return &MaintenanceController{maintenanceService: s, validate: newValidator()}
}

// POST /maintenance/tickets
func (c *MaintenanceController) CreateTicketHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateTicketRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	ticket, err := c.maintenanceService.CreateTicket(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ticket)
}

// PATCH /maintenance/tickets/{id}
//
// Fields come from the JSON body; status and priority query parameters are
// honoured for clients that send no body.
func (c *MaintenanceController) UpdateTicketHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	q := r.URL.Query()
	if req.Status == nil && q.Get("status") != "" {
		status := models.TicketStatus(q.Get("status"))
		req.Status = &status
	}
	if req.Priority == nil && q.Get("priority") != "" {
		priority := models.TicketPriority(q.Get("priority"))
		req.Priority = &priority
	}
	if !validateStruct(w, c.validate, &req) {
		return
	}

	ticket, err := c.maintenanceService.UpdateTicket(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ticket)
}

// GET /maintenance/tickets?unit_id=&status=
func (c *MaintenanceController) ListTicketsHandler(w http.ResponseWriter, r *http.Request) {
	var (
		f   repositories.TicketFilter
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
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.TicketStatus(raw)
		switch status {
		case models.TicketStatusOpen, models.TicketStatusAssigned, models.TicketStatusClosed:
			f.Status = &status
		default:
			utils.HandleAppError(w, invalidQuery("status must be one of [open assigned closed]", nil))
			return
		}
	}
	tickets, err := c.maintenanceService.ListTickets(r.Context(), f)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tickets)
}
