package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/AdelereKehinde/Estate-management/internal/dtos"
	"github.com/AdelereKehinde/Estate-management/internal/models"
	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

type MaintenanceService struct {
	store repositories.Store
}

func NewMaintenanceService(store repositories.Store) *MaintenanceService {
	return &MaintenanceService{store: store}
}

func (s *MaintenanceService) CreateTicket(ctx context.Context, req dtos.CreateTicketRequest) (*models.MaintenanceTicket, error) {
	unit, err := s.store.Units().GetByID(ctx, req.UnitID)
	if err != nil {
		return nil, utils.InternalError("Failed to load unit", err)
	}
	if unit == nil {
		return nil, utils.NotFoundError("Unit not found")
	}

	priority := req.Priority
	if priority == "" {
		priority = models.TicketPriorityMedium
	}
	t := &models.MaintenanceTicket{
		ID:          uuid.New(),
		UnitID:      req.UnitID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		Status:      models.TicketStatusOpen,
	}
	if err := s.store.Tickets().Create(ctx, t); err != nil {
		if errors.Is(err, utils.ErrForeignKeyViolation) {
			return nil, utils.NotFoundError("Unit not found")
		}
		return nil, utils.InternalError("Failed to create ticket", err)
	}
	utils.Logger.WithFields(logrus.Fields{"ticket_id": t.ID, "unit_id": t.UnitID}).Info("Ticket created")
	return t, nil
}

func (s *MaintenanceService) UpdateTicket(ctx context.Context, id uuid.UUID, req dtos.UpdateTicketRequest) (*models.MaintenanceTicket, error) {
	t, err := s.store.Tickets().GetByID(ctx, id)
	if err != nil {
		return nil, utils.InternalError("Failed to load ticket", err)
	}
	if t == nil {
		return nil, utils.NotFoundError("Ticket not found")
	}

	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if err := s.store.Tickets().Update(ctx, t); err != nil {
		return nil, utils.InternalError("Failed to update ticket", err)
	}
	return t, nil
}

func (s *MaintenanceService) ListTickets(ctx context.Context, f repositories.TicketFilter) ([]*models.MaintenanceTicket, error) {
	tickets, err := s.store.Tickets().List(ctx, f)
	if err != nil {
		return nil, utils.InternalError("Failed to list tickets", err)
	}
	return tickets, nil
}
