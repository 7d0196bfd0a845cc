package dtos

import (
	"github.com/google/uuid"

	"github.com/AdelereKehinde/Estate-management/internal/models"
)

type CreateTicketRequest struct {
	UnitID      uuid.UUID             `json:"unit_id" validate:"required"`
	Title       string                `json:"title" validate:"required"`
	Description string                `json:"description"`
	Priority    models.TicketPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// UpdateTicketRequest changes only the fields that are set.
type UpdateTicketRequest struct {
	Status   *models.TicketStatus   `json:"status,omitempty" validate:"omitempty,oneof=open assigned closed"`
	Priority *models.TicketPriority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
}
