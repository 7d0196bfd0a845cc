package models

import (
	"time"

	"github.com/google/uuid"
)

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusAssigned TicketStatus = "assigned"
	TicketStatusClosed   TicketStatus = "closed"
)

type MaintenanceTicket struct {
	ID          uuid.UUID      `json:"id"`
	UnitID      uuid.UUID      `json:"unit_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    TicketPriority `json:"priority"`
	Status      TicketStatus   `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
}
