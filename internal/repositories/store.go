package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/AdelereKehinde/Estate-management/internal/models"
)

// Store is the record store the services run against. Repositories obtained
// from the Store passed into WithTx's callback share one transaction: either
// every write inside fn commits or none does.
type Store interface {
	Users() UserRepository
	Estates() EstateRepository
	Properties() PropertyRepository
	Units() UnitRepository
	Tenants() TenantRepository
	Leases() LeaseRepository
	Invoices() InvoiceRepository
	Payments() PaymentRepository
	Tickets() MaintenanceTicketRepository

	WithTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}

// ListOptions pages a scan. A zero Limit means no limit.
type ListOptions struct {
	Limit  int
	Offset int
}

type PropertyFilter struct {
	EstateID *uuid.UUID
	ListOptions
}

type UnitFilter struct {
	PropertyID *uuid.UUID
	Occupied   *bool
	ListOptions
}

type TenantFilter struct {
	// Query matches full name or email, case-insensitively.
	Query string
	ListOptions
}

type LeaseFilter struct {
	UnitID   *uuid.UUID
	TenantID *uuid.UUID
	Active   *bool
	ListOptions
}

type InvoiceFilter struct {
	Status   *models.InvoiceStatus
	TenantID *uuid.UUID
	LeaseID  *uuid.UUID
	ListOptions
}

type TicketFilter struct {
	UnitID *uuid.UUID
	Status *models.TicketStatus
	ListOptions
}
