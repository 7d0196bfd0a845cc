package services

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/AdelereKehinde/Estate-management/internal/config"
	"github.com/AdelereKehinde/Estate-management/internal/metrics"
	"github.com/AdelereKehinde/Estate-management/internal/models"
	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

type InvoiceService struct {
	store      repositories.Store
	idempotent bool
}

func NewInvoiceService(cfg *config.Config, store repositories.Store) *InvoiceService {
	return &InvoiceService{
		store:      store,
		idempotent: cfg.LDFlag_IdempotentInvoiceGeneration,
	}
}

// DueDates lists every billing date of a lease: start, then start plus each
// multiple of freq months, up to and including end. Each date is derived
// from start directly, so a clamped month-end never shifts later dates.
func DueDates(start, end models.Date, freq int) []models.Date {
	if freq < 1 {
		return nil
	}
	var out []models.Date
	for offset, due := 0, start; !due.After(end); {
		out = append(out, due)
		// The next offset would overflow AddMonths.
		if offset > math.MaxInt-12-freq {
			break
		}
		offset += freq
		due = utils.AddMonths(start, offset)
	}
	return out
}

// GenerateInvoices writes one pending invoice per due date of the lease and
// returns how many were written. All of them are inserted in a single
// transaction. Unless idempotent generation is enabled, calling it twice
// writes the schedule twice.
func (s *InvoiceService) GenerateInvoices(ctx context.Context, leaseID uuid.UUID) (int, error) {
	var created int
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		lease, err := tx.Leases().GetByID(ctx, leaseID)
		if err != nil {
			return utils.InternalError("Failed to load lease", err)
		}
		if lease == nil {
			return utils.NotFoundError("Lease not found")
		}

		skip := map[models.Date]bool{}
		if s.idempotent {
			existing, err := tx.Invoices().ListDueDatesByLeaseID(ctx, lease.ID)
			if err != nil {
				return utils.InternalError("Failed to load existing invoices", err)
			}
			for _, d := range existing {
				skip[d] = true
			}
		}

		var batch []*models.Invoice
		for _, due := range DueDates(lease.StartDate, lease.EndDate, lease.FrequencyMonths) {
			if skip[due] {
				continue
			}
			batch = append(batch, &models.Invoice{
				ID:      uuid.New(),
				LeaseID: lease.ID,
				DueDate: due,
				Amount:  lease.RentAmount,
				Status:  models.InvoiceStatusPending,
			})
		}
		if err := tx.Invoices().CreateMany(ctx, batch); err != nil {
			return utils.InternalError("Failed to create invoices", err)
		}
		created = len(batch)
		return nil
	})
	if err != nil {
		return 0, asAppError(err, "Failed to generate invoices")
	}

	metrics.InvoicesGeneratedCounter.Add(float64(created))
	utils.Logger.WithFields(logrus.Fields{
		"lease_id": leaseID,
		"created":  created,
	}).Info("Invoices generated")
	return created, nil
}

func (s *InvoiceService) ListInvoices(ctx context.Context, f repositories.InvoiceFilter) ([]*models.Invoice, error) {
	invoices, err := s.store.Invoices().List(ctx, f)
	if err != nil {
		return nil, utils.InternalError("Failed to list invoices", err)
	}
	return invoices, nil
}
