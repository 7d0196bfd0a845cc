package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/AdelereKehinde/Estate-management/internal/dtos"
	"github.com/AdelereKehinde/Estate-management/internal/metrics"
	"github.com/AdelereKehinde/Estate-management/internal/models"
	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

type LeaseService struct {
	store repositories.Store
}

func NewLeaseService(store repositories.Store) *LeaseService {
	return &LeaseService{store: store}
}

// CreateLease books a unit for a tenant. The unit row is locked for the
// duration of the transaction, so of two concurrent calls on one free unit
// exactly one succeeds. The lease insert and the occupancy flag commit
// together or not at all.
func (s *LeaseService) CreateLease(ctx context.Context, req dtos.CreateLeaseRequest) (*models.Lease, error) {
	freq := models.DefaultFrequencyMonths
	if req.FrequencyMonths != nil {
		freq = *req.FrequencyMonths
	}
	if err := validateLeaseTerms(req, freq); err != nil {
		return nil, err
	}

	lease := &models.Lease{
		ID:              uuid.New(),
		UnitID:          req.UnitID,
		TenantID:        req.TenantID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		RentAmount:      req.RentAmount,
		FrequencyMonths: freq,
		Active:          true,
	}

	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		unit, err := tx.Units().GetByIDForUpdate(ctx, req.UnitID)
		if err != nil {
			return utils.InternalError("Failed to load unit", err)
		}
		if unit == nil {
			return utils.NotFoundError("Unit not found")
		}
		if unit.Occupied {
			return badRequestConflict("Unit already occupied", nil)
		}

		if err := tx.Leases().Create(ctx, lease); err != nil {
			if errors.Is(err, utils.ErrForeignKeyViolation) {
				return utils.NotFoundError("Tenant not found")
			}
			return utils.InternalError("Failed to create lease", err)
		}
		if err := tx.Units().SetOccupied(ctx, unit.ID, true); err != nil {
			return utils.InternalError("Failed to mark unit occupied", err)
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err, "Failed to create lease")
	}

	metrics.LeasesCreatedCounter.Inc()
	utils.Logger.WithFields(logrus.Fields{
		"lease_id":  lease.ID,
		"unit_id":   lease.UnitID,
		"tenant_id": lease.TenantID,
	}).Info("Lease created")
	return lease, nil
}

func validateLeaseTerms(req dtos.CreateLeaseRequest, freq int) error {
	switch {
	case req.StartDate.IsZero() || req.EndDate.IsZero():
		return utils.InvalidArgumentError("start_date and end_date are required")
	case req.EndDate.Before(req.StartDate):
		return utils.InvalidArgumentError("start_date must not be after end_date")
	case !req.RentAmount.IsPositive():
		return utils.InvalidArgumentError("rent_amount must be greater than zero")
	case freq < 1 || freq > models.MaxFrequencyMonths:
		return utils.InvalidArgumentError(fmt.Sprintf("frequency_months must be between 1 and %d", models.MaxFrequencyMonths))
	}
	return nil
}

func (s *LeaseService) GetLease(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	lease, err := s.store.Leases().GetByID(ctx, id)
	if err != nil {
		return nil, utils.InternalError("Failed to load lease", err)
	}
	if lease == nil {
		return nil, utils.NotFoundError("Lease not found")
	}
	return lease, nil
}

func (s *LeaseService) ListLeases(ctx context.Context, f repositories.LeaseFilter) ([]*models.Lease, error) {
	leases, err := s.store.Leases().List(ctx, f)
	if err != nil {
		return nil, utils.InternalError("Failed to list leases", err)
	}
	return leases, nil
}
