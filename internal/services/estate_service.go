package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/AdelereKehinde/Estate-management/internal/constants"
	"github.com/AdelereKehinde/Estate-management/internal/dtos"
	"github.com/AdelereKehinde/Estate-management/internal/models"
	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

// EstateService manages the estate > property > unit hierarchy.
type EstateService struct {
	store repositories.Store
}

func NewEstateService(store repositories.Store) *EstateService {
	return &EstateService{store: store}
}

/* ───────────── estates ───────────── */

func (s *EstateService) CreateEstate(ctx context.Context, req dtos.CreateEstateRequest) (*models.Estate, error) {
	e := &models.Estate{ID: uuid.New(), Name: req.Name, Location: req.Location}
	if err := s.store.Estates().Create(ctx, e); err != nil {
		if errors.Is(err, utils.ErrDuplicateKey) {
			return nil, utils.ConflictError("Estate name already exists", err)
		}
		return nil, utils.InternalError("Failed to create estate", err)
	}
	utils.Logger.WithField("estate_id", e.ID).Info("Estate created")
	return e, nil
}

func (s *EstateService) ListEstates(ctx context.Context, opts repositories.ListOptions) ([]*models.Estate, error) {
	estates, err := s.store.Estates().List(ctx, opts)
	if err != nil {
		return nil, utils.InternalError("Failed to list estates", err)
	}
	return estates, nil
}

// DeleteEstate removes the estate with all of its properties and units.
// Nothing is deleted if any of those units has a lease.
func (s *EstateService) DeleteEstate(ctx context.Context, id uuid.UUID) error {
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		e, err := tx.Estates().GetByID(ctx, id)
		if err != nil {
			return utils.InternalError("Failed to load estate", err)
		}
		if e == nil {
			return utils.NotFoundError("Estate not found")
		}

		props, err := tx.Properties().List(ctx, repositories.PropertyFilter{EstateID: &id})
		if err != nil {
			return utils.InternalError("Failed to list properties", err)
		}
		for _, p := range props {
			if err := deletePropertyTx(ctx, tx, p.ID); err != nil {
				return err
			}
		}
		if err := tx.Estates().Delete(ctx, id); err != nil {
			return utils.InternalError("Failed to delete estate", err)
		}
		return nil
	})
	if err != nil {
		return asAppError(err, "Failed to delete estate")
	}
	utils.Logger.WithField("estate_id", id).Info("Estate deleted")
	return nil
}

/* ───────────── properties ───────────── */

func (s *EstateService) CreateProperty(ctx context.Context, req dtos.CreatePropertyRequest) (*models.Property, error) {
	estate, err := s.store.Estates().GetByID(ctx, req.EstateID)
	if err != nil {
		return nil, utils.InternalError("Failed to load estate", err)
	}
	if estate == nil {
		return nil, utils.NotFoundError("Estate not found")
	}

	p := &models.Property{ID: uuid.New(), EstateID: req.EstateID, Code: req.Code, Address: req.Address}
	if err := s.store.Properties().Create(ctx, p); err != nil {
		switch {
		case errors.Is(err, utils.ErrDuplicateKey):
			return nil, utils.ConflictError("Property code already exists", err)
		case errors.Is(err, utils.ErrForeignKeyViolation):
			return nil, utils.NotFoundError("Estate not found")
		}
		return nil, utils.InternalError("Failed to create property", err)
	}
	utils.Logger.WithFields(logrus.Fields{"property_id": p.ID, "estate_id": p.EstateID}).Info("Property created")
	return p, nil
}

func (s *EstateService) ListProperties(ctx context.Context, f repositories.PropertyFilter) ([]*models.Property, error) {
	props, err := s.store.Properties().List(ctx, f)
	if err != nil {
		return nil, utils.InternalError("Failed to list properties", err)
	}
	return props, nil
}

// DeleteProperty removes the property and its units.
func (s *EstateService) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		p, err := tx.Properties().GetByID(ctx, id)
		if err != nil {
			return utils.InternalError("Failed to load property", err)
		}
		if p == nil {
			return utils.NotFoundError("Property not found")
		}
		return deletePropertyTx(ctx, tx, id)
	})
	if err != nil {
		return asAppError(err, "Failed to delete property")
	}
	utils.Logger.WithField("property_id", id).Info("Property deleted")
	return nil
}

func deletePropertyTx(ctx context.Context, tx repositories.Store, id uuid.UUID) error {
	units, err := tx.Units().List(ctx, repositories.UnitFilter{PropertyID: &id})
	if err != nil {
		return utils.InternalError("Failed to list units", err)
	}
	for _, u := range units {
		if err := deleteUnitTx(ctx, tx, u.ID); err != nil {
			return err
		}
	}
	if err := tx.Properties().Delete(ctx, id); err != nil {
		return utils.InternalError("Failed to delete property", err)
	}
	return nil
}

/* ───────────── units ───────────── */

func (s *EstateService) CreateUnit(ctx context.Context, req dtos.CreateUnitRequest) (*models.Unit, error) {
	prop, err := s.store.Properties().GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, utils.InternalError("Failed to load property", err)
	}
	if prop == nil {
		return nil, utils.NotFoundError("Property not found")
	}

	bedrooms := constants.DefaultBedrooms
	if req.Bedrooms != nil {
		bedrooms = *req.Bedrooms
	}
	u := &models.Unit{ID: uuid.New(), PropertyID: req.PropertyID, Label: req.Label, Bedrooms: bedrooms}
	if err := s.store.Units().Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, utils.ErrDuplicateKey):
			return nil, utils.ConflictError("Unit label already exists in property", err)
		case errors.Is(err, utils.ErrForeignKeyViolation):
			return nil, utils.NotFoundError("Property not found")
		}
		return nil, utils.InternalError("Failed to create unit", err)
	}
	utils.Logger.WithFields(logrus.Fields{"unit_id": u.ID, "property_id": u.PropertyID}).Info("Unit created")
	return u, nil
}

// ListUnits pages with a default of 50 and a ceiling of 200 rows.
func (s *EstateService) ListUnits(ctx context.Context, f repositories.UnitFilter) ([]*models.Unit, error) {
	f.ListOptions = clampPage(f.ListOptions, constants.DefaultPageLimit, constants.MaxPageLimit)
	units, err := s.store.Units().List(ctx, f)
	if err != nil {
		return nil, utils.InternalError("Failed to list units", err)
	}
	return units, nil
}

// DeleteUnit removes a unit that has never hosted a lease, together with
// its maintenance tickets.
func (s *EstateService) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		u, err := tx.Units().GetByID(ctx, id)
		if err != nil {
			return utils.InternalError("Failed to load unit", err)
		}
		if u == nil {
			return utils.NotFoundError("Unit not found")
		}
		return deleteUnitTx(ctx, tx, id)
	})
	if err != nil {
		return asAppError(err, "Failed to delete unit")
	}
	utils.Logger.WithField("unit_id", id).Info("Unit deleted")
	return nil
}

func deleteUnitTx(ctx context.Context, tx repositories.Store, id uuid.UUID) error {
	n, err := tx.Leases().CountByUnitID(ctx, id)
	if err != nil {
		return utils.InternalError("Failed to count leases", err)
	}
	if n > 0 {
		return utils.ConflictError("Unit has leases and cannot be deleted", nil)
	}
	if err := tx.Tickets().DeleteByUnitID(ctx, id); err != nil {
		return utils.InternalError("Failed to delete unit tickets", err)
	}
	if err := tx.Units().Delete(ctx, id); err != nil {
		return utils.InternalError("Failed to delete unit", err)
	}
	return nil
}
