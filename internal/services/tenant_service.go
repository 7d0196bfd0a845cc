package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AdelereKehinde/Estate-management/internal/dtos"
	"github.com/AdelereKehinde/Estate-management/internal/models"
	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

type TenantService struct {
	store repositories.Store
}

func NewTenantService(store repositories.Store) *TenantService {
	return &TenantService{store: store}
}

func (s *TenantService) CreateTenant(ctx context.Context, req dtos.CreateTenantRequest) (*models.Tenant, error) {
	existing, err := s.store.Tenants().GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.InternalError("Failed to check tenant email", err)
	}
	if existing != nil {
		return nil, badRequestConflict("Tenant email already exists", nil)
	}

	t := &models.Tenant{ID: uuid.New(), FullName: req.FullName, Email: req.Email, Phone: req.Phone}
	if err := s.store.Tenants().Create(ctx, t); err != nil {
		if errors.Is(err, utils.ErrDuplicateKey) {
			return nil, badRequestConflict("Tenant email already exists", err)
		}
		return nil, utils.InternalError("Failed to create tenant", err)
	}
	utils.Logger.WithField("tenant_id", t.ID).Info("Tenant created")
	return t, nil
}

// ListTenants matches f.Query against name or email, ignoring case.
func (s *TenantService) ListTenants(ctx context.Context, f repositories.TenantFilter) ([]*models.Tenant, error) {
	tenants, err := s.store.Tenants().List(ctx, f)
	if err != nil {
		return nil, utils.InternalError("Failed to list tenants", err)
	}
	return tenants, nil
}
