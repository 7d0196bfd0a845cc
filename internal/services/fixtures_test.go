package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/AdelereKehinde/Estate-management/internal/config"
	"github.com/AdelereKehinde/Estate-management/internal/dtos"
	"github.com/AdelereKehinde/Estate-management/internal/models"
	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

type fixture struct {
	store    *repositories.MemoryStore
	estates  *EstateService
	tenants  *TenantService
	leases   *LeaseService
	invoices *InvoiceService
	payments *PaymentService
	tickets  *MaintenanceService
	estate   *models.Estate
	property *models.Property
	unit     *models.Unit
	tenant   *models.Tenant
}

func newFixture(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	f := &fixture{
		store:    store,
		estates:  NewEstateService(store),
		tenants:  NewTenantService(store),
		leases:   NewLeaseService(store),
		invoices: NewInvoiceService(cfg, store),
		payments: NewPaymentService(store),
		tickets:  NewMaintenanceService(store),
	}

	var err error
	f.estate, err = f.estates.CreateEstate(ctx, dtos.CreateEstateRequest{Name: "Amen Phase 1", Location: "Lekki"})
	require.NoError(t, err)
	f.property, err = f.estates.CreateProperty(ctx, dtos.CreatePropertyRequest{EstateID: f.estate.ID, Code: "BLK-A", Address: "1 Amen Way"})
	require.NoError(t, err)
	f.unit, err = f.estates.CreateUnit(ctx, dtos.CreateUnitRequest{PropertyID: f.property.ID, Label: "A1"})
	require.NoError(t, err)
	f.tenant, err = f.tenants.CreateTenant(ctx, dtos.CreateTenantRequest{FullName: "Ada Obi", Email: "ada@example.com"})
	require.NoError(t, err)
	return f
}

func (f *fixture) leaseRequest(start, end models.Date, rent int64, freq int) dtos.CreateLeaseRequest {
	return dtos.CreateLeaseRequest{
		UnitID:          f.unit.ID,
		TenantID:        f.tenant.ID,
		StartDate:       start,
		EndDate:         end,
		RentAmount:      decimal.NewFromInt(rent),
		FrequencyMonths: utils.Ptr(freq),
	}
}

func (f *fixture) addUnit(t *testing.T, label string) *models.Unit {
	t.Helper()
	u, err := f.estates.CreateUnit(context.Background(), dtos.CreateUnitRequest{PropertyID: f.property.ID, Label: label})
	require.NoError(t, err)
	return u
}

func requireAppError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected *utils.AppError, got %T: %v", err, err)
	require.Equal(t, status, appErr.StatusCode)
	require.Equal(t, code, appErr.Code)
}

/* ───────────── failure injection ───────────── */

var errInjected = errors.New("injected failure")

// faultyStore fails selected writes inside transactions.
type faultyStore struct {
	repositories.Store
	failSetOccupied  bool
	failUpdateStatus bool
}

func (f *faultyStore) WithTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	return f.Store.WithTx(ctx, func(tx repositories.Store) error {
		return fn(&faultyStore{Store: tx, failSetOccupied: f.failSetOccupied, failUpdateStatus: f.failUpdateStatus})
	})
}

func (f *faultyStore) Units() repositories.UnitRepository {
	if f.failSetOccupied {
		return faultyUnits{f.Store.Units()}
	}
	return f.Store.Units()
}

func (f *faultyStore) Invoices() repositories.InvoiceRepository {
	if f.failUpdateStatus {
		return faultyInvoices{f.Store.Invoices()}
	}
	return f.Store.Invoices()
}

type faultyUnits struct{ repositories.UnitRepository }

func (faultyUnits) SetOccupied(context.Context, uuid.UUID, bool) error { return errInjected }

type faultyInvoices struct{ repositories.InvoiceRepository }

func (faultyInvoices) UpdateStatus(context.Context, uuid.UUID, models.InvoiceStatus) error {
	return errInjected
}
