//go:build integration

package app

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdelereKehinde/Estate-management/internal/config"
	"github.com/AdelereKehinde/Estate-management/internal/constants"
	"github.com/AdelereKehinde/Estate-management/internal/dtos"
	"github.com/AdelereKehinde/Estate-management/internal/models"
	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/services"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

// newPostgresApp connects to DB_URL and applies migrations. Each test works
// on rows with fresh ids so runs do not interfere.
func newPostgresApp(t *testing.T) *App {
	t.Helper()
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		t.Skip("DB_URL not set")
	}
	application, err := NewApp(&config.Config{
		AppName:     "estate-service-integration",
		DBUrl:       dsn,
		StoreDriver: constants.StoreDriverPostgres,
	})
	require.NoError(t, err)
	t.Cleanup(application.Close)
	return application
}

func seedPostgresUnit(t *testing.T, ctx context.Context, s repositories.Store) (*models.Unit, *models.Tenant) {
	t.Helper()
	suffix := uuid.NewString()[:8]
	e := &models.Estate{ID: uuid.New(), Name: "Estate " + suffix, Location: "Lagos"}
	require.NoError(t, s.Estates().Create(ctx, e))
	p := &models.Property{ID: uuid.New(), EstateID: e.ID, Code: "P-" + suffix, Address: "1 Amen Way"}
	require.NoError(t, s.Properties().Create(ctx, p))
	u := &models.Unit{ID: uuid.New(), PropertyID: p.ID, Label: "A1", Bedrooms: 2}
	require.NoError(t, s.Units().Create(ctx, u))
	tn := &models.Tenant{ID: uuid.New(), FullName: "Ada " + suffix, Email: suffix + "@example.com"}
	require.NoError(t, s.Tenants().Create(ctx, tn))
	return u, tn
}

func TestPostgresConstraintTranslation(t *testing.T) {
	ctx := context.Background()
	store := newPostgresApp(t).Store
	u, _ := seedPostgresUnit(t, ctx, store)

	err := store.Units().Create(ctx, &models.Unit{ID: uuid.New(), PropertyID: u.PropertyID, Label: u.Label})
	assert.True(t, errors.Is(err, utils.ErrDuplicateKey), "got %v", err)

	err = store.Units().Create(ctx, &models.Unit{ID: uuid.New(), PropertyID: uuid.New(), Label: "Z9"})
	assert.True(t, errors.Is(err, utils.ErrForeignKeyViolation), "got %v", err)
}

func TestPostgresWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newPostgresApp(t).Store
	u, _ := seedPostgresUnit(t, ctx, store)

	boom := errors.New("boom")
	err := store.WithTx(ctx, func(tx repositories.Store) error {
		require.NoError(t, tx.Units().SetOccupied(ctx, u.ID, true))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Units().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.Occupied)
}

func TestPostgresConcurrentLeasesOnOneUnit(t *testing.T) {
	ctx := context.Background()
	store := newPostgresApp(t).Store
	u, tn := seedPostgresUnit(t, ctx, store)
	leases := services.NewLeaseService(store)

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := leases.CreateLease(ctx, dtos.CreateLeaseRequest{
				UnitID:     u.ID,
				TenantID:   tn.ID,
				StartDate:  models.NewDate(2024, time.January, 1),
				EndDate:    models.NewDate(2024, time.December, 31),
				RentAmount: decimal.NewFromInt(1000),
			})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	n, err := store.Leases().CountByUnitID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPostgresSeedIsRepeatable(t *testing.T) {
	ctx := context.Background()
	store := newPostgresApp(t).Store

	require.NoError(t, SeedTestData(ctx, store))
	require.NoError(t, SeedTestData(ctx, store))

	admin, err := store.Users().GetByEmail(ctx, SeedAdminEmail)
	require.NoError(t, err)
	require.NotNil(t, admin)
}

func TestPostgresInvoiceBatch(t *testing.T) {
	ctx := context.Background()
	store := newPostgresApp(t).Store
	u, tn := seedPostgresUnit(t, ctx, store)

	lease := &models.Lease{
		ID: uuid.New(), UnitID: u.ID, TenantID: tn.ID,
		StartDate: models.NewDate(2024, time.January, 1), EndDate: models.NewDate(2024, time.December, 31),
		RentAmount: decimal.NewFromInt(1000), FrequencyMonths: 1, Active: true,
	}
	require.NoError(t, store.Leases().Create(ctx, lease))

	invoice := func(month time.Month, ref *string) *models.Invoice {
		return &models.Invoice{
			ID: uuid.New(), LeaseID: lease.ID, DueDate: models.NewDate(2024, month, 1),
			Amount: lease.RentAmount, Status: models.InvoiceStatusPending, Ref: ref,
		}
	}

	batch := []*models.Invoice{invoice(time.January, nil), invoice(time.February, nil), invoice(time.March, nil)}
	require.NoError(t, store.Invoices().CreateMany(ctx, batch))
	for _, inv := range batch {
		assert.False(t, inv.CreatedAt.IsZero())
	}

	ref := "REF-" + uuid.NewString()[:8]
	err := store.WithTx(ctx, func(tx repositories.Store) error {
		return tx.Invoices().CreateMany(ctx, []*models.Invoice{invoice(time.April, &ref), invoice(time.May, &ref)})
	})
	assert.True(t, errors.Is(err, utils.ErrDuplicateKey), "got %v", err)

	dates, err := store.Invoices().ListDueDatesByLeaseID(ctx, lease.ID)
	require.NoError(t, err)
	assert.Len(t, dates, 3)
}
