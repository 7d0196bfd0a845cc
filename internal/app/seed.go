package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AdelereKehinde/Estate-management/internal/models"
	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

// Fixed ids and credentials of the test data set.
const (
	SeedAdminEmail    = "admin@amen-estate.test"
	SeedAdminPassword = "ChangeMe123!"

	seedAdminID    = "aaaaaaaa-0000-4000-8000-000000000001"
	seedEstateID   = "aaaaaaaa-0000-4000-8000-000000000002"
	seedPropertyID = "aaaaaaaa-0000-4000-8000-000000000003"
	seedUnitA1ID   = "aaaaaaaa-0000-4000-8000-000000000004"
	seedUnitA2ID   = "aaaaaaaa-0000-4000-8000-000000000005"
	seedTenantID   = "aaaaaaaa-0000-4000-8000-000000000006"
)

// SeedTestData inserts an admin user and a small estate. Rows that already
// exist are left alone, so running it on every start is safe.
func SeedTestData(ctx context.Context, store repositories.Store) error {
	hash, err := utils.HashPassword(SeedAdminPassword)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	steps := []struct {
		what   string
		insert func() error
	}{
		{"admin user", func() error {
			return store.Users().Create(ctx, &models.User{
				ID:           uuid.MustParse(seedAdminID),
				Email:        SeedAdminEmail,
				FullName:     "Seed Admin",
				PasswordHash: hash,
				Role:         models.RoleAdmin,
			})
		}},
		{"estate", func() error {
			return store.Estates().Create(ctx, &models.Estate{
				ID:       uuid.MustParse(seedEstateID),
				Name:     "Amen Estate Phase 1",
				Location: "Lekki-Epe Expressway, Lagos",
			})
		}},
		{"property", func() error {
			return store.Properties().Create(ctx, &models.Property{
				ID:       uuid.MustParse(seedPropertyID),
				EstateID: uuid.MustParse(seedEstateID),
				Code:     "AMN-BLK-A",
				Address:  "Block A, Amen Estate",
			})
		}},
		{"unit A1", func() error {
			return store.Units().Create(ctx, &models.Unit{
				ID:         uuid.MustParse(seedUnitA1ID),
				PropertyID: uuid.MustParse(seedPropertyID),
				Label:      "A1",
				Bedrooms:   3,
			})
		}},
		{"unit A2", func() error {
			return store.Units().Create(ctx, &models.Unit{
				ID:         uuid.MustParse(seedUnitA2ID),
				PropertyID: uuid.MustParse(seedPropertyID),
				Label:      "A2",
				Bedrooms:   2,
			})
		}},
		{"tenant", func() error {
			return store.Tenants().Create(ctx, &models.Tenant{
				ID:       uuid.MustParse(seedTenantID),
				FullName: "Chioma Eze",
				Email:    "chioma.eze@amen-estate.test",
				Phone:    utils.Ptr("+2348012345678"),
			})
		}},
	}

	for _, step := range steps {
		if err := step.insert(); err != nil {
			if errors.Is(err, utils.ErrDuplicateKey) {
				utils.Logger.Debugf("seed %s already present; skipping", step.what)
				continue
			}
			return fmt.Errorf("seed %s: %w", step.what, err)
		}
		utils.Logger.Infof("Seeded %s", step.what)
	}
	return nil
}
