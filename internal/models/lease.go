package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultFrequencyMonths = 12
	// MaxFrequencyMonths caps the billing interval at one hundred years.
	MaxFrequencyMonths = 1200
)

// Lease binds one tenant to one unit between StartDate and EndDate
// (inclusive). RentAmount is charged once every FrequencyMonths.
type Lease struct {
	ID              uuid.UUID       `json:"id"`
	UnitID          uuid.UUID       `json:"unit_id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	StartDate       Date            `json:"start_date"`
	EndDate         Date            `json:"end_date"`
	RentAmount      decimal.Decimal `json:"rent_amount"`
	FrequencyMonths int             `json:"frequency_months"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
}
