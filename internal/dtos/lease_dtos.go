package dtos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AdelereKehinde/Estate-management/internal/models"
)

// CreateLeaseRequest leaves FrequencyMonths nil to bill yearly.
type CreateLeaseRequest struct {
	UnitID          uuid.UUID       `json:"unit_id" validate:"required"`
	TenantID        uuid.UUID       `json:"tenant_id" validate:"required"`
	StartDate       models.Date     `json:"start_date"`
	EndDate         models.Date     `json:"end_date"`
	RentAmount      decimal.Decimal `json:"rent_amount"`
	FrequencyMonths *int            `json:"frequency_months,omitempty" validate:"omitempty,min=1,max=1200"`
}

type GenerateInvoicesResponse struct {
	Created int `json:"created"`
}
