package dtos

import "github.com/google/uuid"

type CreateEstateRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location" validate:"required"`
}

type CreatePropertyRequest struct {
	EstateID uuid.UUID `json:"estate_id" validate:"required"`
	Code     string    `json:"code" validate:"required"`
	Address  string    `json:"address" validate:"required"`
}

// CreateUnitRequest leaves Bedrooms nil to take the default of 2.
type CreateUnitRequest struct {
	PropertyID uuid.UUID `json:"property_id" validate:"required"`
	Label      string    `json:"label" validate:"required"`
	Bedrooms   *int      `json:"bedrooms,omitempty" validate:"omitempty,min=0"`
}

type CreateTenantRequest struct {
	FullName string  `json:"full_name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone,omitempty"`
}
