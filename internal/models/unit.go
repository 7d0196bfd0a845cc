package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit is a lettable space inside a property. Occupied flips to true when a
// lease is created against it; clearing it belongs to whoever ends leases.
type Unit struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	Label      string    `json:"label"`
	Bedrooms   int       `json:"bedrooms"`
	Occupied   bool      `json:"occupied"`
	CreatedAt  time.Time `json:"created_at"`
}
