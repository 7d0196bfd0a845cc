package models

import (
	"time"

	"github.com/google/uuid"
)

// Estate is the top of the containment hierarchy: estate > property > unit.
type Estate struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

type Property struct {
	ID        uuid.UUID `json:"id"`
	EstateID  uuid.UUID `json:"estate_id"`
	Code      string    `json:"code"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}
