package models

import (
	"time"

	"github.com/google/uuid"
)

// Inventory is a quantity counter keyed by (product, owner, owner role).
// The same product can have independent rows for its manufacturer, its
// distributors, and its sellers; a unique constraint enforces at most one
// row per key.
type Inventory struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ProductID   uuid.UUID `json:"product_id" db:"product_id"`
	OwnerID     uuid.UUID `json:"owner_id" db:"owner_id"`
	OwnerRole   Role      `json:"owner_role" db:"owner_role"`
	Quantity    int       `json:"quantity" db:"quantity"`
	LastUpdated time.Time `json:"last_updated" db:"last_updated"`
}
