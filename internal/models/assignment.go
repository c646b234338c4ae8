package models

import "github.com/google/uuid"

// DistributorSeller assigns a seller to a distributor. A seller without
// an assignment cannot order stock or place customer orders.
type DistributorSeller struct {
	DistributorID uuid.UUID `json:"distributor_id" db:"distributor_id"`
	SellerID      uuid.UUID `json:"seller_id" db:"seller_id"`
}
