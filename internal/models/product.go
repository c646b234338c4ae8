package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	Model          string          `json:"model" db:"model"`
	Material       *string         `json:"material" db:"material"`
	Size           *string         `json:"size" db:"size"`
	Color          *string         `json:"color" db:"color"`
	Price          decimal.Decimal `json:"price" db:"price"`
	ManufacturerID *uuid.UUID      `json:"manufacturer_id" db:"manufacturer_id"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}
