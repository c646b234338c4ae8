package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dashboard view rows. These are read-only aggregations; they reflect
// store state at the time of the query and are never cached.

// ManufacturerStockRow is one product of the manufacturer's own inventory.
type ManufacturerStockRow struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Model     string    `json:"model"`
	Quantity  int       `json:"quantity"`
}

// OrderOverviewRow is a system-wide order summary shown to manufacturers.
type OrderOverviewRow struct {
	ID          uuid.UUID   `json:"id"`
	OrderNumber string      `json:"order_number"`
	Seller      string      `json:"seller"`
	Distributor *string     `json:"distributor"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// DistributorStockRow compares a distributor's stock against the
// manufacturer's remaining stock for each catalog product.
type DistributorStockRow struct {
	ProductID         uuid.UUID       `json:"product_id"`
	Name              string          `json:"name"`
	Model             string          `json:"model"`
	Price             decimal.Decimal `json:"price"`
	YourStock         int             `json:"your_stock"`
	ManufacturerStock *int            `json:"manufacturer_stock"`
}

// DistributorOrderRow is an order routed through the distributor.
type DistributorOrderRow struct {
	ID           uuid.UUID   `json:"id"`
	OrderNumber  string      `json:"order_number"`
	Seller       string      `json:"seller"`
	CustomerName string      `json:"customer_name"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

// SellerCatalogRow is the catalog with the seller's own and upstream stock.
type SellerCatalogRow struct {
	ProductID        uuid.UUID       `json:"product_id"`
	Name             string          `json:"name"`
	Model            string          `json:"model"`
	Price            decimal.Decimal `json:"price"`
	SellerStock      int             `json:"seller_stock"`
	DistributorStock int             `json:"distributor_stock"`
}

// SellerOrderRow is one of the seller's own orders, with the identity of
// whoever confirmed it.
type SellerOrderRow struct {
	Order
	ConfirmerName *string `json:"confirmer_name"`
}

type ManufacturerDashboard struct {
	Inventory []ManufacturerStockRow `json:"inventory"`
	Orders    []OrderOverviewRow     `json:"orders"`
}

type DistributorDashboard struct {
	Inventory []DistributorStockRow `json:"inventory"`
	Orders    []DistributorOrderRow `json:"orders"`
}

type SellerDashboard struct {
	Products []SellerCatalogRow `json:"products"`
	Orders   []SellerOrderRow   `json:"orders"`
}
