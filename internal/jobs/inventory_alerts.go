package jobs

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cozycomfort/internal/models"
	"cozycomfort/internal/repositories"
)

// LowStockChecker periodically scans the ledger for records at or below
// the alert threshold and logs them so operators can restock before
// orders start failing validation.
type LowStockChecker struct {
	inventoryRepo repositories.InventoryRepository
	productRepo   repositories.ProductRepository
	logger        *zap.Logger
	threshold     int
}

type LowStockAlert struct {
	ProductID   uuid.UUID
	ProductName string
	OwnerID     uuid.UUID
	OwnerRole   models.Role
	Quantity    int
	Threshold   int
}

func NewLowStockChecker(inventoryRepo repositories.InventoryRepository, productRepo repositories.ProductRepository, logger *zap.Logger, threshold int) *LowStockChecker {
	if threshold <= 0 {
		threshold = 10
	}
	return &LowStockChecker{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		logger:        logger,
		threshold:     threshold,
	}
}

func (c *LowStockChecker) Check(ctx context.Context) ([]LowStockAlert, error) {
	records, err := c.inventoryRepo.ListBelowThreshold(ctx, c.threshold)
	if err != nil {
		c.logger.Error("low stock scan failed", zap.Error(err))
		return nil, err
	}

	var alerts []LowStockAlert
	for _, record := range records {
		product, err := c.productRepo.GetByID(ctx, record.ProductID)
		if err != nil {
			c.logger.Warn("low stock scan skipping product",
				zap.String("product_id", record.ProductID.String()),
				zap.Error(err))
			continue
		}
		alerts = append(alerts, LowStockAlert{
			ProductID:   record.ProductID,
			ProductName: product.Name,
			OwnerID:     record.OwnerID,
			OwnerRole:   record.OwnerRole,
			Quantity:    record.Quantity,
			Threshold:   c.threshold,
		})
	}
	return alerts, nil
}

func (c *LowStockChecker) Log(alerts []LowStockAlert) {
	if len(alerts) == 0 {
		c.logger.Info("low stock scan found nothing below threshold", zap.Int("threshold", c.threshold))
		return
	}
	for _, alert := range alerts {
		c.logger.Warn("low stock",
			zap.String("product", alert.ProductName),
			zap.String("owner_id", alert.OwnerID.String()),
			zap.String("owner_role", string(alert.OwnerRole)),
			zap.Int("quantity", alert.Quantity),
			zap.Int("threshold", alert.Threshold))
	}
}

// Run performs one scan-and-log cycle. Errors are logged inside Check;
// the scheduler retries on the next tick either way.
func (c *LowStockChecker) Run(ctx context.Context) error {
	alerts, err := c.Check(ctx)
	if err != nil {
		return err
	}
	c.Log(alerts)
	return nil
}
