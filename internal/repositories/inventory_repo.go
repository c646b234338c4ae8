package repositories

import (
	"context"

	"github.com/google/uuid"

	"cozycomfort/internal/models"
)

type InventoryRepository interface {
	// Upsert inserts a record or adds to the quantity of an existing one
	// for the same (product, owner, owner_role) key.
	Upsert(ctx context.Context, inventory *models.Inventory) error
	// GetForUpdate reads an owner's record under a row lock that blocks
	// concurrent readers of the same row until the transaction ends.
	GetForUpdate(ctx context.Context, productID, ownerID uuid.UUID, ownerRole models.Role) (*models.Inventory, error)
	// GetManufacturerForUpdate locks the product's manufacturer-owned
	// record, resolving the owner from the role.
	GetManufacturerForUpdate(ctx context.Context, productID uuid.UUID) (*models.Inventory, error)
	// Decrement subtracts quantity from an owner's record.
	Decrement(ctx context.Context, productID, ownerID uuid.UUID, quantity int) error
	// OverwriteQuantity sets an owner's quantity outright (not a delta)
	// and reports how many rows matched.
	OverwriteQuantity(ctx context.Context, productID, ownerID uuid.UUID, quantity int) (int64, error)
	// CombinedStock sums a seller's own and its distributor's stock for
	// one product.
	CombinedStock(ctx context.Context, productID, sellerID, distributorID uuid.UUID) (int, error)
	// ListBelowThreshold returns records at or below the given quantity.
	ListBelowThreshold(ctx context.Context, threshold int) ([]*models.Inventory, error)
}

type inventoryRepo struct {
	db Querier
}

func NewInventoryRepo(db Querier) InventoryRepository {
	return &inventoryRepo{db: db}
}

func (r *inventoryRepo) Upsert(ctx context.Context, inventory *models.Inventory) error {
	query := `
		INSERT INTO inventory (id, product_id, owner_id, owner_role, quantity, last_updated)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (product_id, owner_id, owner_role) DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity, last_updated = NOW()
	`
	_, err := r.db.Exec(ctx, query, inventory.ID, inventory.ProductID, inventory.OwnerID, inventory.OwnerRole, inventory.Quantity)
	return err
}

func (r *inventoryRepo) GetForUpdate(ctx context.Context, productID, ownerID uuid.UUID, ownerRole models.Role) (*models.Inventory, error) {
	inventory := &models.Inventory{}
	query := `
		SELECT id, product_id, owner_id, owner_role, quantity, last_updated
		FROM inventory
		WHERE product_id = $1 AND owner_id = $2 AND owner_role = $3
		FOR UPDATE
	`
	err := r.db.QueryRow(ctx, query, productID, ownerID, ownerRole).Scan(&inventory.ID, &inventory.ProductID, &inventory.OwnerID, &inventory.OwnerRole, &inventory.Quantity, &inventory.LastUpdated)
	if err != nil {
		return nil, err
	}
	return inventory, nil
}

func (r *inventoryRepo) GetManufacturerForUpdate(ctx context.Context, productID uuid.UUID) (*models.Inventory, error) {
	inventory := &models.Inventory{}
	query := `
		SELECT id, product_id, owner_id, owner_role, quantity, last_updated
		FROM inventory
		WHERE product_id = $1 AND owner_role = 'manufacturer'
		FOR UPDATE
	`
	err := r.db.QueryRow(ctx, query, productID).Scan(&inventory.ID, &inventory.ProductID, &inventory.OwnerID, &inventory.OwnerRole, &inventory.Quantity, &inventory.LastUpdated)
	if err != nil {
		return nil, err
	}
	return inventory, nil
}

func (r *inventoryRepo) Decrement(ctx context.Context, productID, ownerID uuid.UUID, quantity int) error {
	query := `
		UPDATE inventory
		SET quantity = quantity - $1, last_updated = NOW()
		WHERE product_id = $2 AND owner_id = $3
	`
	_, err := r.db.Exec(ctx, query, quantity, productID, ownerID)
	return err
}

func (r *inventoryRepo) OverwriteQuantity(ctx context.Context, productID, ownerID uuid.UUID, quantity int) (int64, error) {
	query := `
		UPDATE inventory
		SET quantity = $1, last_updated = NOW()
		WHERE product_id = $2 AND owner_id = $3
	`
	tag, err := r.db.Exec(ctx, query, quantity, productID, ownerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *inventoryRepo) CombinedStock(ctx context.Context, productID, sellerID, distributorID uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM inventory
		WHERE product_id = $1
		  AND ((owner_id = $2 AND owner_role = 'seller') OR (owner_id = $3 AND owner_role = 'distributor'))
	`
	var total int
	err := r.db.QueryRow(ctx, query, productID, sellerID, distributorID).Scan(&total)
	return total, err
}

func (r *inventoryRepo) ListBelowThreshold(ctx context.Context, threshold int) ([]*models.Inventory, error) {
	query := `
		SELECT id, product_id, owner_id, owner_role, quantity, last_updated
		FROM inventory
		WHERE quantity <= $1
		ORDER BY quantity
	`
	rows, err := r.db.Query(ctx, query, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Inventory
	for rows.Next() {
		inventory := &models.Inventory{}
		if err := rows.Scan(&inventory.ID, &inventory.ProductID, &inventory.OwnerID, &inventory.OwnerRole, &inventory.Quantity, &inventory.LastUpdated); err != nil {
			return nil, err
		}
		records = append(records, inventory)
	}
	return records, rows.Err()
}
