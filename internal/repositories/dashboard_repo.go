package repositories

import (
	"context"

	"github.com/google/uuid"

	"cozycomfort/internal/models"
)

// DashboardRepository holds the role-scoped read aggregations. These are
// plain queries over current store state; nothing here mutates or caches.
type DashboardRepository interface {
	ManufacturerInventory(ctx context.Context, ownerID uuid.UUID) ([]models.ManufacturerStockRow, error)
	AllOrders(ctx context.Context) ([]models.OrderOverviewRow, error)
	DistributorInventory(ctx context.Context, distributorID uuid.UUID) ([]models.DistributorStockRow, error)
	DistributorOrders(ctx context.Context, distributorID uuid.UUID) ([]models.DistributorOrderRow, error)
	SellerCatalog(ctx context.Context, sellerID uuid.UUID) ([]models.SellerCatalogRow, error)
	SellerOrders(ctx context.Context, sellerID uuid.UUID) ([]models.SellerOrderRow, error)
}

type dashboardRepo struct {
	db Querier
}

func NewDashboardRepo(db Querier) DashboardRepository {
	return &dashboardRepo{db: db}
}

func (r *dashboardRepo) ManufacturerInventory(ctx context.Context, ownerID uuid.UUID) ([]models.ManufacturerStockRow, error) {
	query := `
		SELECT i.product_id, p.name, p.model, i.quantity
		FROM inventory i
		JOIN products p ON i.product_id = p.id
		WHERE i.owner_id = $1
		ORDER BY p.name
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.ManufacturerStockRow
	for rows.Next() {
		var row models.ManufacturerStockRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Model, &row.Quantity); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *dashboardRepo) AllOrders(ctx context.Context) ([]models.OrderOverviewRow, error) {
	query := `
		SELECT o.id, o.order_number, u_seller.company_name AS seller, u_dist.company_name AS distributor, o.status, o.created_at
		FROM orders o
		JOIN users u_seller ON o.seller_id = u_seller.id
		LEFT JOIN users u_dist ON o.distributor_id = u_dist.id
		ORDER BY o.created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.OrderOverviewRow
	for rows.Next() {
		var row models.OrderOverviewRow
		if err := rows.Scan(&row.ID, &row.OrderNumber, &row.Seller, &row.Distributor, &row.Status, &row.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *dashboardRepo) DistributorInventory(ctx context.Context, distributorID uuid.UUID) ([]models.DistributorStockRow, error) {
	query := `
		SELECT p.id, p.name, p.model, p.price, COALESCE(i.quantity, 0) AS your_stock,
			(SELECT quantity FROM inventory mi WHERE mi.product_id = p.id AND mi.owner_role = 'manufacturer') AS manufacturer_stock
		FROM products p
		LEFT JOIN inventory i ON p.id = i.product_id AND i.owner_id = $1
		ORDER BY p.name
	`
	rows, err := r.db.Query(ctx, query, distributorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.DistributorStockRow
	for rows.Next() {
		var row models.DistributorStockRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Model, &row.Price, &row.YourStock, &row.ManufacturerStock); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *dashboardRepo) DistributorOrders(ctx context.Context, distributorID uuid.UUID) ([]models.DistributorOrderRow, error) {
	query := `
		SELECT o.id, o.order_number, u_seller.company_name AS seller, o.customer_name, o.status, o.created_at
		FROM orders o
		JOIN users u_seller ON o.seller_id = u_seller.id
		WHERE o.distributor_id = $1
		ORDER BY o.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, distributorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.DistributorOrderRow
	for rows.Next() {
		var row models.DistributorOrderRow
		if err := rows.Scan(&row.ID, &row.OrderNumber, &row.Seller, &row.CustomerName, &row.Status, &row.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *dashboardRepo) SellerCatalog(ctx context.Context, sellerID uuid.UUID) ([]models.SellerCatalogRow, error) {
	query := `
		SELECT p.id, p.name, p.model, p.price,
			COALESCE(si.quantity, 0) AS seller_stock,
			COALESCE(di.quantity, 0) AS distributor_stock
		FROM products p
		LEFT JOIN inventory si ON p.id = si.product_id AND si.owner_id = $1
		LEFT JOIN distributor_sellers ds ON ds.seller_id = $1
		LEFT JOIN inventory di ON p.id = di.product_id AND di.owner_id = ds.distributor_id
		ORDER BY p.name
	`
	rows, err := r.db.Query(ctx, query, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.SellerCatalogRow
	for rows.Next() {
		var row models.SellerCatalogRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Model, &row.Price, &row.SellerStock, &row.DistributorStock); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *dashboardRepo) SellerOrders(ctx context.Context, sellerID uuid.UUID) ([]models.SellerOrderRow, error) {
	query := `
		SELECT o.id, o.order_number, o.seller_id, o.distributor_id, o.customer_name, o.customer_email, o.total_amount, o.status, o.confirmed_by_id, o.created_at, o.updated_at,
			u_confirmer.company_name AS confirmer_name
		FROM orders o
		LEFT JOIN users u_confirmer ON o.confirmed_by_id = u_confirmer.id
		WHERE o.seller_id = $1
		ORDER BY o.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.SellerOrderRow
	for rows.Next() {
		var row models.SellerOrderRow
		if err := rows.Scan(&row.ID, &row.OrderNumber, &row.SellerID, &row.DistributorID, &row.CustomerName, &row.CustomerEmail, &row.TotalAmount, &row.Status, &row.ConfirmedByID, &row.CreatedAt, &row.UpdatedAt, &row.ConfirmerName); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
