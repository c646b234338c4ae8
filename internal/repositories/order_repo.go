package repositories

import (
	"context"

	"github.com/google/uuid"

	"cozycomfort/internal/models"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	InsertItem(ctx context.Context, item *models.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// UpdateStatus applies an unconditional transition and reports how
	// many rows matched.
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (int64, error)
	// ConfirmPending applies the compare-and-set pending→confirmed
	// transition, recording who confirmed. Rowcount 0 means the order is
	// missing or no longer pending.
	ConfirmPending(ctx context.Context, id, confirmedBy uuid.UUID) (int64, error)
}

type orderRepo struct {
	db Querier
}

func NewOrderRepo(db Querier) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, order_number, seller_id, distributor_id, customer_name, customer_email, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, order.ID, order.OrderNumber, order.SellerID, order.DistributorID, order.CustomerName, order.CustomerEmail, order.TotalAmount, order.Status)
	return err
}

func (r *orderRepo) InsertItem(ctx context.Context, item *models.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice)
	return err
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, order_number, seller_id, distributor_id, customer_name, customer_email, total_amount, status, confirmed_by_id, created_at, updated_at
		FROM orders
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&order.ID, &order.OrderNumber, &order.SellerID, &order.DistributorID, &order.CustomerName, &order.CustomerEmail, &order.TotalAmount, &order.Status, &order.ConfirmedByID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (int64, error) {
	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *orderRepo) ConfirmPending(ctx context.Context, id, confirmedBy uuid.UUID) (int64, error) {
	query := `
		UPDATE orders
		SET status = 'confirmed', confirmed_by_id = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'pending'
	`
	tag, err := r.db.Exec(ctx, query, confirmedBy, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
