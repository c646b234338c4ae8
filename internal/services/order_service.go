package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/gommon/random"
	"github.com/shopspring/decimal"

	"cozycomfort/internal/common"
	"cozycomfort/internal/models"
	"cozycomfort/internal/repositories"
	"cozycomfort/pkg/database"
)

const uniqueViolation = "23505"

// OrderService drives customer orders: creation with stock apportionment
// across the seller's own and its distributor's inventory, and the status
// lifecycle afterwards.
type OrderService interface {
	// CreateOrder validates every line item against combined stock, then
	// deducts seller-first with the remainder drawn from the distributor,
	// persists the order with its items, and returns the order number.
	// The whole order commits or nothing does.
	CreateOrder(ctx context.Context, sellerID uuid.UUID, customerName, customerEmail string, items []models.OrderItemInput) (string, error)
	// UpdateStatus applies a lifecycle transition. The confirmed edge is
	// compare-and-set on pending and records attribution; all other
	// targets update unconditionally. Zero rows affected surfaces as a
	// conflict, never as silent success.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, target models.OrderStatus, userID uuid.UUID) error
}

type orderService struct {
	db repositories.DB
}

func NewOrderService(db repositories.DB) OrderService {
	return &orderService{db: db}
}

func (s *orderService) CreateOrder(ctx context.Context, sellerID uuid.UUID, customerName, customerEmail string, items []models.OrderItemInput) (string, error) {
	if customerName == "" {
		return "", fmt.Errorf("customer name is required: %w", common.ErrValidation)
	}

	// Non-positive quantities are dropped up front; an order with nothing
	// left must fail before any store access.
	qualifying := make([]models.OrderItemInput, 0, len(items))
	for _, item := range items {
		if item.Quantity > 0 {
			qualifying = append(qualifying, item)
		}
	}
	if len(qualifying) == 0 {
		return "", fmt.Errorf("order has no items with positive quantity: %w", common.ErrValidation)
	}
	for _, item := range qualifying {
		if item.UnitPrice.IsNegative() {
			return "", fmt.Errorf("unit price for product %s must not be negative: %w", item.ProductID, common.ErrValidation)
		}
	}

	// Rows are locked in ascending product-ID order so two orders sharing
	// two products cannot deadlock each other.
	sort.Slice(qualifying, func(i, j int) bool {
		return bytes.Compare(qualifying[i].ProductID[:], qualifying[j].ProductID[:]) < 0
	})

	orderNumber := newOrderNumber()

	err := database.WithinTransaction(ctx, s.db, func(tx pgx.Tx) error {
		assignmentRepo := repositories.NewAssignmentRepo(tx)
		inventoryRepo := repositories.NewInventoryRepo(tx)
		productRepo := repositories.NewProductRepo(tx)
		orderRepo := repositories.NewOrderRepo(tx)

		distributorID, err := assignmentRepo.DistributorFor(ctx, sellerID)
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrNotAssigned
		}
		if err != nil {
			return fmt.Errorf("resolve distributor: %w", err)
		}

		// Validation pass: every item is checked before anything is
		// deducted, so a failure on the last item leaves the earlier ones
		// untouched.
		for _, item := range qualifying {
			product, err := productRepo.GetByID(ctx, item.ProductID)
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("product %s: %w", item.ProductID, common.ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("load product: %w", err)
			}

			available, err := inventoryRepo.CombinedStock(ctx, item.ProductID, sellerID, distributorID)
			if err != nil {
				return fmt.Errorf("check combined stock: %w", err)
			}
			if available < item.Quantity {
				return &common.InsufficientStockError{
					ProductName: product.Name,
					Requested:   item.Quantity,
					Available:   available,
				}
			}
		}

		// Deduction pass: exhaust the seller's own stock before drawing
		// the remainder from the distributor.
		for _, item := range qualifying {
			remaining := item.Quantity

			sellerStock := 0
			sellerInv, err := inventoryRepo.GetForUpdate(ctx, item.ProductID, sellerID, models.RoleSeller)
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("lock seller inventory: %w", err)
			}
			if sellerInv != nil {
				sellerStock = sellerInv.Quantity
			}

			fromSeller := min(remaining, sellerStock)
			if fromSeller > 0 {
				if err := inventoryRepo.Decrement(ctx, item.ProductID, sellerID, fromSeller); err != nil {
					return fmt.Errorf("deduct seller inventory: %w", err)
				}
				remaining -= fromSeller
			}

			if remaining > 0 {
				if _, err := inventoryRepo.GetForUpdate(ctx, item.ProductID, distributorID, models.RoleDistributor); err != nil {
					return fmt.Errorf("lock distributor inventory: %w", err)
				}
				if err := inventoryRepo.Decrement(ctx, item.ProductID, distributorID, remaining); err != nil {
					return fmt.Errorf("deduct distributor inventory: %w", err)
				}
			}
		}

		total := decimal.Zero
		for _, item := range qualifying {
			total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order := &models.Order{
			ID:            uuid.New(),
			OrderNumber:   orderNumber,
			SellerID:      sellerID,
			DistributorID: &distributorID,
			CustomerName:  customerName,
			CustomerEmail: customerEmail,
			TotalAmount:   total,
			Status:        models.StatusPending,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return fmt.Errorf("order number %s already exists: %w", orderNumber, common.ErrConflict)
			}
			return fmt.Errorf("persist order: %w", err)
		}

		for _, item := range qualifying {
			orderItem := &models.OrderItem{
				ID:        uuid.New(),
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			}
			if err := orderRepo.InsertItem(ctx, orderItem); err != nil {
				return fmt.Errorf("persist order item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return orderNumber, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, target models.OrderStatus, userID uuid.UUID) error {
	if _, err := models.ParseOrderStatus(target.String()); err != nil {
		return fmt.Errorf("%v: %w", err, common.ErrValidation)
	}

	orderRepo := repositories.NewOrderRepo(s.db)

	var rows int64
	var err error
	switch models.KindOf(target) {
	case models.TransitionCompareAndSet:
		rows, err = orderRepo.ConfirmPending(ctx, orderID, userID)
	default:
		rows, err = orderRepo.UpdateStatus(ctx, orderID, target)
	}
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("order not found or status cannot be updated: %w", common.ErrConflict)
	}
	return nil
}

// newOrderNumber is timestamp-derived like the order numbers sellers are
// used to, with a short random suffix so two orders in the same second do
// not collide; the unique constraint remains the backstop.
func newOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102150405"), random.String(4, random.Uppercase, random.Numeric))
}
