package handlers

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"cozycomfort/internal/common"
	"cozycomfort/internal/models"
	"cozycomfort/internal/services"
)

type OrderHandlers struct {
	orderSvc services.OrderService
}

func NewOrderHandlers(orderSvc services.OrderService) *OrderHandlers {
	return &OrderHandlers{orderSvc: orderSvc}
}

type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price" validate:"required"`
}

type CreateOrderRequest struct {
	CustomerName  string             `json:"customer_name" validate:"required"`
	CustomerEmail string             `json:"customer_email" validate:"omitempty,email"`
	Items         []OrderItemRequest `json:"items" validate:"required,dive"`
}

// CreateOrder places a customer order for the authenticated seller.
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	sellerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, fmt.Errorf("invalid request format: %w", common.ErrValidation))
	}
	if err := c.Validate(&req); err != nil {
		return common.RespondError(c, fmt.Errorf("%v: %w", err, common.ErrValidation))
	}

	items := make([]models.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return common.RespondError(c, fmt.Errorf("invalid product id: %w", common.ErrValidation))
		}
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return common.RespondError(c, fmt.Errorf("invalid item price: %w", common.ErrValidation))
		}
		items = append(items, models.OrderItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: price,
		})
	}

	orderNumber, err := h.orderSvc.CreateOrder(ctx, sellerID, req.CustomerName, req.CustomerEmail, items)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, "Order created successfully.", map[string]string{"order_number": orderNumber})
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderStatus advances an order through its lifecycle. Confirming
// a pending order additionally records which user confirmed it.
func (h *OrderHandlers) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, fmt.Errorf("invalid order id: %w", common.ErrValidation))
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, fmt.Errorf("invalid request format: %w", common.ErrValidation))
	}
	if err := c.Validate(&req); err != nil {
		return common.RespondError(c, fmt.Errorf("%v: %w", err, common.ErrValidation))
	}

	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		return common.RespondError(c, fmt.Errorf("%v: %w", err, common.ErrValidation))
	}

	if err := h.orderSvc.UpdateStatus(ctx, orderID, status, userID); err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, fmt.Sprintf("Order status updated to %s.", status), nil)
}
