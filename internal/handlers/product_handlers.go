package handlers

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"cozycomfort/internal/common"
	"cozycomfort/internal/services"
)

type ProductHandlers struct {
	productSvc services.ProductService
}

func NewProductHandlers(productSvc services.ProductService) *ProductHandlers {
	return &ProductHandlers{productSvc: productSvc}
}

type CreateProductRequest struct {
	Name         string  `json:"name" validate:"required"`
	Model        string  `json:"model" validate:"required"`
	Material     *string `json:"material"`
	Size         *string `json:"size"`
	Color        *string `json:"color"`
	Price        string  `json:"price" validate:"required"`
	InitialStock int     `json:"initial_stock" validate:"gte=0"`
}

func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, fmt.Errorf("invalid request format: %w", common.ErrValidation))
	}
	if err := c.Validate(&req); err != nil {
		return common.RespondError(c, fmt.Errorf("%v: %w", err, common.ErrValidation))
	}

	// Prices arrive as strings so no float representation ever touches a
	// monetary value.
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return common.RespondError(c, fmt.Errorf("price must be a decimal number: %w", common.ErrValidation))
	}

	productID, err := h.productSvc.CreateProduct(ctx, userID, services.CreateProductInput{
		Name:         req.Name,
		Model:        req.Model,
		Material:     req.Material,
		Size:         req.Size,
		Color:        req.Color,
		Price:        price,
		InitialStock: req.InitialStock,
	})
	if err != nil {
		return common.RespondError(c, err)
	}

	return common.RespondOK(c, fmt.Sprintf("Product %q created!", req.Name), map[string]string{
		"product_id": productID.String(),
	})
}

type UpdateInventoryRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

func (h *ProductHandlers) UpdateInventory(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	var req UpdateInventoryRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, fmt.Errorf("invalid request format: %w", common.ErrValidation))
	}
	if err := c.Validate(&req); err != nil {
		return common.RespondError(c, fmt.Errorf("%v: %w", err, common.ErrValidation))
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return common.RespondError(c, fmt.Errorf("invalid product id: %w", common.ErrValidation))
	}

	if err := h.productSvc.UpdateInventory(ctx, userID, productID, req.Quantity); err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, "Inventory updated successfully.", nil)
}

func (h *ProductHandlers) ListProducts(c echo.Context) error {
	products, err := h.productSvc.ListProducts(c.Request().Context())
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, "", map[string]interface{}{"products": products})
}
