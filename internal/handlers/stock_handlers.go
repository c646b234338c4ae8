package handlers

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"cozycomfort/internal/common"
	"cozycomfort/internal/services"
)

// StockHandlers exposes the tier-to-tier ledger transfers: distributors
// replenishing from the manufacturer, sellers replenishing from their
// distributor.
type StockHandlers struct {
	ledgerSvc services.LedgerService
}

func NewStockHandlers(ledgerSvc services.LedgerService) *StockHandlers {
	return &StockHandlers{ledgerSvc: ledgerSvc}
}

type StockOrderRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

func (h *StockHandlers) OrderFromManufacturer(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	req, productID, err := h.bindStockOrder(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	if err := h.ledgerSvc.OrderFromManufacturer(ctx, userID, productID, req.Quantity); err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, fmt.Sprintf("Successfully ordered %d units.", req.Quantity), nil)
}

func (h *StockHandlers) OrderFromDistributor(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	req, productID, err := h.bindStockOrder(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	if err := h.ledgerSvc.OrderFromDistributor(ctx, userID, productID, req.Quantity); err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, fmt.Sprintf("Successfully ordered %d units.", req.Quantity), nil)
}

type AssignSellerRequest struct {
	SellerID string `json:"seller_id" validate:"required,uuid"`
}

// AssignSeller links a seller to the calling distributor.
func (h *StockHandlers) AssignSeller(c echo.Context) error {
	ctx := c.Request().Context()
	distributorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	var req AssignSellerRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, fmt.Errorf("invalid request format: %w", common.ErrValidation))
	}
	if err := c.Validate(&req); err != nil {
		return common.RespondError(c, fmt.Errorf("%v: %w", err, common.ErrValidation))
	}
	sellerID, err := uuid.Parse(req.SellerID)
	if err != nil {
		return common.RespondError(c, fmt.Errorf("invalid seller id: %w", common.ErrValidation))
	}

	if err := h.ledgerSvc.AssignSeller(ctx, distributorID, sellerID); err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, "Seller assigned.", nil)
}

func (h *StockHandlers) bindStockOrder(c echo.Context) (*StockOrderRequest, uuid.UUID, error) {
	var req StockOrderRequest
	if err := c.Bind(&req); err != nil {
		return nil, uuid.Nil, fmt.Errorf("invalid request format: %w", common.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return nil, uuid.Nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("invalid product id: %w", common.ErrValidation)
	}
	return &req, productID, nil
}
