package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Business and infrastructure failure classes. Workflow code wraps these
// with context via fmt.Errorf("...: %w", Err...) and the HTTP layer maps
// them to an envelope with RespondError.
var (
	ErrUnauthenticated   = errors.New("authentication required")
	ErrUnauthorized      = errors.New("unauthorized for this role")
	ErrNotAssigned       = errors.New("seller is not assigned to a distributor")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation failed")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// InsufficientStockError names the product and both quantities when an
// order fails validation. It matches ErrInsufficientStock under errors.Is.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("out of stock for %q: requested %d, available %d", e.ProductName, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Response is the uniform envelope. Success and failure are distinguished
// by the explicit flag, not by the HTTP status code alone.
type Response struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondOK sends a success envelope with an optional data payload.
func RespondOK(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// RespondError maps a failure onto the envelope. Business failures carry
// their own message; anything unclassified is reported generically so
// infrastructure details never leak to callers.
func RespondError(c echo.Context, err error) error {
	status, code := classify(err)
	message := err.Error()
	if code == "STORE_UNAVAILABLE" {
		c.Logger().Error(err)
		message = "an internal error occurred"
	}
	return c.JSON(status, Response{Success: false, Code: code, Message: message})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, "UNAUTHENTICATED"
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden, "UNAUTHORIZED"
	case errors.Is(err, ErrNotAssigned):
		return http.StatusBadRequest, "NOT_ASSIGNED"
	case errors.Is(err, ErrInsufficientStock):
		return http.StatusBadRequest, "INSUFFICIENT_STOCK"
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, ErrConflict):
		return http.StatusNotFound, "CONFLICT"
	default:
		return http.StatusInternalServerError, "STORE_UNAVAILABLE"
	}
}
