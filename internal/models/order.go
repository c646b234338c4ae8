package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus validates a status string against the closed set.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

func (s OrderStatus) String() string { return string(s) }

// Terminal reports whether no further transitions leave this state.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// statusTransitions is the forward lifecycle; cancelled is additionally
// reachable from every non-terminal state.
var statusTransitions = map[OrderStatus]OrderStatus{
	StatusPending:    StatusConfirmed,
	StatusConfirmed:  StatusProcessing,
	StatusProcessing: StatusShipped,
	StatusShipped:    StatusDelivered,
}

// CanTransition reports whether the lifecycle permits moving from one
// state to another.
func CanTransition(from, to OrderStatus) bool {
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return statusTransitions[from] == to
}

// TransitionKind distinguishes the compare-and-set confirmed edge from
// the unconditional edges.
type TransitionKind int

const (
	// TransitionUnconditional updates the row by id regardless of its
	// current status.
	TransitionUnconditional TransitionKind = iota
	// TransitionCompareAndSet only succeeds while the row is still
	// pending; of two racing confirmers exactly one wins.
	TransitionCompareAndSet
)

// KindOf returns how a transition targeting the given state is applied.
// Only the confirmed edge is conditional; it also records attribution.
func KindOf(target OrderStatus) TransitionKind {
	if target == StatusConfirmed {
		return TransitionCompareAndSet
	}
	return TransitionUnconditional
}

type Order struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	OrderNumber   string          `json:"order_number" db:"order_number"`
	SellerID      uuid.UUID       `json:"seller_id" db:"seller_id"`
	DistributorID *uuid.UUID      `json:"distributor_id" db:"distributor_id"`
	CustomerName  string          `json:"customer_name" db:"customer_name"`
	CustomerEmail string          `json:"customer_email" db:"customer_email"`
	TotalAmount   decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status        OrderStatus     `json:"status" db:"status"`
	ConfirmedByID *uuid.UUID      `json:"confirmed_by_id" db:"confirmed_by_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// OrderItemInput is a requested line item at order-creation time. The
// unit price is captured here and denormalized onto the persisted item,
// so later catalog price changes do not affect past orders.
type OrderItemInput struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
}
