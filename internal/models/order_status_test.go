package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "processing", "shipped", "delivered", "cancelled"} {
		status, err := ParseOrderStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, valid, status.String())
	}

	_, err := ParseOrderStatus("returned")
	assert.Error(t, err)

	_, err = ParseOrderStatus("Pending")
	assert.Error(t, err)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusProcessing, true},
		{StatusProcessing, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},

		// Skipping a step is not allowed.
		{StatusPending, StatusProcessing, false},
		{StatusPending, StatusShipped, false},
		{StatusConfirmed, StatusDelivered, false},

		// Going backwards is not allowed.
		{StatusConfirmed, StatusPending, false},
		{StatusShipped, StatusProcessing, false},

		// Cancellation is reachable from every non-terminal state.
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusShipped, StatusCancelled, true},

		// Terminal states never leave.
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusDelivered, StatusShipped, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusShipped.Terminal())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, TransitionCompareAndSet, KindOf(StatusConfirmed))

	for _, target := range []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.Equal(t, TransitionUnconditional, KindOf(target), "%s", target)
	}
}
