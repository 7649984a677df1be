package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusConfirmed, OrderStatusShipped, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrder_TransitionTo_StampsTimestamps(t *testing.T) {
	order := Order{Status: OrderStatusPending}
	confirmedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	shippedAt := confirmedAt.Add(time.Hour)
	deliveredAt := shippedAt.Add(24 * time.Hour)

	require.NoError(t, order.TransitionTo(OrderStatusConfirmed, confirmedAt))
	require.NoError(t, order.TransitionTo(OrderStatusShipped, shippedAt))
	require.NoError(t, order.TransitionTo(OrderStatusDelivered, deliveredAt))

	assert.Equal(t, OrderStatusDelivered, order.Status)
	assert.Equal(t, confirmedAt, *order.ConfirmedAt)
	assert.Equal(t, shippedAt, *order.ShippedAt)
	assert.Equal(t, deliveredAt, *order.DeliveredAt)
	assert.Nil(t, order.CancelledAt)
}

func TestOrder_TransitionTo_Rejected(t *testing.T) {
	order := Order{Status: OrderStatusShipped}

	err := order.TransitionTo(OrderStatusCancelled, time.Now())

	assert.Error(t, err)
	assert.Equal(t, OrderStatusShipped, order.Status)
	assert.Nil(t, order.CancelledAt)
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.True(t, OrderStatusDelivered.Terminal())
	assert.False(t, OrderStatusPending.Terminal())
	assert.False(t, OrderStatusShipped.Terminal())
}

func TestPaymentMethod_Valid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentCash, PaymentCard, PaymentPayme, PaymentClick, PaymentUzum} {
		assert.True(t, m.Valid(), m)
	}
	assert.False(t, PaymentMethod("BITCOIN").Valid())
	assert.False(t, PaymentMethod("").Valid())
}

func TestOrder_ItemCount(t *testing.T) {
	order := Order{Items: []OrderItem{{Quantity: 2}, {Quantity: 3}}}

	assert.Equal(t, 5, order.ItemCount())
}
