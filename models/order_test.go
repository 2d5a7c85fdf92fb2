package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    OrderStatus
		wantErr bool
	}{
		{"pending", OrderStatusPending, false},
		{"approved", OrderStatusApproved, false},
		{"in_transit", OrderStatusInTransit, false},
		{"complete", OrderStatusComplete, false},
		{"cancelled", OrderStatusCancelled, false},
		{"  Pending ", OrderStatusPending, false},
		// legacy synonym normalized at the read boundary
		{"delivering", OrderStatusInTransit, false},
		{"DELIVERING", OrderStatusInTransit, false},
		// anything else is a data-integrity error, never coerced
		{"shipped", "", true},
		{"completed", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseOrderStatus(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextStatus_LinearAdvancement(t *testing.T) {
	next, ok := NextStatus(OrderStatusPending)
	require.True(t, ok)
	assert.Equal(t, OrderStatusApproved, next)

	next, ok = NextStatus(OrderStatusApproved)
	require.True(t, ok)
	assert.Equal(t, OrderStatusInTransit, next)

	next, ok = NextStatus(OrderStatusInTransit)
	require.True(t, ok)
	assert.Equal(t, OrderStatusComplete, next)

	_, ok = NextStatus(OrderStatusComplete)
	assert.False(t, ok)
	_, ok = NextStatus(OrderStatusCancelled)
	assert.False(t, ok)
}

func TestCartTotals(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{ProductID: 1, UnitPrice: 5000, Quantity: 3},
		{ProductID: 2, UnitPrice: 250.50, Quantity: 2},
	}}
	totals := cart.Totals()
	assert.Equal(t, 5, totals.TotalItems)
	assert.Equal(t, 15501.0, totals.TotalPrice)

	empty := Cart{}
	assert.Equal(t, CartTotals{}, empty.Totals())
}
