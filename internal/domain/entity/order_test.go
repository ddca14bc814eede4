package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanAdvanceTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusProcessing, false},
		{OrderStatusShipped, OrderStatusShipped, false},
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusCancelled, OrderStatusShipped, false},
		{OrderStatusProcessing, OrderStatus("lost"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanAdvanceTo(tt.to))
		})
	}
}

func TestOrderStatus_Predecessors(t *testing.T) {
	assert.Equal(t, []OrderStatus{OrderStatusProcessing}, OrderStatusShipped.Predecessors())
	assert.Equal(t, []OrderStatus{OrderStatusProcessing, OrderStatusShipped}, OrderStatusDelivered.Predecessors())
	assert.Equal(t, []OrderStatus{OrderStatusProcessing, OrderStatusShipped}, OrderStatusCancelled.Predecessors())
	assert.Empty(t, OrderStatusProcessing.Predecessors())
}

func TestOrder_LinesTotal(t *testing.T) {
	order := &Order{
		Lines: []OrderLine{
			{ProductID: uuid.New(), Quantity: 2, UnitPriceAtPurchase: decimal.NewFromInt(100)},
			{ProductID: uuid.New(), Quantity: 1, UnitPriceAtPurchase: decimal.NewFromInt(50)},
		},
	}

	assert.True(t, decimal.NewFromInt(250).Equal(order.LinesTotal()))
}

func TestAddress_SingleLine(t *testing.T) {
	addr := Address{Street: " Damrak 1 ", Locality: "Amsterdam", PostalCode: "1012LG", Country: "NL"}
	assert.Equal(t, "Damrak 1, 1012LG Amsterdam, NL", addr.SingleLine())

	assert.Equal(t, "", Address{}.SingleLine())
}
