package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewOrder_CalculatesTotal 工厂方法根据明细计算总金额
func TestNewOrder_CalculatesTotal(t *testing.T) {
	items := []OrderItem{
		{BookID: 1, Quantity: 3, Price: 1000}, // 10.00元 x 3
		{BookID: 2, Quantity: 1, Price: 2550}, // 25.50元 x 1
	}

	o := NewOrder("ORD123", 7, "Main St", items)

	assert.Equal(t, int64(5550), o.Total)
	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Equal(t, uint(7), o.UserID)
	assert.Equal(t, "Main St", o.ShippingAddress)
}

// TestOrderItem_Subtotal 明细小计
func TestOrderItem_Subtotal(t *testing.T) {
	item := OrderItem{Quantity: 3, Price: 1000}
	assert.Equal(t, int64(3000), item.Subtotal())
}

// TestOrderStatus_ForwardOnlyChain 状态只允许沿履约链单步推进
func TestOrderStatus_ForwardOnlyChain(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusProcessed, true},
		{OrderStatusProcessed, OrderStatusShipping, true},
		{OrderStatusShipping, OrderStatusDelivered, true},
		// 跳级
		{OrderStatusPending, OrderStatusShipping, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		// 回退
		{OrderStatusProcessed, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusShipping, false},
		// 原地转换
		{OrderStatusPending, OrderStatusPending, false},
		// 终态无后续
		{OrderStatusDelivered, OrderStatusDelivered, false},
	}

	for _, tt := range tests {
		o := &Order{Status: tt.from}
		assert.Equal(t, tt.allowed, o.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

// TestOrder_TransitionTo 合法转换更新状态,非法转换报错且状态不变
func TestOrder_TransitionTo(t *testing.T) {
	o := &Order{Status: OrderStatusPending}

	require.NoError(t, o.TransitionTo(OrderStatusProcessed))
	assert.Equal(t, OrderStatusProcessed, o.Status)

	err := o.TransitionTo(OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	assert.Equal(t, OrderStatusProcessed, o.Status)
}

// TestOrderStatus_Valid 未定义的状态值不合法
func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, OrderStatusShipping.Valid())
	assert.False(t, OrderStatus("CANCELLED").Valid())
	assert.False(t, OrderStatus("").Valid())
}

// TestOrder_IsOwnedBy 订单归属校验
func TestOrder_IsOwnedBy(t *testing.T) {
	o := &Order{UserID: 7}
	assert.True(t, o.IsOwnedBy(7))
	assert.False(t, o.IsOwnedBy(8))
}
