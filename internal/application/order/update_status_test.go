package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/order"
)

// seedOrder 在仓储中种一个指定状态的订单
func seedOrder(t *testing.T, repo *fakeOrderRepository, status order.OrderStatus) *order.Order {
	t.Helper()
	o := order.NewOrder(order.GenerateOrderNo(), 7, "Main St", []order.OrderItem{
		{BookID: 1, BookTitle: "Go语言实战", BookISBN: "111", Quantity: 1, Price: 1000},
	})
	require.NoError(t, repo.Create(context.Background(), o))
	o.Status = status
	return o
}

// TestUpdateStatus_ForwardChain 状态沿履约链逐步推进
func TestUpdateStatus_ForwardChain(t *testing.T) {
	orderRepo := newFakeOrderRepository()
	o := seedOrder(t, orderRepo, order.OrderStatusPending)
	publisher := &fakePublisher{}
	uc := NewUpdateStatusUseCase(orderRepo, publisher)

	for _, target := range []string{"PROCESSED", "SHIPPING", "DELIVERED"} {
		view, err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: o.ID, Status: target})
		require.NoError(t, err)
		assert.Equal(t, target, view.Status)
	}

	assert.Len(t, publisher.events, 3)
	assert.Equal(t, EventOrderStatusChanged, publisher.events[0])
}

// TestUpdateStatus_RejectsSkipAndBackward 跳级与回退都被拒绝
func TestUpdateStatus_RejectsSkipAndBackward(t *testing.T) {
	tests := []struct {
		name   string
		from   order.OrderStatus
		target string
	}{
		{"跳级", order.OrderStatusPending, "SHIPPING"},
		{"回退", order.OrderStatusShipping, "PROCESSED"},
		{"原地", order.OrderStatusProcessed, "PROCESSED"},
		{"终态再推进", order.OrderStatusDelivered, "DELIVERED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := newFakeOrderRepository()
			o := seedOrder(t, orderRepo, tt.from)
			uc := NewUpdateStatusUseCase(orderRepo, nil)

			_, err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: o.ID, Status: tt.target})
			assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)

			// 状态未被改动
			persisted, err := orderRepo.FindByID(context.Background(), o.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.from, persisted.Status)
		})
	}
}

// TestUpdateStatus_UnknownStatusValue 未定义的状态值在进状态机前就被拒绝
func TestUpdateStatus_UnknownStatusValue(t *testing.T) {
	orderRepo := newFakeOrderRepository()
	o := seedOrder(t, orderRepo, order.OrderStatusPending)
	uc := NewUpdateStatusUseCase(orderRepo, nil)

	_, err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: o.ID, Status: "CANCELLED"})
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
}

// TestUpdateStatus_OrderNotFound 订单不存在
func TestUpdateStatus_OrderNotFound(t *testing.T) {
	uc := NewUpdateStatusUseCase(newFakeOrderRepository(), nil)

	_, err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 999, Status: "PROCESSED"})
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

// TestUpdateStatus_ConcurrentAdvanceLosesRace 并发推进:条件更新失败方报错
func TestUpdateStatus_ConcurrentAdvanceLosesRace(t *testing.T) {
	orderRepo := newFakeOrderRepository()
	o := seedOrder(t, orderRepo, order.OrderStatusPending)
	uc := NewUpdateStatusUseCase(orderRepo, nil)

	// 模拟另一个管理员在FindByID之后、UpdateStatus之前抢先推进
	// 这里直接改动仓储里的状态,使条件更新(WHERE status=PENDING)落空
	_, err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: o.ID, Status: "PROCESSED"})
	require.NoError(t, err)

	// 输掉竞争的一方重放同一个请求:状态已不是PENDING
	orderRepo.orders[o.ID].Status = order.OrderStatusShipping
	_, err = uc.Execute(context.Background(), UpdateStatusRequest{OrderID: o.ID, Status: "PROCESSED"})
	assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)
}

// TestListOrderItems_EmptyResultConflated 无匹配明细统一视为订单不存在
func TestListOrderItems_EmptyResultConflated(t *testing.T) {
	orderRepo := newFakeOrderRepository()
	o := seedOrder(t, orderRepo, order.OrderStatusPending)
	uc := NewListOrderItemsUseCase(orderRepo)

	// 本人可见
	resp, err := uc.Execute(context.Background(), ListOrderItemsRequest{OrderID: o.ID, UserID: 7})
	require.NoError(t, err)
	assert.Len(t, resp.List, 1)

	// 他人、不存在的订单:同一错误
	_, err = uc.Execute(context.Background(), ListOrderItemsRequest{OrderID: o.ID, UserID: 8})
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
	_, err = uc.Execute(context.Background(), ListOrderItemsRequest{OrderID: 999, UserID: 7})
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}
