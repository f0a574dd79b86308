package order

import (
	"context"
	"log"

	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// UpdateStatusUseCase 更新订单状态用例(管理员操作)
// 设计说明:
// 1. 状态只允许沿PENDING→PROCESSED→SHIPPING→DELIVERED单步推进
// 2. 落库用单条条件更新(WHERE id=? AND status=?)并校验影响行数,
//    两个管理员并发推进同一订单时只有一个成功
type UpdateStatusUseCase struct {
	orderRepo order.Repository
	publisher EventPublisher // 可为nil(未启用MQ)
}

// NewUpdateStatusUseCase 创建更新状态用例
func NewUpdateStatusUseCase(orderRepo order.Repository, publisher EventPublisher) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{orderRepo: orderRepo, publisher: publisher}
}

// UpdateStatusRequest 更新状态请求DTO
type UpdateStatusRequest struct {
	OrderID uint
	Status  string
}

// Execute 执行状态更新
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, req UpdateStatusRequest) (*OrderView, error) {
	target := order.OrderStatus(req.Status)
	if !target.Valid() {
		return nil, order.ErrInvalidStatus
	}

	// 1. 加载订单(不存在或已删除 → 报错,且不产生任何行变更)
	o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	// 2. 状态机校验并在内存中推进
	from := o.Status
	if err := o.TransitionTo(target); err != nil {
		return nil, err
	}

	// 3. 条件更新:并发竞争者抢先推进时这里失败
	if err := uc.orderRepo.UpdateStatus(ctx, o.ID, from, target); err != nil {
		return nil, err
	}

	// 事件发布为尽力而为的旁路动作
	uc.publishStatusChanged(ctx, o, from, target)

	view := toOrderView(o)
	return &view, nil
}

// publishStatusChanged 发布订单状态变更事件
func (uc *UpdateStatusUseCase) publishStatusChanged(ctx context.Context, o *order.Order, from, to order.OrderStatus) {
	if uc.publisher == nil {
		metrics.ObserveOrderEvent(EventOrderStatusChanged, "skipped")
		return
	}

	event := OrderStatusChangedEvent{
		OrderID:    o.ID,
		OrderNo:    o.OrderNo,
		FromStatus: string(from),
		ToStatus:   string(to),
	}

	if err := uc.publisher.Publish(ctx, EventOrderStatusChanged, event); err != nil {
		log.Printf("发布订单状态变更事件失败 order_no=%s: %v", o.OrderNo, err)
		metrics.ObserveOrderEvent(EventOrderStatusChanged, "failed")
		return
	}
	metrics.ObserveOrderEvent(EventOrderStatusChanged, "ok")
}
