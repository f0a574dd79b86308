package order

import (
	"time"
)

// OrderStatus 订单状态
// 设计说明:
// 1. 使用string类型,直接对应API报文中的状态值(可读性优先)
// 2. 状态只允许沿履约链单向推进,禁止回退和跳级
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"   // 已创建,待处理
	OrderStatusProcessed OrderStatus = "PROCESSED" // 已处理
	OrderStatusShipping  OrderStatus = "SHIPPING"  // 配送中
	OrderStatusDelivered OrderStatus = "DELIVERED" // 已送达(终态)
)

// Valid 是否为已定义的状态值
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessed, OrderStatusShipping, OrderStatusDelivered:
		return true
	}
	return false
}

// Next 返回当前状态的下一个合法状态
// 终态返回空串
func (s OrderStatus) Next() OrderStatus {
	switch s {
	case OrderStatusPending:
		return OrderStatusProcessed
	case OrderStatusProcessed:
		return OrderStatusShipping
	case OrderStatusShipping:
		return OrderStatusDelivered
	}
	return ""
}

// Order 订单实体(聚合根)
// 设计说明:
// 1. Order是聚合根,OrderItem是子实体
// 2. OrderNo为业务主键(全局唯一,时间有序)
// 3. Total冗余存储下单时刻的总金额,图书后续改价不影响历史订单
// 4. 订单删除为软删除(墓碑标记),所有读路径过滤已删除订单
type Order struct {
	ID              uint
	OrderNo         string      // 订单号(业务主键)
	UserID          uint        // 买家用户ID
	ShippingAddress string      // 收货地址
	Total           int64       // 订单总金额(分),冗余字段
	Status          OrderStatus // 订单状态
	Items           []OrderItem // 订单明细(聚合内的子实体)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem 订单明细项
// 设计说明:
// 1. 不是独立聚合根,必须通过Order访问
// 2. Price/Title/ISBN是下单时刻的快照,图书修改或删除后历史订单不变
// 3. 不直接关联Book对象,只保存BookID(避免跨聚合引用)
type OrderItem struct {
	ID        uint
	OrderID   uint   // 所属订单ID
	BookID    uint   // 图书ID
	BookTitle string // 下单时的书名快照
	BookISBN  string // 下单时的ISBN快照
	Quantity  int    // 购买数量
	Price     int64  // 下单时的单价(分)
}

// Subtotal 明细小计(分)
func (i OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// NewOrder 创建新订单(工厂方法)
// 初始状态为Pending,总金额由明细实时计算
func NewOrder(orderNo string, userID uint, shippingAddress string, items []OrderItem) *Order {
	now := time.Now()
	o := &Order{
		OrderNo:         orderNo,
		UserID:          userID,
		ShippingAddress: shippingAddress,
		Status:          OrderStatusPending,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	o.Total = o.CalculateTotal()
	return o
}

// CanTransitionTo 检查是否可以转换到目标状态
// 业务规则:只允许沿PENDING→PROCESSED→SHIPPING→DELIVERED单步推进
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	return target.Valid() && o.Status.Next() == target
}

// TransitionTo 状态转换
func (o *Order) TransitionTo(target OrderStatus) error {
	if !o.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// CalculateTotal 根据明细计算订单总金额(分)
func (o *Order) CalculateTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Subtotal()
	}
	return total
}

// IsOwnedBy 检查订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}
