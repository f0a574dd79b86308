package order

import (
	"context"
)

// TxManager 事务边界
// 在应用层按使用方声明接口(mysql.TxManager是其实现),
// 单元测试时可以注入直通的假实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 订单事件发布器
// pkg/mq.Publisher是其实现;未启用MQ时注入nil,发布退化为no-op。
// 事件发布在事务提交之后进行,失败只记录日志和指标,不影响主流程
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body interface{}) error
}

// 订单事件路由键
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderCreatedEvent 订单创建事件载荷
type OrderCreatedEvent struct {
	OrderID   uint   `json:"order_id"`
	OrderNo   string `json:"order_no"`
	UserID    uint   `json:"user_id"`
	Total     int64  `json:"total"`
	ItemCount int    `json:"item_count"`
	CreatedAt string `json:"created_at"`
}

// OrderStatusChangedEvent 订单状态变更事件载荷
type OrderStatusChangedEvent struct {
	OrderID    uint   `json:"order_id"`
	OrderNo    string `json:"order_no"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
}
