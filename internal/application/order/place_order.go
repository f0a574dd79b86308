package order

import (
	"context"
	"fmt"
	"log"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

// PlaceOrderUseCase 下单用例
// 设计说明:这是整个系统最核心的用例
// 1. 把购物车条目快照为订单明细(冻结下单时刻的价格、书名、ISBN)
// 2. 订单创建与整车删除在同一事务内,不允许出现
//    "订单已建但购物车还在"或"购物车没了但订单没建"的中间态
// 3. 空购物车视为"无物可下单",与购物车不存在同样返回"购物车不存在"
type PlaceOrderUseCase struct {
	orderRepo order.Repository
	cartRepo  cart.Repository
	bookRepo  book.Repository
	txManager TxManager
	publisher EventPublisher // 可为nil(未启用MQ)
}

// NewPlaceOrderUseCase 创建下单用例
func NewPlaceOrderUseCase(
	orderRepo order.Repository,
	cartRepo cart.Repository,
	bookRepo book.Repository,
	txManager TxManager,
	publisher EventPublisher,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		publisher: publisher,
	}
}

// PlaceOrderRequest 下单请求DTO
type PlaceOrderRequest struct {
	UserID          uint // 从JWT中提取
	ShippingAddress string
}

// Execute 执行下单
// 流程(单事务):
// 1. 加载用户购物车(不存在或为空 → 报错)
// 2. 逐条目读取图书当前价格,快照为订单明细
// 3. 创建PENDING订单
// 4. 整车删除购物车
// 事务提交后:上报指标、发布order.created事件(尽力而为)
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (*OrderView, error) {
	if strings.TrimSpace(req.ShippingAddress) == "" {
		return nil, order.ErrInvalidAddress
	}

	// 未启用追踪时为noop Tracer,无额外开销
	ctx, span := tracing.Tracer().Start(ctx, "order.place")
	defer span.End()

	var result *order.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 加载购物车
		c, err := uc.cartRepo.FindByUserID(txCtx, req.UserID)
		if err != nil {
			return err
		}
		if c.IsEmpty() {
			// 空车无物可下单,对外与"购物车不存在"同一错误
			return cart.ErrCartNotFound
		}

		// 2. 价格快照
		// 用数据库中的当前价格而非前端传值,防止改价攻击
		items := make([]order.OrderItem, len(c.Items))
		for i, item := range c.Items {
			b, err := uc.bookRepo.FindByID(txCtx, item.BookID)
			if err != nil {
				return err
			}
			items[i] = order.OrderItem{
				BookID:    b.ID,
				BookTitle: b.Title,
				BookISBN:  b.ISBN,
				Quantity:  item.Quantity,
				Price:     b.Price,
			}
		}

		// 3. 创建订单(含明细)
		newOrder := order.NewOrder(order.GenerateOrderNo(), req.UserID, req.ShippingAddress, items)
		if err := uc.orderRepo.Create(txCtx, newOrder); err != nil {
			return err
		}

		// 4. 整车删除(下次访问购物车时惰性新建)
		if err := uc.cartRepo.Delete(txCtx, c.ID); err != nil {
			return err
		}

		result = newOrder
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("order.no", result.OrderNo),
		attribute.Int64("order.total", result.Total),
	)

	// 事务已提交,以下均为尽力而为的旁路动作
	metrics.ObserveOrderCreated(result.Total)
	uc.publishCreated(ctx, result)

	view := toOrderView(result)
	return &view, nil
}

// publishCreated 发布订单创建事件
func (uc *PlaceOrderUseCase) publishCreated(ctx context.Context, o *order.Order) {
	if uc.publisher == nil {
		metrics.ObserveOrderEvent(EventOrderCreated, "skipped")
		return
	}

	event := OrderCreatedEvent{
		OrderID:   o.ID,
		OrderNo:   o.OrderNo,
		UserID:    o.UserID,
		Total:     o.Total,
		ItemCount: len(o.Items),
		CreatedAt: o.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if err := uc.publisher.Publish(ctx, EventOrderCreated, event); err != nil {
		log.Printf("发布订单创建事件失败 order_no=%s: %v", o.OrderNo, err)
		metrics.ObserveOrderEvent(EventOrderCreated, "failed")
		return
	}
	metrics.ObserveOrderEvent(EventOrderCreated, "ok")
}

// =========================================
// 应用层DTO
// =========================================

// OrderView 订单视图
type OrderView struct {
	ID              uint            `json:"id"`
	OrderNo         string          `json:"order_no"`
	ShippingAddress string          `json:"shipping_address"`
	Total           int64           `json:"total"`      // 总金额(分)
	TotalYuan       string          `json:"total_yuan"` // 总金额(元,展示用)
	Status          string          `json:"status"`
	Items           []OrderItemView `json:"items"`
	CreatedAt       string          `json:"created_at"`
}

// OrderItemView 订单明细视图
type OrderItemView struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	BookTitle string `json:"book_title"`
	BookISBN  string `json:"book_isbn"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`      // 下单时单价(分)
	PriceYuan string `json:"price_yuan"` // 下单时单价(元,展示用)
	Subtotal  int64  `json:"subtotal"`   // 小计(分)
}

// toOrderView 领域实体 → 视图DTO
func toOrderView(o *order.Order) OrderView {
	items := make([]OrderItemView, len(o.Items))
	for i, item := range o.Items {
		items[i] = toOrderItemView(item)
	}

	return OrderView{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		ShippingAddress: o.ShippingAddress,
		Total:           o.Total,
		TotalYuan:       formatPrice(o.Total),
		Status:          string(o.Status),
		Items:           items,
		CreatedAt:       o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// toOrderItemView 明细实体 → 视图DTO
func toOrderItemView(item order.OrderItem) OrderItemView {
	return OrderItemView{
		ID:        item.ID,
		BookID:    item.BookID,
		BookTitle: item.BookTitle,
		BookISBN:  item.BookISBN,
		Quantity:  item.Quantity,
		Price:     item.Price,
		PriceYuan: formatPrice(item.Price),
		Subtotal:  item.Subtotal(),
	}
}

// formatPrice 格式化价格(分→元)
func formatPrice(priceFen int64) string {
	yuan := float64(priceFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}
