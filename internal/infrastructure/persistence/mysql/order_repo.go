package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/order"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// 设计说明:
// 1. Order和OrderItem是聚合关系,必须一起保存
// 2. 查询时使用Preload预加载明细,避免N+1问题
// 3. OrderModel挂DeletedAt,GORM自动为所有读路径过滤已删除订单
// 4. 事务通过context传递
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单
// GORM会通过foreignKey自动保存关联的Items;
// 下单流程中必须在事务内调用(getDB从context获取事务DB)
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	// 回填自增ID
	o.ID = model.ID
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}

	return nil
}

// FindByID 根据ID查找未删除的订单(含明细)
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).Preload("Items").First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}

	return toOrderEntity(&model), nil
}

// ListByUserID 分页查询用户的未删除订单(含明细)
func (r *orderRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	var models []OrderModel
	var total int64

	db := getDB(ctx, r.db)
	query := db.Model(&OrderModel{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Items").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

// UpdateStatus 条件更新订单状态
// 单条语句 UPDATE orders SET status=? WHERE id=? AND status=?,
// 影响行数不为1说明并发竞争者已抢先变更,返回ErrInvalidStatusTransition
func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, from, to order.OrderStatus) error {
	result := getDB(ctx, r.db).Model(&OrderModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单状态失败")
	}
	if result.RowsAffected != 1 {
		return order.ErrInvalidStatusTransition
	}
	return nil
}

// Delete 软删除订单
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&OrderModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除订单失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// ListItemsByOrderAndUser 查询订单明细(归属校验走JOIN)
// 订单不存在、已删除、属于他人或无明细时结果集为空,统一返回ErrOrderNotFound
// (对外不区分这几种情况,避免泄露他人订单是否存在)
func (r *orderRepository) ListItemsByOrderAndUser(ctx context.Context, orderID, userID uint, page, pageSize int) ([]order.OrderItem, int64, error) {
	db := getDB(ctx, r.db)

	query := db.Model(&OrderItemModel{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.order_id = ? AND orders.user_id = ? AND orders.deleted_at IS NULL", orderID, userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单明细总数失败")
	}
	if total == 0 {
		return nil, 0, order.ErrOrderNotFound
	}

	var models []OrderItemModel
	offset := (page - 1) * pageSize
	err := query.Order("order_items.id ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单明细失败")
	}

	items := make([]order.OrderItem, len(models))
	for i := range models {
		items[i] = toOrderItemEntity(&models[i])
	}
	return items, total, nil
}

// FindItemByIDOrderUser 按(明细ID,订单ID,用户ID)三元组查询单条明细
func (r *orderRepository) FindItemByIDOrderUser(ctx context.Context, itemID, orderID, userID uint) (*order.OrderItem, error) {
	var model OrderItemModel
	err := getDB(ctx, r.db).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.id = ? AND order_items.order_id = ? AND orders.user_id = ? AND orders.deleted_at IS NULL",
			itemID, orderID, userID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单明细失败")
	}

	item := toOrderItemEntity(&model)
	return &item, nil
}

// toOrderModel 领域实体 → GORM模型
func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			ID:        item.ID,
			OrderID:   item.OrderID,
			BookID:    item.BookID,
			BookTitle: item.BookTitle,
			BookISBN:  item.BookISBN,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return &OrderModel{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		UserID:          o.UserID,
		ShippingAddress: o.ShippingAddress,
		Total:           o.Total,
		Status:          string(o.Status),
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(model.Items))
	for i := range model.Items {
		items[i] = toOrderItemEntity(&model.Items[i])
	}

	return &order.Order{
		ID:              model.ID,
		OrderNo:         model.OrderNo,
		UserID:          model.UserID,
		ShippingAddress: model.ShippingAddress,
		Total:           model.Total,
		Status:          order.OrderStatus(model.Status),
		Items:           items,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

// toOrderItemEntity GORM模型 → 领域实体
func toOrderItemEntity(model *OrderItemModel) order.OrderItem {
	return order.OrderItem{
		ID:        model.ID,
		OrderID:   model.OrderID,
		BookID:    model.BookID,
		BookTitle: model.BookTitle,
		BookISBN:  model.BookISBN,
		Quantity:  model.Quantity,
		Price:     model.Price,
	}
}
