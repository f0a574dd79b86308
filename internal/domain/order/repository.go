package order

import (
	"context"
)

// Repository 订单仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 支持事务操作(通过context传递事务)
// 3. 所有读路径隐式过滤已软删除的订单
type Repository interface {
	// Create 创建订单(包含订单明细,必须在同一事务中)
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找未删除的订单(包含订单明细)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// ListByUserID 分页查询用户的未删除订单(含明细)
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Order, int64, error)

	// UpdateStatus 条件更新订单状态
	// 单条语句实现 UPDATE ... WHERE id=? AND status=?,
	// 影响行数不为1时返回ErrInvalidStatusTransition(并发竞争失败)
	UpdateStatus(ctx context.Context, id uint, from, to OrderStatus) error

	// Delete 软删除订单
	Delete(ctx context.Context, id uint) error

	// ListItemsByOrderAndUser 查询订单明细(归属校验走JOIN)
	// 订单不存在、属于他人或无明细时结果集为空,统一返回ErrOrderNotFound
	ListItemsByOrderAndUser(ctx context.Context, orderID, userID uint, page, pageSize int) ([]OrderItem, int64, error)

	// FindItemByIDOrderUser 按(明细ID,订单ID,用户ID)三元组查询单条明细
	// 无匹配行返回ErrOrderItemNotFound
	FindItemByIDOrderUser(ctx context.Context, itemID, orderID, userID uint) (*OrderItem, error)
}
