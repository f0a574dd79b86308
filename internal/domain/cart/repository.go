package cart

import (
	"context"
)

// Repository 购物车仓储接口(依赖倒置原则)
// 设计说明:
// 1. 购物车与条目同属一个聚合,仓储统一管理
// 2. InsertItem依赖(cart_id, book_id)唯一索引,冲突返回ErrItemDuplicate,
//    由应用层改走更新路径(并发安全的upsert)
type Repository interface {
	// FindByUserID 查询用户的购物车(含条目)
	// 不存在返回ErrCartNotFound
	FindByUserID(ctx context.Context, userID uint) (*ShoppingCart, error)

	// Create 创建购物车
	Create(ctx context.Context, cart *ShoppingCart) error

	// Delete 按ID整车删除(连同条目)
	Delete(ctx context.Context, cartID uint) error

	// InsertItem 插入购物车条目
	// (cart_id, book_id)冲突返回ErrItemDuplicate
	InsertItem(ctx context.Context, item *CartItem) error

	// UpdateItemQuantity 按(cart_id, book_id)覆盖数量
	// 条目不存在返回ErrCartItemNotFound
	UpdateItemQuantity(ctx context.Context, cartID, bookID uint, quantity int) error

	// FindItemByCartAndBook 按(cart_id, book_id)查询条目
	FindItemByCartAndBook(ctx context.Context, cartID, bookID uint) (*CartItem, error)

	// FindItemByID 按条目ID+购物车ID查询(防止跨购物车访问)
	FindItemByID(ctx context.Context, itemID, cartID uint) (*CartItem, error)

	// UpdateItem 更新条目
	UpdateItem(ctx context.Context, item *CartItem) error

	// DeleteItem 按条目ID+购物车ID删除
	// 条目不存在返回ErrCartItemNotFound(删除缺失条目不是幂等成功)
	DeleteItem(ctx context.Context, itemID, cartID uint) error
}
