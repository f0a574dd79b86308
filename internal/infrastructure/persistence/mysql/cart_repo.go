package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// cartRepository 购物车仓储实现(MySQL)
// 设计说明:
// 1. 购物车与条目同属一个聚合,整车删除时连同条目一起删除
// 2. InsertItem把(cart_id, book_id)唯一索引冲突转换为ErrItemDuplicate,
//    由应用层作为upsert的并发竞争信号处理
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// FindByUserID 查询用户的购物车(含条目)
func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	var model CartModel
	err := getDB(ctx, r.db).Preload("Items").Where("user_id = ?", userID).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	return toCartEntity(&model), nil
}

// Create 创建购物车
// user_id唯一索引冲突说明并发请求已创建,转换为通用重复错误由调用方重查
func (r *cartRepository) Create(ctx context.Context, c *cart.ShoppingCart) error {
	model := &CartModel{UserID: c.UserID}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "购物车已存在")
		}
		return apperrors.Wrap(err, "创建购物车失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 按ID整车删除(连同条目)
func (r *cartRepository) Delete(ctx context.Context, cartID uint) error {
	db := getDB(ctx, r.db)

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&CartItemModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除购物车条目失败")
		}

		result := tx.Delete(&CartModel{}, cartID)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除购物车失败")
		}
		if result.RowsAffected == 0 {
			return cart.ErrCartNotFound
		}
		return nil
	})
}

// InsertItem 插入购物车条目
// (cart_id, book_id)唯一索引冲突返回ErrItemDuplicate
func (r *cartRepository) InsertItem(ctx context.Context, item *cart.CartItem) error {
	model := &CartItemModel{
		CartID:   item.CartID,
		BookID:   item.BookID,
		Quantity: item.Quantity,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return cart.ErrItemDuplicate
		}
		return apperrors.Wrap(err, "添加购物车条目失败")
	}

	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	item.UpdatedAt = model.UpdatedAt
	return nil
}

// UpdateItemQuantity 按(cart_id, book_id)覆盖数量
func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID, bookID uint, quantity int) error {
	result := getDB(ctx, r.db).Model(&CartItemModel{}).
		Where("cart_id = ? AND book_id = ?", cartID, bookID).
		Update("quantity", quantity)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

// FindItemByCartAndBook 按(cart_id, book_id)查询条目
func (r *cartRepository) FindItemByCartAndBook(ctx context.Context, cartID, bookID uint) (*cart.CartItem, error) {
	var model CartItemModel
	err := getDB(ctx, r.db).Where("cart_id = ? AND book_id = ?", cartID, bookID).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车条目失败")
	}

	return toCartItemEntity(&model), nil
}

// FindItemByID 按条目ID+购物车ID查询
// cart_id条件防止通过条目ID访问他人购物车
func (r *cartRepository) FindItemByID(ctx context.Context, itemID, cartID uint) (*cart.CartItem, error) {
	var model CartItemModel
	err := getDB(ctx, r.db).Where("id = ? AND cart_id = ?", itemID, cartID).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车条目失败")
	}

	return toCartItemEntity(&model), nil
}

// UpdateItem 更新条目
func (r *cartRepository) UpdateItem(ctx context.Context, item *cart.CartItem) error {
	result := getDB(ctx, r.db).Model(&CartItemModel{}).
		Where("id = ? AND cart_id = ?", item.ID, item.CartID).
		Updates(map[string]interface{}{
			"quantity":   item.Quantity,
			"updated_at": item.UpdatedAt,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

// DeleteItem 按条目ID+购物车ID删除
// 删除不存在的条目返回ErrCartItemNotFound(不是幂等成功)
func (r *cartRepository) DeleteItem(ctx context.Context, itemID, cartID uint) error {
	result := getDB(ctx, r.db).Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&CartItemModel{})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

// toCartEntity GORM模型 → 领域实体
func toCartEntity(model *CartModel) *cart.ShoppingCart {
	items := make([]*cart.CartItem, len(model.Items))
	for i := range model.Items {
		items[i] = toCartItemEntity(&model.Items[i])
	}

	return &cart.ShoppingCart{
		ID:        model.ID,
		UserID:    model.UserID,
		Items:     items,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// toCartItemEntity GORM模型 → 领域实体
func toCartItemEntity(model *CartItemModel) *cart.CartItem {
	return &cart.CartItem{
		ID:        model.ID,
		CartID:    model.CartID,
		BookID:    model.BookID,
		Quantity:  model.Quantity,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
