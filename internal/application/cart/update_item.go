package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// UpdateItemUseCase 更新购物车条目数量用例
// 条目按ID定位且限定在当前用户的购物车内,防止跨用户访问
type UpdateItemUseCase struct {
	cartRepo  cart.Repository
	txManager TxManager
}

// NewUpdateItemUseCase 创建更新条目用例
func NewUpdateItemUseCase(cartRepo cart.Repository, txManager TxManager) *UpdateItemUseCase {
	return &UpdateItemUseCase{cartRepo: cartRepo, txManager: txManager}
}

// UpdateItemRequest 更新条目请求DTO
type UpdateItemRequest struct {
	UserID   uint // 从JWT中提取
	ItemID   uint
	Quantity int
}

// Execute 执行更新条目数量
func (uc *UpdateItemUseCase) Execute(ctx context.Context, req UpdateItemRequest) (*CartItemView, error) {
	if req.Quantity < 1 {
		return nil, cart.ErrInvalidQuantity
	}

	var result *cart.CartItem
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		c, err := getOrCreateCart(txCtx, uc.cartRepo, req.UserID)
		if err != nil {
			return err
		}

		item, err := uc.cartRepo.FindItemByID(txCtx, req.ItemID, c.ID)
		if err != nil {
			return err
		}

		if err := item.SetQuantity(req.Quantity); err != nil {
			return err
		}
		if err := uc.cartRepo.UpdateItem(txCtx, item); err != nil {
			return err
		}

		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := toCartItemView(result)
	return &view, nil
}
