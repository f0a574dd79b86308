package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// RemoveItemUseCase 移除购物车条目用例
// 业务规则:删除不存在的条目返回"条目不存在",不作幂等成功处理
type RemoveItemUseCase struct {
	cartRepo  cart.Repository
	txManager TxManager
}

// NewRemoveItemUseCase 创建移除条目用例
func NewRemoveItemUseCase(cartRepo cart.Repository, txManager TxManager) *RemoveItemUseCase {
	return &RemoveItemUseCase{cartRepo: cartRepo, txManager: txManager}
}

// Execute 执行移除条目
func (uc *RemoveItemUseCase) Execute(ctx context.Context, userID, itemID uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		c, err := getOrCreateCart(txCtx, uc.cartRepo, userID)
		if err != nil {
			return err
		}

		return uc.cartRepo.DeleteItem(txCtx, itemID, c.ID)
	})
}
