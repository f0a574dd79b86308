package cart

import (
	"context"
	"errors"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// AddItemUseCase 添加购物车条目用例
// 设计说明:这是购物车最核心的用例
// 1. 语义是upsert:同一本书再次加入时覆盖数量,而非累加
// 2. 并发安全:两个请求同时为同一本书插入时,靠(cart_id, book_id)唯一索引
//    裁决,输掉竞争的一方收到ErrItemDuplicate后在同一事务内改走更新路径
type AddItemUseCase struct {
	cartRepo  cart.Repository
	bookRepo  book.Repository
	txManager TxManager
}

// NewAddItemUseCase 创建添加条目用例
func NewAddItemUseCase(cartRepo cart.Repository, bookRepo book.Repository, txManager TxManager) *AddItemUseCase {
	return &AddItemUseCase{
		cartRepo:  cartRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
	}
}

// AddItemRequest 添加条目请求DTO
type AddItemRequest struct {
	UserID   uint // 从JWT中提取
	BookID   uint
	Quantity int
}

// Execute 执行添加条目
// 流程:
// 1. 解析图书(不存在直接报错)
// 2. 解析或创建购物车
// 3. 条目存在 → 覆盖数量;不存在 → 插入,插入撞唯一索引 → 改走更新
func (uc *AddItemUseCase) Execute(ctx context.Context, req AddItemRequest) (*CartItemView, error) {
	if req.Quantity < 1 {
		return nil, cart.ErrInvalidQuantity
	}

	// 1. 图书必须存在
	b, err := uc.bookRepo.FindByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}

	var result *cart.CartItem
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 2. 解析或创建购物车
		c, err := getOrCreateCart(txCtx, uc.cartRepo, req.UserID)
		if err != nil {
			return err
		}

		// 3. upsert条目
		if existing := c.FindItemByBook(req.BookID); existing != nil {
			if err := existing.SetQuantity(req.Quantity); err != nil {
				return err
			}
			if err := uc.cartRepo.UpdateItem(txCtx, existing); err != nil {
				return err
			}
			result = existing
			return nil
		}

		item, err := cart.NewCartItem(c.ID, req.BookID, req.Quantity)
		if err != nil {
			return err
		}

		if err := uc.cartRepo.InsertItem(txCtx, item); err != nil {
			// 并发竞争:另一个请求抢先插入了同一本书的条目,改走更新路径
			if errors.Is(err, cart.ErrItemDuplicate) {
				if err := uc.cartRepo.UpdateItemQuantity(txCtx, c.ID, req.BookID, req.Quantity); err != nil {
					return err
				}
				winner, err := uc.cartRepo.FindItemByCartAndBook(txCtx, c.ID, req.BookID)
				if err != nil {
					return err
				}
				result = winner
				return nil
			}
			return err
		}

		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := toCartItemView(result)
	enrichItemView(&view, b)
	return &view, nil
}
