package cart

import (
	"context"
	"fmt"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// GetCartUseCase 查询购物车用例
// 设计说明:
// 1. 购物车惰性创建:首次访问时自动建一个空车(幂等)
// 2. 条目视图附带图书的当前标题与价格(价格在下单前随图书变动)
type GetCartUseCase struct {
	cartRepo cart.Repository
	bookRepo book.Repository
}

// NewGetCartUseCase 创建查询购物车用例
func NewGetCartUseCase(cartRepo cart.Repository, bookRepo book.Repository) *GetCartUseCase {
	return &GetCartUseCase{cartRepo: cartRepo, bookRepo: bookRepo}
}

// Execute 查询(或创建)用户的购物车
func (uc *GetCartUseCase) Execute(ctx context.Context, userID uint) (*CartView, error) {
	c, err := getOrCreateCart(ctx, uc.cartRepo, userID)
	if err != nil {
		return nil, err
	}

	items := make([]CartItemView, len(c.Items))
	for i, item := range c.Items {
		items[i] = toCartItemView(item)

		// 附带图书当前信息;图书已被下架删除时保留裸条目
		if b, err := uc.bookRepo.FindByID(ctx, item.BookID); err == nil {
			enrichItemView(&items[i], b)
		} else if !apperrors.IsNotFound(err) {
			return nil, err
		}
	}

	return &CartView{
		ID:     c.ID,
		UserID: c.UserID,
		Items:  items,
	}, nil
}

// getOrCreateCart 解析或创建用户购物车
// 并发下两个请求同时创建时,输掉唯一索引竞争的一方重查一次
func getOrCreateCart(ctx context.Context, repo cart.Repository, userID uint) (*cart.ShoppingCart, error) {
	c, err := repo.FindByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	newCart := cart.NewShoppingCart(userID)
	if createErr := repo.Create(ctx, newCart); createErr != nil {
		appErr := apperrors.GetAppError(createErr)
		if appErr.Code == apperrors.ErrCodeDuplicateEntry {
			return repo.FindByUserID(ctx, userID)
		}
		return nil, createErr
	}
	return newCart, nil
}

// =========================================
// 应用层DTO
// =========================================

// CartView 购物车视图
type CartView struct {
	ID     uint           `json:"id"`
	UserID uint           `json:"user_id"`
	Items  []CartItemView `json:"items"`
}

// CartItemView 购物车条目视图
type CartItemView struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	BookTitle string `json:"book_title"`
	Price     int64  `json:"price"`      // 图书当前价格(分)
	PriceYuan string `json:"price_yuan"` // 图书当前价格(元,展示用)
	Quantity  int    `json:"quantity"`
}

// toCartItemView 领域实体 → 视图DTO(不含图书信息)
func toCartItemView(item *cart.CartItem) CartItemView {
	return CartItemView{
		ID:       item.ID,
		BookID:   item.BookID,
		Quantity: item.Quantity,
	}
}

// enrichItemView 填充图书当前信息
func enrichItemView(view *CartItemView, b *book.Book) {
	view.BookTitle = b.Title
	view.Price = b.Price
	view.PriceYuan = formatPrice(b.Price)
}

// formatPrice 格式化价格(分→元)
func formatPrice(priceFen int64) string {
	yuan := float64(priceFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}
