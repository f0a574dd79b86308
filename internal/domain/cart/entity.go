package cart

import (
	"time"
)

// ShoppingCart 购物车实体(聚合根)
// DDD设计说明:
// 1. 每个用户同一时刻最多一个活跃购物车(user_id唯一索引保证)
// 2. 购物车在用户首次访问时惰性创建,下单成功后整车删除
// 3. CartItem是聚合内实体,(cart_id, book_id)唯一
type ShoppingCart struct {
	ID        uint
	UserID    uint
	Items     []*CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewShoppingCart 创建空购物车(工厂方法)
func NewShoppingCart(userID uint) *ShoppingCart {
	now := time.Now()
	return &ShoppingCart{
		UserID:    userID,
		Items:     nil,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FindItemByBook 按图书查找购物车条目
// 不存在返回nil
func (c *ShoppingCart) FindItemByBook(bookID uint) *CartItem {
	for _, item := range c.Items {
		if item.BookID == bookID {
			return item
		}
	}
	return nil
}

// IsEmpty 购物车是否为空
func (c *ShoppingCart) IsEmpty() bool {
	return len(c.Items) == 0
}

// CartItem 购物车条目
// 只记录图书引用和数量,价格在下单时才快照
type CartItem struct {
	ID        uint
	CartID    uint
	BookID    uint
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCartItem 创建购物车条目
// 业务规则:数量必须>=1
func NewCartItem(cartID, bookID uint, quantity int) (*CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	now := time.Now()
	return &CartItem{
		CartID:    cartID,
		BookID:    bookID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetQuantity 覆盖数量(非累加,与"再次加入同一本书"的upsert语义一致)
func (i *CartItem) SetQuantity(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	i.Quantity = quantity
	i.UpdatedAt = time.Now()
	return nil
}
