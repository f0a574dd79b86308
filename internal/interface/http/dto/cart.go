package dto

// AddCartItemRequest 添加购物车条目请求
// 同一本书再次添加时覆盖数量（upsert语义，非累加）
type AddCartItemRequest struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest 更新购物车条目数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}
