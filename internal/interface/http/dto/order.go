package dto

// PlaceOrderRequest 下单请求
// 订单内容取自当前用户的购物车，请求体只需收货地址
type PlaceOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required,max=255"`
}

// UpdateOrderStatusRequest 更新订单状态请求（管理员操作）
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING PROCESSED SHIPPING DELIVERED"`
}

// PageQuery 通用分页查询参数
type PageQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}
