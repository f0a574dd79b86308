package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/order"
)

// ListOrderItemsUseCase 订单明细列表用例
// 归属校验在仓储层通过JOIN完成:订单不存在、属于他人或无明细
// 统一表现为"订单不存在",不泄露他人订单信息
type ListOrderItemsUseCase struct {
	orderRepo order.Repository
}

// NewListOrderItemsUseCase 创建订单明细列表用例
func NewListOrderItemsUseCase(orderRepo order.Repository) *ListOrderItemsUseCase {
	return &ListOrderItemsUseCase{orderRepo: orderRepo}
}

// ListOrderItemsRequest 明细列表请求DTO
type ListOrderItemsRequest struct {
	OrderID  uint
	UserID   uint // 从JWT中提取
	Page     int
	PageSize int
}

// ListOrderItemsResponse 明细列表响应DTO
type ListOrderItemsResponse struct {
	List     []OrderItemView `json:"list"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// Execute 执行明细列表查询
func (uc *ListOrderItemsUseCase) Execute(ctx context.Context, req ListOrderItemsRequest) (*ListOrderItemsResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	items, total, err := uc.orderRepo.ListItemsByOrderAndUser(ctx, req.OrderID, req.UserID, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	list := make([]OrderItemView, len(items))
	for i, item := range items {
		list[i] = toOrderItemView(item)
	}

	return &ListOrderItemsResponse{
		List:     list,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

// GetOrderItemUseCase 单条订单明细用例
// 按(明细ID,订单ID,用户ID)三元组定位,任一不匹配均视为不存在
type GetOrderItemUseCase struct {
	orderRepo order.Repository
}

// NewGetOrderItemUseCase 创建单条明细用例
func NewGetOrderItemUseCase(orderRepo order.Repository) *GetOrderItemUseCase {
	return &GetOrderItemUseCase{orderRepo: orderRepo}
}

// Execute 查询单条订单明细
func (uc *GetOrderItemUseCase) Execute(ctx context.Context, itemID, orderID, userID uint) (*OrderItemView, error) {
	item, err := uc.orderRepo.FindItemByIDOrderUser(ctx, itemID, orderID, userID)
	if err != nil {
		return nil, err
	}

	view := toOrderItemView(*item)
	return &view, nil
}
