package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/order"
)

// ListOrdersUseCase 订单列表用例
// 只返回当前用户的未删除订单,明细随单预加载
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListOrdersUseCase 创建订单列表用例
func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// ListOrdersRequest 订单列表请求DTO
type ListOrdersRequest struct {
	UserID   uint // 从JWT中提取
	Page     int
	PageSize int
}

// ListOrdersResponse 订单列表响应DTO
type ListOrdersResponse struct {
	List       []OrderView `json:"list"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// Execute 执行订单列表查询
func (uc *ListOrdersUseCase) Execute(ctx context.Context, req ListOrdersRequest) (*ListOrdersResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	orders, total, err := uc.orderRepo.ListByUserID(ctx, req.UserID, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	list := make([]OrderView, len(orders))
	for i, o := range orders {
		list[i] = toOrderView(o)
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize != 0 {
		totalPages++
	}

	return &ListOrdersResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetOrderUseCase 订单详情用例
// 订单归属校验:非本人订单与不存在的订单同样返回"订单不存在"
type GetOrderUseCase struct {
	orderRepo order.Repository
}

// NewGetOrderUseCase 创建订单详情用例
func NewGetOrderUseCase(orderRepo order.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo}
}

// Execute 查询订单详情
func (uc *GetOrderUseCase) Execute(ctx context.Context, orderID, userID uint) (*OrderView, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !o.IsOwnedBy(userID) {
		// 不泄露他人订单的存在性
		return nil, order.ErrOrderNotFound
	}

	view := toOrderView(o)
	return &view, nil
}
