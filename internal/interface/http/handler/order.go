package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookshop/internal/application/order"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// OrderHandler 订单HTTP处理器
// 普通用户只能操作自己的订单;状态更新接口由路由层挂MANAGER角色校验
type OrderHandler struct {
	placeOrderUseCase     *apporder.PlaceOrderUseCase
	listOrdersUseCase     *apporder.ListOrdersUseCase
	getOrderUseCase       *apporder.GetOrderUseCase
	updateStatusUseCase   *apporder.UpdateStatusUseCase
	listOrderItemsUseCase *apporder.ListOrderItemsUseCase
	getOrderItemUseCase   *apporder.GetOrderItemUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	placeOrderUseCase *apporder.PlaceOrderUseCase,
	listOrdersUseCase *apporder.ListOrdersUseCase,
	getOrderUseCase *apporder.GetOrderUseCase,
	updateStatusUseCase *apporder.UpdateStatusUseCase,
	listOrderItemsUseCase *apporder.ListOrderItemsUseCase,
	getOrderItemUseCase *apporder.GetOrderItemUseCase,
) *OrderHandler {
	return &OrderHandler{
		placeOrderUseCase:     placeOrderUseCase,
		listOrdersUseCase:     listOrdersUseCase,
		getOrderUseCase:       getOrderUseCase,
		updateStatusUseCase:   updateStatusUseCase,
		listOrderItemsUseCase: listOrderItemsUseCase,
		getOrderItemUseCase:   getOrderItemUseCase,
	}
}

// PlaceOrder 下单
// @Summary      下单
// @Description  把当前用户的购物车快照为订单(冻结价格),成功后删除购物车;
// @Description  购物车不存在或为空时返回404
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PlaceOrderRequest true "收货地址"
// @Success      200 {object} response.Response "下单成功"
// @Failure      404 {object} response.Response "购物车不存在或为空"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.placeOrderUseCase.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		UserID:          userID,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListOrders 订单列表
// @Summary      订单列表
// @Description  返回当前用户的未删除订单(含明细)
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.listOrdersUseCase.Execute(c.Request.Context(), apporder.ListOrdersRequest{
		UserID:   userID,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetOrder 订单详情
// @Summary      订单详情
// @Description  只能查看自己的订单;他人订单与不存在的订单同样返回404
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response "查询成功"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.getOrderUseCase.Execute(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateStatus 更新订单状态
// @Summary      更新订单状态
// @Description  管理员操作;状态只能沿PENDING→PROCESSED→SHIPPING→DELIVERED单步推进
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} response.Response "更新成功"
// @Failure      404 {object} response.Response "订单不存在"
// @Failure      403 {object} response.Response "无权限"
// @Router       /api/v1/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateStatusUseCase.Execute(c.Request.Context(), apporder.UpdateStatusRequest{
		OrderID: id,
		Status:  req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListOrderItems 订单明细列表
// @Summary      订单明细列表
// @Description  归属校验走JOIN;订单不存在、属于他人或无明细统一返回404
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response "查询成功"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id}/items [get]
func (h *OrderHandler) ListOrderItems(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.listOrderItemsUseCase.Execute(c.Request.Context(), apporder.ListOrderItemsRequest{
		OrderID:  id,
		UserID:   userID,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetOrderItem 单条订单明细
// @Summary      单条订单明细
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        item_id path int true "明细ID"
// @Success      200 {object} response.Response "查询成功"
// @Failure      404 {object} response.Response "明细不存在"
// @Router       /api/v1/orders/{id}/items/{item_id} [get]
func (h *OrderHandler) GetOrderItem(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.getOrderItemUseCase.Execute(c.Request.Context(), itemID, orderID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
