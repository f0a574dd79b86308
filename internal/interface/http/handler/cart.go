package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CartHandler 购物车HTTP处理器
// 所有接口都要求登录;操作的永远是当前登录用户自己的购物车,
// 不接受路径中的购物车ID(防止越权访问)
type CartHandler struct {
	getCartUseCase    *appcart.GetCartUseCase
	addItemUseCase    *appcart.AddItemUseCase
	updateItemUseCase *appcart.UpdateItemUseCase
	removeItemUseCase *appcart.RemoveItemUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(
	getCartUseCase *appcart.GetCartUseCase,
	addItemUseCase *appcart.AddItemUseCase,
	updateItemUseCase *appcart.UpdateItemUseCase,
	removeItemUseCase *appcart.RemoveItemUseCase,
) *CartHandler {
	return &CartHandler{
		getCartUseCase:    getCartUseCase,
		addItemUseCase:    addItemUseCase,
		updateItemUseCase: updateItemUseCase,
		removeItemUseCase: removeItemUseCase,
	}
}

// GetCart 查询购物车
// @Summary      查询购物车
// @Description  返回当前用户的购物车,首次访问时自动创建空车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "查询成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.getCartUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddItem 添加购物车条目
// @Summary      添加购物车条目
// @Description  同一本书再次添加时覆盖数量(upsert语义,非累加)
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "条目信息"
// @Success      200 {object} response.Response "添加成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.addItemUseCase.Execute(c.Request.Context(), appcart.AddItemRequest{
		UserID:   userID,
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateItem 更新购物车条目数量
// @Summary      更新购物车条目数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "条目ID"
// @Param        request body dto.UpdateCartItemRequest true "新数量"
// @Success      200 {object} response.Response "更新成功"
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /api/v1/cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.updateItemUseCase.Execute(c.Request.Context(), appcart.UpdateItemRequest{
		UserID:   userID,
		ItemID:   id,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RemoveItem 移除购物车条目
// @Summary      移除购物车条目
// @Description  条目不存在时返回404(不作幂等成功处理)
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "条目ID"
// @Success      200 {object} response.Response "移除成功"
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /api/v1/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := middleware.MustGetUserID(c)

	if err := h.removeItemUseCase.Execute(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
