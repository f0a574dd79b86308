package handler

import (
	"github.com/gin-gonic/gin"

	appcategory "github.com/xiebiao/bookshop/internal/application/category"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CategoryHandler 分类HTTP处理器
type CategoryHandler struct {
	createCategoryUseCase *appcategory.CreateCategoryUseCase
	updateCategoryUseCase *appcategory.UpdateCategoryUseCase
	deleteCategoryUseCase *appcategory.DeleteCategoryUseCase
	getCategoryUseCase    *appcategory.GetCategoryUseCase
	listCategoriesUseCase *appcategory.ListCategoriesUseCase
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(
	createCategoryUseCase *appcategory.CreateCategoryUseCase,
	updateCategoryUseCase *appcategory.UpdateCategoryUseCase,
	deleteCategoryUseCase *appcategory.DeleteCategoryUseCase,
	getCategoryUseCase *appcategory.GetCategoryUseCase,
	listCategoriesUseCase *appcategory.ListCategoriesUseCase,
) *CategoryHandler {
	return &CategoryHandler{
		createCategoryUseCase: createCategoryUseCase,
		updateCategoryUseCase: updateCategoryUseCase,
		deleteCategoryUseCase: deleteCategoryUseCase,
		getCategoryUseCase:    getCategoryUseCase,
		listCategoriesUseCase: listCategoriesUseCase,
	}
}

// CreateCategory 创建分类
// @Summary      创建分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CategoryRequest true "分类信息"
// @Success      200 {object} response.Response "创建成功"
// @Failure      403 {object} response.Response "无权限"
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.createCategoryUseCase.Execute(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateCategory 更新分类
// @Summary      更新分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Param        request body dto.CategoryRequest true "分类信息"
// @Success      200 {object} response.Response "更新成功"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateCategoryUseCase.Execute(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteCategory 删除分类
// @Summary      删除分类
// @Description  只解除与图书的关联,不删除图书
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response "删除成功"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteCategoryUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// GetCategory 分类详情
// @Summary      分类详情
// @Tags         分类
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response "查询成功"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.getCategoryUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListCategories 分类列表
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	result, err := h.listCategoriesUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
