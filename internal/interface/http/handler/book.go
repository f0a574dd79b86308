package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// BookHandler 图书HTTP处理器
// 读接口公开,写接口由路由层挂MANAGER角色校验
type BookHandler struct {
	createBookUseCase  *appbook.CreateBookUseCase
	updateBookUseCase  *appbook.UpdateBookUseCase
	deleteBookUseCase  *appbook.DeleteBookUseCase
	getBookUseCase     *appbook.GetBookUseCase
	searchBooksUseCase *appbook.SearchBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBookUseCase *appbook.CreateBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	searchBooksUseCase *appbook.SearchBooksUseCase,
) *BookHandler {
	return &BookHandler{
		createBookUseCase:  createBookUseCase,
		updateBookUseCase:  updateBookUseCase,
		deleteBookUseCase:  deleteBookUseCase,
		getBookUseCase:     getBookUseCase,
		searchBooksUseCase: searchBooksUseCase,
	}
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  管理员创建图书,ISBN不能重复,分类ID必须已存在
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response "创建成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "无权限"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		ISBN:        req.ISBN,
		Title:       req.Title,
		Author:      req.Author,
		Price:       req.Price,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  管理员更新图书,整体替换标量字段与分类关联
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response "更新成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "ISBN与其他图书冲突"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:          id,
		ISBN:        req.ISBN,
		Title:       req.Title,
		Author:      req.Author,
		Price:       req.Price,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  管理员删除图书(物理删除),历史订单依赖明细快照不受影响
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "删除成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "查询成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SearchBooks 图书搜索/列表
// @Summary      图书搜索
// @Description  支持书名/作者/ISBN模糊匹配(不区分大小写)、分类、价格区间过滤;
// @Description  同名参数重复出现为OR,不同字段之间为AND;无过滤条件时为分页列表
// @Tags         图书
// @Produce      json
// @Param        title query []string false "书名关键词(可重复)"
// @Param        author query []string false "作者关键词(可重复)"
// @Param        isbn query []string false "ISBN关键词(可重复)"
// @Param        category_id query []int false "分类ID(可重复)"
// @Param        min_price query int false "最低价(分)"
// @Param        max_price query int false "最高价(分)"
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/books [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var query dto.SearchBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.searchBooksUseCase.Execute(c.Request.Context(), appbook.SearchBooksRequest{
		Titles:      query.Titles,
		Authors:     query.Authors,
		ISBNs:       query.ISBNs,
		CategoryIDs: query.CategoryIDs,
		MinPrice:    query.MinPrice,
		MaxPrice:    query.MaxPrice,
		Page:        query.Page,
		PageSize:    query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
