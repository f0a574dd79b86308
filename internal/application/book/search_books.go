package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// SearchBooksUseCase 图书搜索用例
// 设计说明:
// 1. 公开接口,不需要权限校验
// 2. 同字段多候选值为OR语义,字段之间为AND语义
// 3. 不带任何过滤条件时退化为分页列表查询
type SearchBooksUseCase struct {
	bookService book.Service
}

// NewSearchBooksUseCase 创建搜索用例
func NewSearchBooksUseCase(bookService book.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookService: bookService}
}

// SearchBooksRequest 搜索请求DTO
type SearchBooksRequest struct {
	Titles      []string
	Authors     []string
	ISBNs       []string
	CategoryIDs []uint
	MinPrice    *int64 // 价格下界(分,含)
	MaxPrice    *int64 // 价格上界(分,含)
	Page        int
	PageSize    int
}

// SearchBooksResponse 搜索响应DTO
type SearchBooksResponse struct {
	List       []BookView `json:"list"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// Execute 执行搜索
func (uc *SearchBooksUseCase) Execute(ctx context.Context, req SearchBooksRequest) (*SearchBooksResponse, error) {
	filter := book.Filter{
		Titles:      req.Titles,
		Authors:     req.Authors,
		ISBNs:       req.ISBNs,
		CategoryIDs: req.CategoryIDs,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
	}
	page := book.PageParams{Page: req.Page, PageSize: req.PageSize}
	page.Normalize()

	books, total, err := uc.bookService.SearchBooks(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	list := make([]BookView, len(books))
	for i, b := range books {
		list[i] = toBookView(b)
	}

	totalPages := int(total) / page.PageSize
	if int(total)%page.PageSize != 0 {
		totalPages++
	}

	return &SearchBooksResponse{
		List:       list,
		Total:      total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建图书详情用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 查询图书详情
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookView, error) {
	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	view := toBookView(b)
	return &view, nil
}
