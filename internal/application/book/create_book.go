package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// CreateBookUseCase 创建图书用例(管理员操作)
// 设计说明:
// 1. ISBN唯一性与分类存在性校验由领域服务负责
// 2. 不存在的分类ID直接报错,拒绝静默丢弃(保证写入结果与请求一致)
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建图书用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService}
}

// CreateBookRequest 创建图书请求DTO
type CreateBookRequest struct {
	ISBN        string
	Title       string
	Author      string
	Price       int64 // 价格(分)
	Description string
	CoverURL    string
	CategoryIDs []uint
}

// Execute 执行创建图书
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookView, error) {
	b, err := uc.bookService.CreateBook(ctx, book.Draft{
		ISBN:        req.ISBN,
		Title:       req.Title,
		Author:      req.Author,
		Price:       req.Price,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		return nil, err
	}

	view := toBookView(b)
	return &view, nil
}
