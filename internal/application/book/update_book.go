package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// UpdateBookUseCase 更新图书用例(管理员操作)
// 整体替换标量字段与分类关联,跨ID的ISBN冲突由领域服务校验
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建更新图书用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

// UpdateBookRequest 更新图书请求DTO
type UpdateBookRequest struct {
	ID          uint
	ISBN        string
	Title       string
	Author      string
	Price       int64 // 价格(分)
	Description string
	CoverURL    string
	CategoryIDs []uint
}

// Execute 执行更新图书
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookView, error) {
	b, err := uc.bookService.UpdateBook(ctx, req.ID, book.Draft{
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

// DeleteBookUseCase 删除图书用例(管理员操作,物理删除)
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService}
}

// Execute 执行删除图书
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	return uc.bookService.DeleteBook(ctx, id)
}
