package book

import (
	"fmt"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// BookView 图书视图DTO
// 各用例共用的响应形态，价格同时给出分与元（前端直接展示）
type BookView struct {
	ID          uint           `json:"id"`
	ISBN        string         `json:"isbn"`
	Title       string         `json:"title"`
	Author      string         `json:"author"`
	Price       int64          `json:"price"`      // 价格(分)
	PriceYuan   string         `json:"price_yuan"` // 价格(元,展示用)
	Description string         `json:"description"`
	CoverURL    string         `json:"cover_url"`
	Categories  []CategoryView `json:"categories"`
	CreatedAt   string         `json:"created_at"`
}

// CategoryView 分类视图DTO
type CategoryView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// toBookView 领域实体 → 视图DTO
func toBookView(b *book.Book) BookView {
	categories := make([]CategoryView, len(b.Categories))
	for i, c := range b.Categories {
		categories[i] = CategoryView{ID: c.ID, Name: c.Name}
	}

	return BookView{
		ID:          b.ID,
		ISBN:        b.ISBN,
		Title:       b.Title,
		Author:      b.Author,
		Price:       b.Price,
		PriceYuan:   formatPrice(b.Price),
		Description: b.Description,
		CoverURL:    b.CoverURL,
		Categories:  categories,
		CreatedAt:   b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// formatPrice 格式化价格(分→元)
func formatPrice(priceFen int64) string {
	yuan := float64(priceFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}
