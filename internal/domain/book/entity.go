package book

import (
	"time"

	"github.com/xiebiao/bookshop/internal/domain/category"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是图书聚合的根实体,包含图书的核心属性
// 2. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 3. ISBN作为业务唯一标识(数据库层保证唯一性)
// 4. Categories为多对多关联,创建/更新时只接受已存在的分类
type Book struct {
	ID          uint
	ISBN        string // ISBN号
	Title       string // 书名
	Author      string // 作者
	Price       int64  // 价格(单位:分,1元=100分)
	Description string // 图书描述
	CoverURL    string // 封面图URL
	Categories  []*category.Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook 创建新图书(工厂方法)
// price单位为分,不能为负;分类ID需调用方先解析为实体
func NewBook(isbn, title, author string, price int64, description string, categories []*category.Category) *Book {
	now := time.Now()
	return &Book{
		ISBN:        isbn,
		Title:       title,
		Author:      author,
		Price:       price,
		Description: description,
		Categories:  categories,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdatePrice 更新价格(领域行为)
// 业务规则:价格不能为负,0元(赠品、定价未定)是合法价格
func (b *Book) UpdatePrice(newPrice int64) error {
	if newPrice < 0 {
		return ErrInvalidPrice
	}
	b.Price = newPrice
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateInfo 整体替换基本信息
// 更新采用全量覆盖语义,空字符串同样覆盖(如清空描述)
func (b *Book) UpdateInfo(isbn, title, author, description, coverURL string) {
	b.ISBN = isbn
	b.Title = title
	b.Author = author
	b.Description = description
	b.CoverURL = coverURL
	b.UpdatedAt = time.Now()
}

// ReplaceCategories 整体替换分类关联
func (b *Book) ReplaceCategories(categories []*category.Category) {
	b.Categories = categories
	b.UpdatedAt = time.Now()
}

// CategoryIDs 返回当前关联的分类ID列表
func (b *Book) CategoryIDs() []uint {
	ids := make([]uint, 0, len(b.Categories))
	for _, c := range b.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
