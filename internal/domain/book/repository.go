package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书(含分类关联)
	// ISBN冲突返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书(预加载分类)
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书(用于跨ID查重)
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// Update 更新图书信息并整体替换分类关联
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(物理删除,同时清理分类关联)
	Delete(ctx context.Context, id uint) error

	// Search 按过滤条件分页查询图书
	// clauses由Filter.Clauses()产出,字段间AND,字段内OR
	Search(ctx context.Context, clauses []Clause, page PageParams) ([]*Book, int64, error)
}

// PageParams 分页参数
type PageParams struct {
	Page     int // 页码(从1开始)
	PageSize int // 每页数量
}

// Offset 计算SQL偏移量
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Normalize 规范化分页参数(页码最小为1,页大小限制在1-100)
func (p *PageParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// =========================================
// 搜索过滤条件
// =========================================
// 设计说明:
// 1. Filter是面向调用方的查询表单,同字段多值为OR语义
// 2. Clauses()将Filter归约为带标签的条件子句列表,子句间为AND
// 3. 子句的SQL翻译由infrastructure层负责,domain层可独立测试归约逻辑

// Op 子句操作符
type Op string

const (
	// OpContainsAny 字段包含任一候选子串(不区分大小写)
	OpContainsAny Op = "contains_any"
	// OpInCategories 图书属于任一指定分类
	OpInCategories Op = "in_categories"
	// OpPriceGTE 价格下界(含)
	OpPriceGTE Op = "price_gte"
	// OpPriceLTE 价格上界(含)
	OpPriceLTE Op = "price_lte"
)

// Clause 单个过滤子句
type Clause struct {
	Field    string   // 目标字段(title/author/isbn/category/price)
	Op       Op       // 操作符
	Strings  []string // 字符串候选值(OpContainsAny)
	IDs      []uint   // 分类ID候选值(OpInCategories)
	Price    int64    // 价格边界(OpPriceGTE/OpPriceLTE)
}

// Filter 图书搜索过滤条件
// 空字段不参与过滤;MinPrice/MaxPrice为nil表示不限
type Filter struct {
	Titles      []string
	Authors     []string
	ISBNs       []string
	CategoryIDs []uint
	MinPrice    *int64
	MaxPrice    *int64
}

// Clauses 将过滤条件归约为子句列表
// 业务规则:MinPrice>MaxPrice时返回ErrInvalidPriceRange
func (f Filter) Clauses() ([]Clause, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, ErrInvalidPriceRange
	}

	var clauses []Clause
	if vals := nonEmpty(f.Titles); len(vals) > 0 {
		clauses = append(clauses, Clause{Field: "title", Op: OpContainsAny, Strings: vals})
	}
	if vals := nonEmpty(f.Authors); len(vals) > 0 {
		clauses = append(clauses, Clause{Field: "author", Op: OpContainsAny, Strings: vals})
	}
	if vals := nonEmpty(f.ISBNs); len(vals) > 0 {
		clauses = append(clauses, Clause{Field: "isbn", Op: OpContainsAny, Strings: vals})
	}
	if len(f.CategoryIDs) > 0 {
		clauses = append(clauses, Clause{Field: "category", Op: OpInCategories, IDs: f.CategoryIDs})
	}
	if f.MinPrice != nil {
		clauses = append(clauses, Clause{Field: "price", Op: OpPriceGTE, Price: *f.MinPrice})
	}
	if f.MaxPrice != nil {
		clauses = append(clauses, Clause{Field: "price", Op: OpPriceLTE, Price: *f.MaxPrice})
	}
	return clauses, nil
}

// nonEmpty 过滤掉空字符串候选值
func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
