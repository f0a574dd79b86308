package dto

// BookRequest HTTP层图书写入请求（创建与更新共用）
// 说明：
// 1. 价格以"分"为单位传输（int64，避免浮点精度问题）
// 2. category_ids必须全部指向已存在的分类，否则请求失败
type BookRequest struct {
	ISBN        string `json:"isbn" binding:"required,max=20"`
	Title       string `json:"title" binding:"required,max=200"`
	Author      string `json:"author" binding:"max=100"`
	Price       int64  `json:"price" binding:"gte=0"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url" binding:"omitempty,url,max=255"`
	CategoryIDs []uint `json:"category_ids"`
}

// SearchBooksQuery 图书搜索查询参数
// 同名参数可重复出现（?title=Go&title=实战），同字段多值为OR语义
type SearchBooksQuery struct {
	Titles      []string `form:"title"`
	Authors     []string `form:"author"`
	ISBNs       []string `form:"isbn"`
	CategoryIDs []uint   `form:"category_id"`
	MinPrice    *int64   `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice    *int64   `form:"max_price" binding:"omitempty,gte=0"`
	Page        int      `form:"page"`
	PageSize    int      `form:"page_size"`
}
