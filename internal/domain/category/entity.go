package category

import (
	"time"
)

// Category 图书分类实体
// 设计说明：
// 1. 分类与图书是多对多关系，关联关系由图书一侧维护
// 2. 删除分类只解除与图书的关联，不级联删除图书
type Category struct {
	ID          uint
	Name        string // 分类名(≤50字符)
	Description string // 描述(≤255字符)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory 创建分类（工厂方法）
func NewCategory(name, description string) *Category {
	now := time.Now()
	return &Category{
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateInfo 更新分类信息
func (c *Category) UpdateInfo(name, description string) {
	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now()
}
