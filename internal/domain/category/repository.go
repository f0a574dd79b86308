package category

import (
	"context"
)

// Repository 分类仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建分类
	Create(ctx context.Context, category *Category) error

	// FindByID 根据ID查找分类
	// 不存在返回ErrCategoryNotFound
	FindByID(ctx context.Context, id uint) (*Category, error)

	// FindByIDs 批量查询分类实体（忽略不存在的ID）
	// 图书写入路径用它装配分类关联并校验引用（数量不符即有未知ID）
	FindByIDs(ctx context.Context, ids []uint) ([]*Category, error)

	// Update 更新分类信息
	Update(ctx context.Context, category *Category) error

	// Delete 删除分类
	// 只删除分类本身并解除与图书的关联（关联表清理），不删除图书
	Delete(ctx context.Context, id uint) error

	// List 查询所有分类
	List(ctx context.Context) ([]*Category, error)
}
