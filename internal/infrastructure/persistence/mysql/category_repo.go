package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/category"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// categoryRepository 分类仓储实现(MySQL)
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

// Create 创建分类
func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	model := &CategoryModel{
		Name:        c.Name,
		Description: c.Description,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建分类失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找分类
func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	var model CategoryModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}

	return toCategoryEntity(&model), nil
}

// FindByIDs 批量查询分类实体(忽略不存在的ID)
func (r *categoryRepository) FindByIDs(ctx context.Context, ids []uint) ([]*category.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []CategoryModel
	err := getDB(ctx, r.db).Where("id IN ?", ids).Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询分类失败")
	}

	categories := make([]*category.Category, len(models))
	for i := range models {
		categories[i] = toCategoryEntity(&models[i])
	}
	return categories, nil
}

// Update 更新分类信息
func (r *categoryRepository) Update(ctx context.Context, c *category.Category) error {
	result := getDB(ctx, r.db).Model(&CategoryModel{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"name":        c.Name,
		"description": c.Description,
		"updated_at":  c.UpdatedAt,
	})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新分类失败")
	}
	if result.RowsAffected == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

// Delete 删除分类
// 业务规则:只删除分类本身并清理与图书的关联,不级联删除图书
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&CategoryModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除分类失败")
		}
		if result.RowsAffected == 0 {
			return category.ErrCategoryNotFound
		}

		// 清理连接表中的残留关联
		if err := tx.Exec("DELETE FROM book_categories WHERE category_model_id = ?", id).Error; err != nil {
			return apperrors.Wrap(err, "清理图书分类关联失败")
		}
		return nil
	})
}

// List 查询所有分类
func (r *categoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	var models []CategoryModel
	err := getDB(ctx, r.db).Order("id ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}

	categories := make([]*category.Category, len(models))
	for i := range models {
		categories[i] = toCategoryEntity(&models[i])
	}
	return categories, nil
}

// toCategoryEntity GORM模型 → 领域实体
func toCategoryEntity(model *CategoryModel) *category.Category {
	return &category.Category{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
