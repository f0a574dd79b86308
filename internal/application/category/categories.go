package category

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/category"
)

// 分类管理用例集合
// 设计说明:分类用例都是薄编排(单领域服务调用),
// 合并在一个文件中,避免为每个CRUD动作单开文件

// CategoryView 分类视图DTO
type CategoryView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// toCategoryView 领域实体 → 视图DTO
func toCategoryView(c *category.Category) CategoryView {
	return CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// CreateCategoryUseCase 创建分类用例(管理员操作)
type CreateCategoryUseCase struct {
	categoryService category.Service
}

// NewCreateCategoryUseCase 创建分类用例
func NewCreateCategoryUseCase(categoryService category.Service) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{categoryService: categoryService}
}

// Execute 执行创建分类
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, name, description string) (*CategoryView, error) {
	c, err := uc.categoryService.CreateCategory(ctx, name, description)
	if err != nil {
		return nil, err
	}

	view := toCategoryView(c)
	return &view, nil
}

// UpdateCategoryUseCase 更新分类用例(管理员操作)
type UpdateCategoryUseCase struct {
	categoryService category.Service
}

// NewUpdateCategoryUseCase 创建更新分类用例
func NewUpdateCategoryUseCase(categoryService category.Service) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{categoryService: categoryService}
}

// Execute 执行更新分类
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, id uint, name, description string) (*CategoryView, error) {
	c, err := uc.categoryService.UpdateCategory(ctx, id, name, description)
	if err != nil {
		return nil, err
	}

	view := toCategoryView(c)
	return &view, nil
}

// DeleteCategoryUseCase 删除分类用例(管理员操作)
// 只解除与图书的关联,不删除图书
type DeleteCategoryUseCase struct {
	categoryService category.Service
}

// NewDeleteCategoryUseCase 创建删除分类用例
func NewDeleteCategoryUseCase(categoryService category.Service) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{categoryService: categoryService}
}

// Execute 执行删除分类
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, id uint) error {
	return uc.categoryService.DeleteCategory(ctx, id)
}

// GetCategoryUseCase 分类详情用例
type GetCategoryUseCase struct {
	categoryService category.Service
}

// NewGetCategoryUseCase 创建分类详情用例
func NewGetCategoryUseCase(categoryService category.Service) *GetCategoryUseCase {
	return &GetCategoryUseCase{categoryService: categoryService}
}

// Execute 查询分类详情
func (uc *GetCategoryUseCase) Execute(ctx context.Context, id uint) (*CategoryView, error) {
	c, err := uc.categoryService.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	view := toCategoryView(c)
	return &view, nil
}

// ListCategoriesUseCase 分类列表用例(公开接口)
type ListCategoriesUseCase struct {
	categoryService category.Service
}

// NewListCategoriesUseCase 创建分类列表用例
func NewListCategoriesUseCase(categoryService category.Service) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryService: categoryService}
}

// Execute 查询所有分类
func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]CategoryView, error) {
	categories, err := uc.categoryService.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]CategoryView, len(categories))
	for i, c := range categories {
		views[i] = toCategoryView(c)
	}
	return views, nil
}
