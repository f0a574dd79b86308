package category

import (
	"context"
)

// Service 分类领域服务
// 业务规则都比较简单：名称与描述的长度约束，其余为直通CRUD
type Service interface {
	// CreateCategory 创建分类
	CreateCategory(ctx context.Context, name, description string) (*Category, error)

	// UpdateCategory 更新分类
	// 分类不存在返回ErrCategoryNotFound
	UpdateCategory(ctx context.Context, id uint, name, description string) (*Category, error)

	// DeleteCategory 删除分类（仅解除图书关联）
	DeleteCategory(ctx context.Context, id uint) error

	// GetCategory 查询分类详情
	GetCategory(ctx context.Context, id uint) (*Category, error)

	// ListCategories 查询所有分类
	ListCategories(ctx context.Context) ([]*Category, error)
}

type service struct {
	repo Repository
}

// NewService 创建分类领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCategory(ctx context.Context, name, description string) (*Category, error) {
	if err := validate(name, description); err != nil {
		return nil, err
	}

	c := NewCategory(name, description)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) UpdateCategory(ctx context.Context, id uint, name, description string) (*Category, error) {
	if err := validate(name, description); err != nil {
		return nil, err
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.UpdateInfo(name, description)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) GetCategory(ctx context.Context, id uint) (*Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}

// validate 分类字段校验
func validate(name, description string) error {
	if name == "" || len([]rune(name)) > 50 {
		return ErrInvalidName
	}
	if len([]rune(description)) > 255 {
		return ErrInvalidDescription
	}
	return nil
}
