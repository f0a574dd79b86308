package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/category"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Draft 图书写入表单
// CategoryIDs引用已存在的分类;创建与更新共用
type Draft struct {
	ISBN        string
	Title       string
	Author      string
	Price       int64 // 单位:分
	Description string
	CoverURL    string
	CategoryIDs []uint
}

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务逻辑和业务规则校验
// 2. 分类引用采用严格校验:不存在的分类ID直接报错,而非静默丢弃
// 3. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 创建图书
	// 业务规则:
	// - ISBN不能为空且不能重复
	// - 价格不能为负
	// - CategoryIDs必须全部指向已存在的分类
	CreateBook(ctx context.Context, draft Draft) (*Book, error)

	// UpdateBook 更新图书
	// 业务规则:
	// - 图书必须存在
	// - ISBN不能与其他图书冲突
	// - 整体替换标量字段与分类关联
	UpdateBook(ctx context.Context, id uint, draft Draft) (*Book, error)

	// DeleteBook 删除图书(物理删除)
	DeleteBook(ctx context.Context, id uint) error

	// GetBook 根据ID获取图书详情
	GetBook(ctx context.Context, id uint) (*Book, error)

	// SearchBooks 按过滤条件分页搜索图书
	// 公开接口,不需要权限校验
	SearchBooks(ctx context.Context, filter Filter, page PageParams) ([]*Book, int64, error)
}

// service 领域服务实现
type service struct {
	repo         Repository
	categoryRepo category.Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository, categoryRepo category.Repository) Service {
	return &service{repo: repo, categoryRepo: categoryRepo}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, draft Draft) (*Book, error) {
	// 1. 基本字段校验
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	// 2. ISBN查重(数据库唯一索引兜底,这里提前返回友好错误)
	existing, err := s.repo.FindByISBN(ctx, draft.ISBN)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrISBNDuplicate
	}

	// 3. 严格解析分类引用
	categories, err := s.resolveCategories(ctx, draft.CategoryIDs)
	if err != nil {
		return nil, err
	}

	// 4. 创建并持久化
	b := NewBook(draft.ISBN, draft.Title, draft.Author, draft.Price, draft.Description, categories)
	b.CoverURL = draft.CoverURL
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBook 更新图书
func (s *service) UpdateBook(ctx context.Context, id uint, draft Draft) (*Book, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	// 1. 查询图书(不存在则报错)
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 跨ID的ISBN冲突检查
	if draft.ISBN != b.ISBN {
		other, err := s.repo.FindByISBN(ctx, draft.ISBN)
		if err != nil && !apperrors.IsNotFound(err) {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, ErrISBNDuplicate
		}
	}

	// 3. 严格解析分类引用
	categories, err := s.resolveCategories(ctx, draft.CategoryIDs)
	if err != nil {
		return nil, err
	}

	// 4. 整体替换标量字段与分类关联
	b.UpdateInfo(draft.ISBN, draft.Title, draft.Author, draft.Description, draft.CoverURL)
	if err := b.UpdatePrice(draft.Price); err != nil {
		return nil, err
	}
	b.ReplaceCategories(categories)

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	// 先确认存在,保证删除不存在的图书返回ErrBookNotFound
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// SearchBooks 按过滤条件分页搜索
func (s *service) SearchBooks(ctx context.Context, filter Filter, page PageParams) ([]*Book, int64, error) {
	clauses, err := filter.Clauses()
	if err != nil {
		return nil, 0, err
	}
	page.Normalize()
	return s.repo.Search(ctx, clauses, page)
}

// resolveCategories 严格解析分类ID为实体
// 任一ID不存在即返回ErrCategoryNotFound
func (s *service) resolveCategories(ctx context.Context, ids []uint) ([]*category.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	unique := uniqueIDs(ids)
	categories, err := s.categoryRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(unique) {
		return nil, category.ErrCategoryNotFound
	}
	return categories, nil
}

// validateDraft 图书表单校验
func validateDraft(draft Draft) error {
	if draft.ISBN == "" {
		return ErrInvalidISBN
	}
	if draft.Title == "" || len([]rune(draft.Title)) > 200 {
		return ErrInvalidTitle
	}
	if draft.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// uniqueIDs ID去重(保持输入顺序)
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
