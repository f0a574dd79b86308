package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/category"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 图书与分类是多对多关系,写入时同步维护book_categories连接表
// 2. 搜索条件由domain层的Clause列表驱动,这里只负责翻译为SQL
// 3. 图书删除为物理删除(历史订单依赖明细快照,不依赖图书行)
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书(含分类关联)
// ISBN唯一性由数据库UNIQUE索引保证,冲突转换为ErrISBNDuplicate
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	// Omit("Categories.*")防止GORM回写分类行本身,只插入关联
	if err := getDB(ctx, r.db).Omit("Categories.*").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书(预加载分类)
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Preload("Categories").First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Preload("Categories").Where("isbn = ?", isbn).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Update 更新图书信息并整体替换分类关联
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	db := getDB(ctx, r.db)

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&BookModel{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
			"isbn":        b.ISBN,
			"title":       b.Title,
			"author":      b.Author,
			"price":       b.Price,
			"description": b.Description,
			"cover_url":   b.CoverURL,
			"updated_at":  b.UpdatedAt,
		})
		if result.Error != nil {
			if isDuplicateError(result.Error) {
				return book.ErrISBNDuplicate
			}
			return apperrors.Wrap(result.Error, "更新图书失败")
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}

		// 整体替换分类关联
		model := &BookModel{ID: b.ID}
		categories := make([]CategoryModel, len(b.Categories))
		for i, c := range b.Categories {
			categories[i] = CategoryModel{ID: c.ID}
		}
		if err := tx.Model(model).Omit("Categories.*").Association("Categories").Replace(categories); err != nil {
			return apperrors.Wrap(err, "更新图书分类关联失败")
		}
		return nil
	})
}

// Delete 物理删除图书,同时清理分类关联
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM book_categories WHERE book_model_id = ?", id).Error; err != nil {
			return apperrors.Wrap(err, "清理图书分类关联失败")
		}

		result := tx.Delete(&BookModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除图书失败")
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}
		return nil
	})
}

// Search 按过滤条件分页查询图书
// 子句间AND,子句内候选值OR,字符串匹配不区分大小写
func (r *bookRepository) Search(ctx context.Context, clauses []book.Clause, page book.PageParams) ([]*book.Book, int64, error) {
	db := getDB(ctx, r.db)
	query := db.Model(&BookModel{})

	for _, clause := range clauses {
		query = applyClause(query, clause)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	var models []BookModel
	err := query.Preload("Categories").
		Order("id ASC").
		Limit(page.PageSize).
		Offset(page.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

// applyClause 将单个过滤子句翻译为SQL条件
func applyClause(query *gorm.DB, clause book.Clause) *gorm.DB {
	switch clause.Op {
	case book.OpContainsAny:
		// 同字段多候选值为OR语义: (LOWER(f) LIKE ? OR LOWER(f) LIKE ?)
		conds := make([]string, len(clause.Strings))
		args := make([]interface{}, len(clause.Strings))
		for i, v := range clause.Strings {
			conds[i] = "LOWER(" + clause.Field + ") LIKE ?"
			args[i] = "%" + strings.ToLower(v) + "%"
		}
		return query.Where(strings.Join(conds, " OR "), args...)

	case book.OpInCategories:
		return query.Where(
			"id IN (SELECT book_model_id FROM book_categories WHERE category_model_id IN ?)",
			clause.IDs,
		)

	case book.OpPriceGTE:
		return query.Where("price >= ?", clause.Price)

	case book.OpPriceLTE:
		return query.Where("price <= ?", clause.Price)
	}
	return query
}

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	categories := make([]CategoryModel, len(b.Categories))
	for i, c := range b.Categories {
		categories[i] = CategoryModel{ID: c.ID}
	}

	return &BookModel{
		ID:          b.ID,
		ISBN:        b.ISBN,
		Title:       b.Title,
		Author:      b.Author,
		Price:       b.Price,
		Description: b.Description,
		CoverURL:    b.CoverURL,
		Categories:  categories,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	categories := make([]*category.Category, len(model.Categories))
	for i := range model.Categories {
		categories[i] = toCategoryEntity(&model.Categories[i])
	}

	return &book.Book{
		ID:          model.ID,
		ISBN:        model.ISBN,
		Title:       model.Title,
		Author:      model.Author,
		Price:       model.Price,
		Description: model.Description,
		CoverURL:    model.CoverURL,
		Categories:  categories,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
