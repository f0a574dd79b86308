package book

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格不能为负数")

	// ErrInvalidTitle 无效的书名
	ErrInvalidTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空且不超过200字符")

	// ErrInvalidISBN ISBN不能为空
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN不能为空")

	// ErrInvalidPriceRange 价格区间错误
	ErrInvalidPriceRange = apperrors.New(apperrors.ErrCodeInvalidParams, "价格区间错误(最低价不能大于最高价)")
)
