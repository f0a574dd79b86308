package category

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 分类领域错误定义
var (
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")

	// ErrInvalidName 分类名不合法
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "分类名不能为空且不超过50个字符")

	// ErrInvalidDescription 描述不合法
	ErrInvalidDescription = apperrors.New(apperrors.ErrCodeInvalidParams, "分类描述不能超过255个字符")
)
