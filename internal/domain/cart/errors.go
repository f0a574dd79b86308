package cart

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 购物车领域错误定义
var (
	// ErrCartNotFound 购物车不存在
	ErrCartNotFound = apperrors.New(apperrors.ErrCodeCartNotFound, "购物车不存在")

	// ErrCartItemNotFound 购物车条目不存在
	ErrCartItemNotFound = apperrors.New(apperrors.ErrCodeCartItemNotFound, "购物车条目不存在")

	// ErrItemDuplicate 条目已存在((cart_id, book_id)唯一索引冲突)
	// 并发插入竞争失败的一方收到此错误后改走更新路径
	ErrItemDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "该图书已在购物车中")

	// ErrInvalidQuantity 无效的数量
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")
)
