package order

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在(或已删除/不属于当前用户)
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrOrderItemNotFound 订单明细不存在
	ErrOrderItemNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单明细不存在")

	// ErrInvalidStatus 未定义的订单状态值
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "无效的订单状态")

	// ErrInvalidStatusTransition 非法的状态转换
	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeBusinessError, "订单状态不允许此操作")

	// ErrInvalidAddress 收货地址不合法
	ErrInvalidAddress = apperrors.New(apperrors.ErrCodeInvalidParams, "收货地址不能为空")
)
