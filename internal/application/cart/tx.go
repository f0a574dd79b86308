package cart

import (
	"context"
)

// TxManager 事务边界
// 在应用层按使用方声明接口(mysql.TxManager是其实现),
// 单元测试时可以注入直通的假实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
