package order

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNo 生成订单号
// 订单号设计原则:
// 1. 全局唯一(数据库唯一索引兜底)
// 2. 时间有序(便于归档和排查)
// 3. 不可预测(防止恶意遍历)
//
// 格式:ORD + 时间戳(秒) + 6位随机数
// 示例:ORD1699248000123456
func GenerateOrderNo() string {
	timestamp := time.Now().Unix()
	random := rand.Intn(1000000)
	return fmt.Sprintf("ORD%d%06d", timestamp, random)
}
