package user

import (
	"time"
)

// Role 用户角色
// 设计说明：
// 1. USER是注册时的默认角色，只能操作自己的购物车和订单
// 2. MANAGER是管理员角色，额外拥有目录写入和订单状态变更权限
type Role string

const (
	RoleUser    Role = "USER"
	RoleManager Role = "MANAGER"
)

// Valid 判断角色取值是否合法
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleManager
}

// User 用户实体（聚合根）
// DDD设计说明：
// 1. User是用户聚合的根实体，包含用户的核心属性
// 2. 密码已加密存储（bcrypt），不应该有GetPassword()等方法暴露明文
// 3. Email在写入前统一转小写（邮箱唯一性不区分大小写）
// 4. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Nickname  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码；角色固定为USER，
// MANAGER只能由运维直接修改数据产生
func NewUser(email, hashedPassword, nickname string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Nickname:  nickname,
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsManager 是否为管理员
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// UpdateNickname 更新昵称（领域行为）
func (u *User) UpdateNickname(nickname string) {
	u.Nickname = nickname
	u.UpdatedAt = time.Now()
}
