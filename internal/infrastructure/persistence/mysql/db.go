package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 注意：这里使用GORM的模型定义（带tag），不是domain层的实体
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&CategoryModel{},
		&BookModel{},
		&CartModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
// 4. Email存储前已转为小写，uniqueIndex即实现"不区分大小写唯一"
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱(小写)"`
	Password  string         `gorm:"size:255;not null;comment:密码(bcrypt加密)"`
	Nickname  string         `gorm:"size:50;not null;comment:昵称"`
	Role      string         `gorm:"size:20;not null;default:USER;comment:角色(USER/MANAGER)"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// CategoryModel GORM分类模型
type CategoryModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:50;not null;comment:分类名"`
	Description string    `gorm:"size:255;comment:描述"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CategoryModel) TableName() string {
	return "categories"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. ISBN有唯一索引,防止重复
// 3. 与分类为多对多关系,连接表book_categories
// 4. 图书删除为物理删除(不挂DeletedAt),历史订单靠明细快照保留信息
type BookModel struct {
	ID          uint            `gorm:"primaryKey"`
	ISBN        string          `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	Title       string          `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author      string          `gorm:"index:idx_search;size:100;comment:作者"`
	Price       int64           `gorm:"index;not null;comment:价格(分)"`
	Description string          `gorm:"type:text;comment:图书描述"`
	CoverURL    string          `gorm:"size:255;comment:封面图URL"`
	Categories  []CategoryModel `gorm:"many2many:book_categories;"`
	CreatedAt   time.Time       `gorm:"index;comment:创建时间"`
	UpdatedAt   time.Time       `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// CartModel GORM购物车模型
// user_id唯一索引保证每个用户同一时刻最多一个购物车
type CartModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"uniqueIndex;not null;comment:用户ID"`
	Items     []CartItemModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time       `gorm:"comment:创建时间"`
	UpdatedAt time.Time       `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CartModel) TableName() string {
	return "shopping_carts"
}

// CartItemModel GORM购物车条目模型
// (cart_id, book_id)复合唯一索引是并发upsert安全的根基:
// 两个请求同时为同一本书插入条目时,输掉竞争的一方收到唯一索引冲突,
// 仓储将其转换为ErrItemDuplicate,应用层改走更新路径
type CartItemModel struct {
	ID        uint      `gorm:"primaryKey"`
	CartID    uint      `gorm:"uniqueIndex:idx_cart_book;not null;comment:购物车ID"`
	BookID    uint      `gorm:"uniqueIndex:idx_cart_book;not null;comment:图书ID"`
	Quantity  int       `gorm:"not null;comment:数量"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CartItemModel) TableName() string {
	return "cart_items"
}

// OrderModel GORM订单模型
// 设计说明:
// 1. 与OrderItemModel是一对多关系
// 2. OrderNo有唯一索引(业务主键)
// 3. 订单为软删除(DeletedAt),所有读路径经GORM自动过滤墓碑行
type OrderModel struct {
	ID              uint             `gorm:"primaryKey"`
	OrderNo         string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	UserID          uint             `gorm:"index;not null;comment:买家用户ID"`
	ShippingAddress string           `gorm:"size:255;not null;comment:收货地址"`
	Total           int64            `gorm:"not null;comment:订单总金额(分)"`
	Status          string           `gorm:"index;size:16;not null;default:PENDING;comment:订单状态"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt       time.Time        `gorm:"comment:更新时间"`
	DeletedAt       gorm.DeletedAt   `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// 设计说明:
// 1. Price/BookTitle/BookISBN是下单时刻的快照,图书改价或删除不影响历史订单
// 2. OrderID外键关联orders表
type OrderItemModel struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   uint   `gorm:"index;not null;comment:订单ID"`
	BookID    uint   `gorm:"index;not null;comment:图书ID"`
	BookTitle string `gorm:"size:200;not null;comment:下单时书名快照"`
	BookISBN  string `gorm:"size:20;not null;comment:下单时ISBN快照"`
	Quantity  int    `gorm:"not null;comment:购买数量"`
	Price     int64  `gorm:"not null;comment:下单时单价(分)"`
}

// TableName 指定表名
func (OrderItemModel) TableName() string {
	return "order_items"
}
