//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	appcategory "github.com/xiebiao/bookshop/internal/application/category"
	apporder "github.com/xiebiao/bookshop/internal/application/order"
	appuser "github.com/xiebiao/bookshop/internal/application/user"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/category"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/jwt"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层依赖
// TxManager同时满足购物车与订单应用层各自声明的事务接口
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewCategoryRepository,
	mysql.NewBookRepository,
	mysql.NewCartRepository,
	mysql.NewOrderRepository,
	mysql.NewTxManager,
	wire.Bind(new(appcart.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(apporder.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	category.NewService,
	book.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewRefreshTokenUseCase,
	appcategory.NewCreateCategoryUseCase,
	appcategory.NewUpdateCategoryUseCase,
	appcategory.NewDeleteCategoryUseCase,
	appcategory.NewGetCategoryUseCase,
	appcategory.NewListCategoriesUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewSearchBooksUseCase,
	appcart.NewGetCartUseCase,
	appcart.NewAddItemUseCase,
	appcart.NewUpdateItemUseCase,
	appcart.NewRemoveItemUseCase,
	apporder.NewPlaceOrderUseCase,
	apporder.NewListOrdersUseCase,
	apporder.NewGetOrderUseCase,
	apporder.NewUpdateStatusUseCase,
	apporder.NewListOrderItemsUseCase,
	apporder.NewGetOrderItemUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	providePublisher,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewCategoryHandler,
	handler.NewBookHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
)

// provideJWTManager 从配置创建JWT管理器
// Config包含多个字段，Wire无法自动提取，需要手动编写Provider
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建Session存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// providePublisher 按配置创建事件发布器
// 未启用MQ时返回nil接口，订单事件发布退化为no-op
func providePublisher(cfg *config.Config) (apporder.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
}

// provideGinEngine 创建并配置Gin引擎
// 路由注册与main.go中的registerRoutes保持一致
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	categoryHandler *handler.CategoryHandler,
	bookHandler *handler.BookHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(metrics.GinMiddleware())

	// 健康检查、/metrics、Swagger都在registerRoutes中注册
	registerRoutes(r, userHandler, categoryHandler, bookHandler, cartHandler, orderHandler, authMiddleware)

	return r
}

// InitializeApp 初始化整个应用
// Wire会按正确的顺序调用所有Provider，生成wire_gen.go
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)

	return nil, nil
}
