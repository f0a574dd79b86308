package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

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
	"github.com/xiebiao/bookshop/pkg/response"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

// main 主程序入口
// 依赖注入链：Repository ← Service ← UseCase ← Handler
// （wire.go提供等价的Wire注入器，运行 `wire gen ./cmd/api` 生成wire_gen.go后可切换）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 3. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.Init(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatalf("初始化链路追踪失败: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("关闭链路追踪失败: %v", err)
			}
		}()
	}

	// 5. 事件发布器（可选）
	// 未启用MQ时注入nil接口，订单事件发布退化为no-op
	var publisher apporder.EventPublisher
	if cfg.MQ.Enabled {
		p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			log.Fatalf("初始化RabbitMQ失败: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	// 6. 依赖注入（手动组装）

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	categoryService := category.NewService(categoryRepo)
	bookService := book.NewService(bookRepo, categoryRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore, jwtManager)
	refreshTokenUseCase := appuser.NewRefreshTokenUseCase(jwtManager)

	createCategoryUseCase := appcategory.NewCreateCategoryUseCase(categoryService)
	updateCategoryUseCase := appcategory.NewUpdateCategoryUseCase(categoryService)
	deleteCategoryUseCase := appcategory.NewDeleteCategoryUseCase(categoryService)
	getCategoryUseCase := appcategory.NewGetCategoryUseCase(categoryService)
	listCategoriesUseCase := appcategory.NewListCategoriesUseCase(categoryService)

	createBookUseCase := appbook.NewCreateBookUseCase(bookService)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService)
	searchBooksUseCase := appbook.NewSearchBooksUseCase(bookService)

	getCartUseCase := appcart.NewGetCartUseCase(cartRepo, bookRepo)
	addItemUseCase := appcart.NewAddItemUseCase(cartRepo, bookRepo, txManager)
	updateItemUseCase := appcart.NewUpdateItemUseCase(cartRepo, txManager)
	removeItemUseCase := appcart.NewRemoveItemUseCase(cartRepo, txManager)

	placeOrderUseCase := apporder.NewPlaceOrderUseCase(orderRepo, cartRepo, bookRepo, txManager, publisher)
	listOrdersUseCase := apporder.NewListOrdersUseCase(orderRepo)
	getOrderUseCase := apporder.NewGetOrderUseCase(orderRepo)
	updateStatusUseCase := apporder.NewUpdateStatusUseCase(orderRepo, publisher)
	listOrderItemsUseCase := apporder.NewListOrderItemsUseCase(orderRepo)
	getOrderItemUseCase := apporder.NewGetOrderItemUseCase(orderRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase, refreshTokenUseCase)
	categoryHandler := handler.NewCategoryHandler(createCategoryUseCase, updateCategoryUseCase, deleteCategoryUseCase, getCategoryUseCase, listCategoriesUseCase)
	bookHandler := handler.NewBookHandler(createBookUseCase, updateBookUseCase, deleteBookUseCase, getBookUseCase, searchBooksUseCase)
	cartHandler := handler.NewCartHandler(getCartUseCase, addItemUseCase, updateItemUseCase, removeItemUseCase)
	orderHandler := handler.NewOrderHandler(placeOrderUseCase, listOrdersUseCase, getOrderUseCase, updateStatusUseCase, listOrderItemsUseCase, getOrderItemUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 7. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(metrics.GinMiddleware())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}

	// 8. 注册路由
	registerRoutes(r, userHandler, categoryHandler, bookHandler, cartHandler, orderHandler, authMiddleware)

	// 9. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   指标:     http://localhost%s/metrics\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
// 权限分层：
// - 公开：注册/登录/刷新Token、图书搜索与详情、分类查询
// - 登录：登出、购物车、下单与订单查询
// - MANAGER：图书与分类的写操作、订单状态更新
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	categoryHandler *handler.CategoryHandler,
	bookHandler *handler.BookHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档（生产环境建议禁用或加访问控制）
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := authMiddleware.RequireAuth()
	requireManager := authMiddleware.RequireRole(string(user.RoleManager))

	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/refresh", userHandler.RefreshToken)
			users.POST("/logout", requireAuth, userHandler.Logout)
		}

		// 分类模块（查询公开，写操作需要MANAGER）
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.GET("/:id", categoryHandler.GetCategory)
			categories.POST("", requireAuth, requireManager, categoryHandler.CreateCategory)
			categories.PUT("/:id", requireAuth, requireManager, categoryHandler.UpdateCategory)
			categories.DELETE("/:id", requireAuth, requireManager, categoryHandler.DeleteCategory)
		}

		// 图书模块（搜索与详情公开，写操作需要MANAGER）
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.SearchBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.POST("", requireAuth, requireManager, bookHandler.CreateBook)
			books.PUT("/:id", requireAuth, requireManager, bookHandler.UpdateBook)
			books.DELETE("/:id", requireAuth, requireManager, bookHandler.DeleteBook)
		}

		// 购物车模块（需要登录）
		cart := v1.Group("/cart")
		cart.Use(requireAuth)
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:id", cartHandler.UpdateItem)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
		}

		// 订单模块（需要登录；状态更新需要MANAGER）
		orders := v1.Group("/orders")
		orders.Use(requireAuth)
		{
			orders.POST("", orderHandler.PlaceOrder)
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.GET("/:id/items", orderHandler.ListOrderItems)
			orders.GET("/:id/items/:item_id", orderHandler.GetOrderItem)
			orders.PUT("/:id/status", requireManager, orderHandler.UpdateStatus)
		}
	}
}
