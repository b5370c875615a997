package routes

import (
	"time"

	"employee-http-service/internal/app/controllers"
	"employee-http-service/internal/app/middleware"
	"employee-http-service/internal/domain/services/container"
	"employee-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg)

	// 静态托管上传的图片
	r.Static("/uploads", cfg.UploadDir)

	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")

	// 添加IP限流中间件 - 每秒允许10个请求，最多突发20个请求
	api.Use(middleware.IPRateLimiter(10, 20))

	registerHealthRoutes(api, container)
	registerAuthRoutes(api, container)
	registerEmployeeRoutes(api, container)
}

// registerHealthRoutes 注册健康检查路由
func registerHealthRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "ping")) // 兼容Docker健康检查的路由

	healthGroup := api.Group("/health")
	healthGroup.GET("/status", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Second}), controllers.HandleHealthFunc(container, "status"))
	healthGroup.GET("/cache-stats", controllers.HandleHealthFunc(container, "cacheStats"))
}

// registerAuthRoutes 注册认证路由
func registerAuthRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	api.POST("/register", controllers.HandleAuthFunc(container, "register"))
	api.POST("/login", controllers.HandleAuthFunc(container, "login"))

	// 需要认证的路由
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.Authentication())
	authGroup.GET("/me", controllers.HandleAuthFunc(container, "me"))
}

// registerEmployeeRoutes 注册员工记录路由
func registerEmployeeRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	api.GET("/employee", controllers.HandleEmployeeFunc(container, "getEmployees"))
	api.POST("/employee", controllers.HandleEmployeeFunc(container, "createEmployee"))
	api.PUT("/employee/:id", controllers.HandleEmployeeFunc(container, "updateEmployee"))
	api.DELETE("/employee/:id", controllers.HandleEmployeeFunc(container, "deleteEmployee"))
}
