package container

import (
	"log"
	"sync"

	"employee-http-service/internal/domain/services"
	"employee-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config

	// 基础服务
	jwtService services.InterfaceJWTService

	// 数据存储服务
	redisService services.InterfaceRedisService

	// 业务服务
	authService     services.InterfaceAuthService
	employeeService services.InterfaceEmployeeService
	uploadService   services.InterfaceUploadService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)

	// 初始化Redis服务，连接失败时降级为直接读库
	redisService := services.NewRedisService(c.config)
	if err := redisService.Ping(); err != nil {
		log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
		c.redisService = nil
	} else {
		c.redisService = redisService
	}

	// 初始化业务服务
	c.uploadService = services.NewUploadService(c.config)
	c.employeeService = services.NewEmployeeService(c.db, c.config)
	c.authService = services.NewAuthService(c.db, c.config, c.jwtService)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "auth":
		return c.authService
	case "employee":
		return c.employeeService
	case "upload":
		return c.uploadService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetRedisService 获取Redis服务，可能为nil
func (c *ServiceContainer) GetRedisService() services.InterfaceRedisService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.redisService
}
