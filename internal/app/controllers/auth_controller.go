package controllers

import (
	"errors"

	"employee-http-service/internal/domain/services"
	"employee-http-service/internal/domain/services/container"
	"employee-http-service/internal/error/code"
	"employee-http-service/internal/error/response"
	"employee-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 统一错误响应结构（用于Swagger文档）
type ErrorResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// InterfaceAuthController 定义认证控制器接口
type InterfaceAuthController interface {
	Register()
	Login()
	Me()
}

// AuthController 处理用户注册和登录相关的请求
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController 创建一个新的认证控制器
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// RegisterRequest 注册请求参数
type RegisterRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest 登录请求参数
type LoginRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 注册新用户
// @Summary      用户注册
// @Description  使用用户名和密码注册新账号，成功后返回JWT令牌
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "注册信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /register [post]
func (c *AuthController) Register() {
	var req RegisterRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "用户名和密码不能为空", nil)
		return
	}

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	result, err := authService.Register(req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExist) {
			response.Fail(c.Ctx, code.ErrUserAlreadyExist, nil)
			return
		}
		logger.Error("用户注册失败: %v", err)
		response.FailWithMessage(c.Ctx, code.ErrUnknown, "注册失败", nil)
		return
	}

	response.Created(c.Ctx, gin.H{
		"token":   result.Token,
		"user_id": result.UserID,
	})
}

// Login 用户登录
// @Summary      用户登录
// @Description  校验用户名和密码，成功后返回JWT令牌；用户不存在与密码错误返回相同的错误
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "用户名和密码不能为空", nil)
		return
	}

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	result, err := authService.Login(req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Fail(c.Ctx, code.ErrInvalidCredentials, nil)
			return
		}
		logger.Error("用户登录失败: %v", err)
		response.FailWithMessage(c.Ctx, code.ErrUnknown, "登录失败", nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"token":   result.Token,
		"user_id": result.UserID,
	})
}

// Me 返回当前登录用户信息
// @Summary      当前用户
// @Description  根据JWT令牌返回当前登录用户的基本信息
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/me [get]
func (c *AuthController) Me() {
	claims, exists := c.Ctx.Get("claims")
	if !exists {
		response.Unauthorized(c.Ctx)
		return
	}

	jwtClaims, ok := claims.(*services.JWTClaims)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{
		"user_id":    jwtClaims.UserID,
		"issued_at":  jwtClaims.IssuedAt,
		"expires_at": jwtClaims.ExpiresAt,
	})
}

// HandleAuthFunc 返回一个处理认证请求的Gin处理函数
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "register":
			controller.Register()
		case "login":
			controller.Login()
		case "me":
			controller.Me()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}
