package services

import (
	"errors"

	"employee-http-service/internal/domain/models"
	"employee-http-service/internal/infrastructure/config"
	"employee-http-service/pkg/utils"

	"gorm.io/gorm"
)

// 认证相关的哨兵错误
var (
	ErrUserAlreadyExist = errors.New("用户已存在")
	// 用户不存在和密码错误统一返回同一个错误，避免用户名枚举
	ErrInvalidCredentials = errors.New("用户名或密码错误")
)

// AuthResult 表示注册或登录成功后返回的数据
type AuthResult struct {
	Token  string `json:"token"`
	UserID uint   `json:"user_id"`
}

// InterfaceAuthService 定义认证服务接口
type InterfaceAuthService interface {
	Register(userName, password string) (*AuthResult, error)
	Login(userName, password string) (*AuthResult, error)
}

// AuthService 处理用户注册和登录
type AuthService struct {
	DB         *gorm.DB
	Config     *config.Config
	jwtService InterfaceJWTService
}

// NewAuthService 创建一个新的认证服务
func NewAuthService(db *gorm.DB, cfg *config.Config, jwtService InterfaceJWTService) InterfaceAuthService {
	return &AuthService{
		DB:         db,
		Config:     cfg,
		jwtService: jwtService,
	}
}

// Register 注册新用户并签发令牌
func (s *AuthService) Register(userName, password string) (*AuthResult, error) {
	// 验证用户名唯一性（区分大小写的精确匹配）
	var count int64
	if err := s.DB.Model(&models.User{}).Where("user_name = ?", userName).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserAlreadyExist
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		UserName: userName,
		Password: hashedPassword,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, UserID: user.ID}, nil
}

// Login 校验用户名和密码并签发令牌
func (s *AuthService) Login(userName, password string) (*AuthResult, error) {
	var user models.User
	if err := s.DB.Where("user_name = ?", userName).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, UserID: user.ID}, nil
}
