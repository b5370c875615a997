package services

import (
	"errors"

	"employee-http-service/internal/domain/models"
	"employee-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// ErrEmployeeNotFound 员工不存在时返回的哨兵错误
var ErrEmployeeNotFound = errors.New("员工不存在")

// InterfaceEmployeeService defines the employee service interface
type InterfaceEmployeeService interface {
	GetAllEmployees() ([]models.Employee, error)
	GetEmployeeByID(id uint) (*models.Employee, error)
	CreateEmployee(employee *models.Employee) error
	UpdateEmployee(id uint, updates map[string]interface{}) (*models.Employee, error)
	DeleteEmployee(id uint) error
}

// EmployeeService 提供员工记录相关的服务。
// 注意：删除或更新员工不会清理已上传的图片文件，与既有行为保持一致；
// 创建失败时的图片回滚由控制器负责。
type EmployeeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewEmployeeService 创建一个新的员工服务
func NewEmployeeService(db *gorm.DB, cfg *config.Config) InterfaceEmployeeService {
	return &EmployeeService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllEmployees 获取所有员工记录，不分页不过滤，由客户端自行处理
func (s *EmployeeService) GetAllEmployees() ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.DB.Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// 2 GetEmployeeByID 根据ID获取员工记录
func (s *EmployeeService) GetEmployeeByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := s.DB.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// 3 CreateEmployee 创建新员工记录
func (s *EmployeeService) CreateEmployee(employee *models.Employee) error {
	return s.DB.Create(employee).Error
}

// 4 UpdateEmployee 更新员工记录，只替换提供的字段
func (s *EmployeeService) UpdateEmployee(id uint, updates map[string]interface{}) (*models.Employee, error) {
	employee, err := s.GetEmployeeByID(id)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.DB.Model(employee).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	// 重新获取更新后的员工记录
	return s.GetEmployeeByID(id)
}

// 5 DeleteEmployee 删除员工记录
func (s *EmployeeService) DeleteEmployee(id uint) error {
	employee, err := s.GetEmployeeByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(employee).Error
}
