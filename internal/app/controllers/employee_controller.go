package controllers

import (
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"employee-http-service/internal/app/middleware"
	"employee-http-service/internal/domain/models"
	"employee-http-service/internal/domain/services"
	"employee-http-service/internal/domain/services/container"
	"employee-http-service/internal/error/code"
	"employee-http-service/internal/error/response"
	"employee-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// InterfaceEmployeeController 定义员工控制器接口
type InterfaceEmployeeController interface {
	GetEmployees()
	CreateEmployee()
	UpdateEmployee()
	DeleteEmployee()
}

// EmployeeController 处理员工记录相关的请求
type EmployeeController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewEmployeeController 创建一个新的员工控制器
func NewEmployeeController(ctx *gin.Context, container *container.ServiceContainer) *EmployeeController {
	return &EmployeeController{
		Ctx:       ctx,
		Container: container,
	}
}

// GetEmployees 获取员工列表
// @Summary      获取员工列表
// @Description  返回全部员工记录，不分页不过滤，搜索、排序、分页均由客户端处理
// @Tags         Employee
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /employee [get]
func (c *EmployeeController) GetEmployees() {
	// 优先读取Redis缓存
	if redisService := c.Container.GetRedisService(); redisService != nil {
		if employees, err := redisService.GetEmployeeList(); err == nil {
			response.Success(c.Ctx, employees)
			return
		}
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	employees, err := employeeService.GetAllEmployees()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询员工列表失败", nil)
		return
	}

	// 回填缓存，失败时只记录日志
	if redisService := c.Container.GetRedisService(); redisService != nil {
		if err := redisService.CacheEmployeeList(employees); err != nil {
			logger.Warning("缓存员工列表失败: %v", err)
		}
	}

	response.Success(c.Ctx, employees)
}

// CreateEmployee 创建新员工
// @Summary      创建员工
// @Description  通过multipart表单创建员工记录，可附带一张图片；必填字段缺失或保存失败时会回滚已保存的图片
// @Tags         Employee
// @Accept       multipart/form-data
// @Produce      json
// @Param        name formData string true "姓名"
// @Param        email formData string true "邮箱"
// @Param        mobile formData string true "手机号"
// @Param        designation formData string true "职位" Enums(Developer, Manager, Designer)
// @Param        gender formData string true "性别" Enums(Male, Female, Other)
// @Param        course formData []string true "课程" collectionFormat(multi)
// @Param        image formData file false "头像图片"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /employee [post]
func (c *EmployeeController) CreateEmployee() {
	uploadService := c.Container.GetService("upload").(services.InterfaceUploadService)

	// 先处理上传文件，再校验其余字段，与表单到达顺序无关
	var filename string
	if file, err := c.Ctx.FormFile("image"); err == nil && file != nil {
		filename, err = c.storeUpload(uploadService, file)
		if err != nil {
			return
		}
	}

	name := c.Ctx.PostForm("name")
	email := c.Ctx.PostForm("email")
	mobile := c.Ctx.PostForm("mobile")
	designation := c.Ctx.PostForm("designation")
	gender := c.Ctx.PostForm("gender")
	course := c.postFormCourse()

	if name == "" || email == "" || mobile == "" || designation == "" || gender == "" || len(course) == 0 {
		// 字段校验失败时删除已保存的图片，避免产生孤儿文件
		if filename != "" {
			if err := uploadService.Remove(filename); err != nil {
				logger.Warning("删除无效请求的上传文件失败: %v", err)
			}
		}
		response.Fail(c.Ctx, code.ErrEmployeeFieldsMissing, nil)
		return
	}

	employee := &models.Employee{
		Name:        name,
		Email:       email,
		Mobile:      mobile,
		Designation: designation,
		Gender:      gender,
		Course:      models.StringList(course),
		Image:       filename,
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	if err := employeeService.CreateEmployee(employee); err != nil {
		// 写库失败同样回滚已保存的图片
		if filename != "" {
			if err := uploadService.Remove(filename); err != nil {
				logger.Warning("回滚上传文件失败: %v", err)
			}
		}
		logger.Error("创建员工失败: %v", err)
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建员工失败", nil)
		return
	}

	c.invalidateListCache()
	response.Created(c.Ctx, employee)
}

// UpdateEmployee 更新员工信息
// @Summary      更新员工
// @Description  接受JSON或multipart表单，只替换提供的字段；multipart请求可附带新图片，旧图片不会被清理
// @Tags         Employee
// @Accept       json
// @Produce      json
// @Param        id path int true "员工ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /employee/{id} [put]
func (c *EmployeeController) UpdateEmployee() {
	id, err := c.paramID()
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var updates map[string]interface{}
	contentType := c.Ctx.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		updates, err = c.multipartUpdates()
		if err != nil {
			return
		}
	} else {
		updates, err = c.jsonUpdates()
		if err != nil {
			return
		}
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	employee, err := employeeService.UpdateEmployee(id, updates)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			response.Fail(c.Ctx, code.ErrEmployeeNotFound, nil)
			return
		}
		logger.Error("更新员工失败: %v", err)
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新员工失败", nil)
		return
	}

	c.invalidateListCache()
	response.Success(c.Ctx, employee)
}

// DeleteEmployee 删除员工
// @Summary      删除员工
// @Description  删除指定ID的员工记录；已上传的图片文件保留在磁盘上
// @Tags         Employee
// @Produce      json
// @Param        id path int true "员工ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /employee/{id} [delete]
func (c *EmployeeController) DeleteEmployee() {
	id, err := c.paramID()
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	if err := employeeService.DeleteEmployee(id); err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			response.Fail(c.Ctx, code.ErrEmployeeNotFound, nil)
			return
		}
		logger.Error("删除员工失败: %v", err)
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除员工失败", nil)
		return
	}

	c.invalidateListCache()
	response.Success(c.Ctx, gin.H{
		"message": "成功删除员工",
	})
}

// paramID 解析URL中的ID参数
func (c *EmployeeController) paramID() (uint, error) {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// postFormCourse 解析课程多选字段，兼容 course、course[] 和逗号拼接三种形式
func (c *EmployeeController) postFormCourse() []string {
	values := c.Ctx.PostFormArray("course")
	if len(values) == 0 {
		values = c.Ctx.PostFormArray("course[]")
	}
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}

	var course []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			course = append(course, v)
		}
	}
	return course
}

// storeUpload 保存上传文件并把校验错误映射为对应的响应
func (c *EmployeeController) storeUpload(uploadService services.InterfaceUploadService, file *multipart.FileHeader) (string, error) {
	filename, err := uploadService.Store(file)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFileTooLarge):
			response.Fail(c.Ctx, code.ErrUploadTooLarge, nil)
		case errors.Is(err, services.ErrInvalidFileType):
			response.Fail(c.Ctx, code.ErrUploadInvalidType, nil)
		default:
			logger.Error("保存上传文件失败: %v", err)
			response.Fail(c.Ctx, code.ErrUploadFailed, nil)
		}
		return "", err
	}
	return filename, nil
}

// multipartUpdates 从multipart表单构建更新字段映射
func (c *EmployeeController) multipartUpdates() (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	for _, field := range []string{"name", "email", "mobile", "designation", "gender"} {
		if value := c.Ctx.PostForm(field); value != "" {
			updates[field] = value
		}
	}

	if course := c.postFormCourse(); len(course) > 0 {
		updates["course"] = models.StringList(course)
	}

	// 可选的新图片；旧图片不清理，与既有行为一致
	if file, err := c.Ctx.FormFile("image"); err == nil && file != nil {
		uploadService := c.Container.GetService("upload").(services.InterfaceUploadService)
		filename, err := c.storeUpload(uploadService, file)
		if err != nil {
			return nil, err
		}
		updates["image"] = filename
	}

	return updates, nil
}

// UpdateEmployeeRequest 表示JSON形式的更新请求体
type UpdateEmployeeRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Mobile      string   `json:"mobile"`
	Designation string   `json:"designation"`
	Gender      string   `json:"gender"`
	Course      []string `json:"course"`
	Image       string   `json:"image"`
}

// jsonUpdates 从JSON请求体构建更新字段映射
func (c *EmployeeController) jsonUpdates() (map[string]interface{}, error) {
	var req UpdateEmployeeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Mobile != "" {
		updates["mobile"] = req.Mobile
	}
	if req.Designation != "" {
		updates["designation"] = req.Designation
	}
	if req.Gender != "" {
		updates["gender"] = req.Gender
	}
	if len(req.Course) > 0 {
		updates["course"] = models.StringList(req.Course)
	}
	if req.Image != "" {
		updates["image"] = req.Image
	}

	return updates, nil
}

// invalidateListCache 员工记录变更后使Redis列表缓存和内存响应缓存失效
func (c *EmployeeController) invalidateListCache() {
	if redisService := c.Container.GetRedisService(); redisService != nil {
		if err := redisService.InvalidateEmployeeList(); err != nil {
			logger.Warning("清除员工列表缓存失败: %v", err)
		}
	}
	middleware.PurgeCache()
}

// HandleEmployeeFunc 返回一个处理员工请求的Gin处理函数
func HandleEmployeeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewEmployeeController(ctx, container)

		switch method {
		case "getEmployees":
			controller.GetEmployees()
		case "createEmployee":
			controller.CreateEmployee()
		case "updateEmployee":
			controller.UpdateEmployee()
		case "deleteEmployee":
			controller.DeleteEmployee()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}
