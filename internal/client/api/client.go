package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Employee 员工记录的客户端视图
type Employee struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Mobile      string   `json:"mobile"`
	Designation string   `json:"designation"`
	Gender      string   `json:"gender"`
	Course      []string `json:"course"`
	Image       string   `json:"image"`
	CreatedAt   string   `json:"created_at"`
}

// EmployeeForm 创建和更新员工时提交的表单数据
type EmployeeForm struct {
	Name        string
	Email       string
	Mobile      string
	Designation string
	Gender      string
	Course      []string
	ImagePath   string // 本地图片路径，为空表示不上传
}

// envelope 服务端统一响应结构
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// APIError 服务端返回的业务错误
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("服务端错误 [%d/%d]: %s", e.StatusCode, e.Code, e.Message)
}

// Client 员工服务的HTTP客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewClient 创建指向指定服务地址的客户端
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetToken 设置后续请求使用的JWT令牌
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token 返回当前持有的JWT令牌
func (c *Client) Token() string {
	return c.token
}

// authResult 注册和登录响应的数据部分
type authResult struct {
	Token  string `json:"token"`
	UserID uint   `json:"user_id"`
}

// Register 注册新用户，成功后自动持有返回的令牌
func (c *Client) Register(userName, password string) error {
	data, err := c.doJSON(http.MethodPost, "/api/register", map[string]string{
		"userName": userName,
		"password": password,
	})
	if err != nil {
		return err
	}

	var result authResult
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("解析注册响应失败: %w", err)
	}
	c.token = result.Token
	return nil
}

// Login 用户登录，成功后自动持有返回的令牌
func (c *Client) Login(userName, password string) error {
	data, err := c.doJSON(http.MethodPost, "/api/login", map[string]string{
		"userName": userName,
		"password": password,
	})
	if err != nil {
		return err
	}

	var result authResult
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("解析登录响应失败: %w", err)
	}
	c.token = result.Token
	return nil
}

// ListEmployees 获取全部员工记录
func (c *Client) ListEmployees() ([]Employee, error) {
	data, err := c.doJSON(http.MethodGet, "/api/employee", nil)
	if err != nil {
		return nil, err
	}

	var employees []Employee
	if err := json.Unmarshal(data, &employees); err != nil {
		return nil, fmt.Errorf("解析员工列表失败: %w", err)
	}
	return employees, nil
}

// CreateEmployee 通过multipart表单创建员工，可附带本地图片
func (c *Client) CreateEmployee(form EmployeeForm) (*Employee, error) {
	body, contentType, err := buildMultipart(form)
	if err != nil {
		return nil, err
	}

	data, err := c.doRaw(http.MethodPost, "/api/employee", body, contentType)
	if err != nil {
		return nil, err
	}

	var employee Employee
	if err := json.Unmarshal(data, &employee); err != nil {
		return nil, fmt.Errorf("解析创建响应失败: %w", err)
	}
	return &employee, nil
}

// UpdateEmployee 更新指定员工，只提交非空字段
func (c *Client) UpdateEmployee(id uint, form EmployeeForm) (*Employee, error) {
	path := fmt.Sprintf("/api/employee/%d", id)

	// 带图片时走multipart，否则用JSON
	if form.ImagePath != "" {
		body, contentType, err := buildMultipart(form)
		if err != nil {
			return nil, err
		}
		data, err := c.doRaw(http.MethodPut, path, body, contentType)
		if err != nil {
			return nil, err
		}
		var employee Employee
		if err := json.Unmarshal(data, &employee); err != nil {
			return nil, fmt.Errorf("解析更新响应失败: %w", err)
		}
		return &employee, nil
	}

	payload := map[string]interface{}{}
	if form.Name != "" {
		payload["name"] = form.Name
	}
	if form.Email != "" {
		payload["email"] = form.Email
	}
	if form.Mobile != "" {
		payload["mobile"] = form.Mobile
	}
	if form.Designation != "" {
		payload["designation"] = form.Designation
	}
	if form.Gender != "" {
		payload["gender"] = form.Gender
	}
	if len(form.Course) > 0 {
		payload["course"] = form.Course
	}

	data, err := c.doJSON(http.MethodPut, path, payload)
	if err != nil {
		return nil, err
	}

	var employee Employee
	if err := json.Unmarshal(data, &employee); err != nil {
		return nil, fmt.Errorf("解析更新响应失败: %w", err)
	}
	return &employee, nil
}

// DeleteEmployee 删除指定员工
func (c *Client) DeleteEmployee(id uint) error {
	_, err := c.doJSON(http.MethodDelete, fmt.Sprintf("/api/employee/%d", id), nil)
	return err
}

// doJSON 发送JSON请求并返回响应的数据部分
func (c *Client) doJSON(method, path string, payload interface{}) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("序列化请求失败: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	return c.doRaw(method, path, body, "application/json")
}

// doRaw 发送请求、解析统一响应结构并把非2xx映射为APIError
func (c *Client) doRaw(method, path string, body io.Reader, contentType string) (json.RawMessage, error) {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("解析响应失败: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       env.Code,
			Message:    env.Message,
		}
	}

	return env.Data, nil
}

// buildMultipart 把表单数据编码为multipart请求体
func buildMultipart(form EmployeeForm) (io.Reader, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		"name":        form.Name,
		"email":       form.Email,
		"mobile":      form.Mobile,
		"designation": form.Designation,
		"gender":      form.Gender,
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}
	for _, course := range form.Course {
		if err := writer.WriteField("course", course); err != nil {
			return nil, "", err
		}
	}

	if form.ImagePath != "" {
		file, err := os.Open(form.ImagePath)
		if err != nil {
			return nil, "", fmt.Errorf("打开图片文件失败: %w", err)
		}
		defer file.Close()

		// 根据扩展名设置Content-Type，服务端按此判断是否为图片
		contentType := mime.TypeByExtension(filepath.Ext(form.ImagePath))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="image"; filename="%s"`, filepath.Base(form.ImagePath)))
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

// IsNotFound 判断错误是否为404
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}
