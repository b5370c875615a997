package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"employee-http-service/internal/app/middleware"
	"employee-http-service/internal/domain/models"
	"employee-http-service/internal/domain/services/container"
	"employee-http-service/internal/error/code"
	"employee-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestEnv 构建测试用的路由和服务容器，Redis不可用时自动降级
func newTestEnv(t *testing.T) (*gin.Engine, *container.ServiceContainer, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Employee{}))
	require.NoError(t, db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Employee{}).Error)
	require.NoError(t, db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error)

	cfg := &config.Config{
		JWTSecretKey: "test-secret",
		UploadDir:    t.TempDir(),
	}
	serviceContainer := container.NewServiceContainer(db, cfg)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/employee", HandleEmployeeFunc(serviceContainer, "getEmployees"))
	api.POST("/employee", HandleEmployeeFunc(serviceContainer, "createEmployee"))
	api.PUT("/employee/:id", HandleEmployeeFunc(serviceContainer, "updateEmployee"))
	api.DELETE("/employee/:id", HandleEmployeeFunc(serviceContainer, "deleteEmployee"))

	return r, serviceContainer, cfg
}

// employeeEnvelope 员工响应的统一结构
type employeeEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    models.Employee `json:"data"`
}

type listEnvelope struct {
	Code int               `json:"code"`
	Data []models.Employee `json:"data"`
}

// buildEmployeeRequest 构造multipart创建请求
func buildEmployeeRequest(t *testing.T, fields map[string]string, courses []string, withImage bool) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, course := range courses {
		require.NoError(t, writer.WriteField("course", course))
	}

	if withImage {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="image"; filename="avatar.png"`)
		header.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("png-data"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/employee", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func validFields() map[string]string {
	return map[string]string{
		"name":        "Alice",
		"email":       "alice@example.com",
		"mobile":      "1234567890",
		"designation": models.DesignationDeveloper,
		"gender":      models.GenderFemale,
	}
}

func TestCreateEmployee_EchoesRecordAndStoresImage(t *testing.T) {
	r, _, cfg := newTestEnv(t)

	req := buildEmployeeRequest(t, validFields(), []string{"MCA", "BCA"}, true)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp employeeEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, code.ErrSuccess, resp.Code)
	assert.NotZero(t, resp.Data.ID)
	assert.Equal(t, "Alice", resp.Data.Name)
	assert.Equal(t, models.StringList{"MCA", "BCA"}, resp.Data.Course)
	assert.NotEmpty(t, resp.Data.Image)

	// 图片已落盘
	entries, err := os.ReadDir(cfg.UploadDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, resp.Data.Image, entries[0].Name())
}

func TestCreateEmployee_MissingFieldRollsBackImage(t *testing.T) {
	r, _, cfg := newTestEnv(t)

	fields := validFields()
	delete(fields, "email")
	req := buildEmployeeRequest(t, fields, []string{"MCA"}, true)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp employeeEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, code.ErrEmployeeFieldsMissing, resp.Code)

	// 校验失败后上传的图片必须被删除
	entries, err := os.ReadDir(cfg.UploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateEmployee_MissingCourseRejected(t *testing.T) {
	r, _, _ := newTestEnv(t)

	req := buildEmployeeRequest(t, validFields(), nil, false)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp employeeEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, code.ErrEmployeeFieldsMissing, resp.Code)
}

func TestCreateEmployee_OversizedImageRejected(t *testing.T) {
	r, _, _ := newTestEnv(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range validFields() {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.WriteField("course", "MCA"))

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="big.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(make([]byte, config.MaxUploadSize+1))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/employee", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp employeeEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, code.ErrUploadTooLarge, resp.Code)
}

func TestCreateEmployee_StoreFailureRollsBackImage(t *testing.T) {
	r, serviceContainer, cfg := newTestEnv(t)

	// 关闭底层连接，写库必然失败
	sqlDB, err := serviceContainer.GetDB().DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	req := buildEmployeeRequest(t, validFields(), []string{"MCA"}, true)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	// 写库失败后上传的图片必须被删除
	entries, err := os.ReadDir(cfg.UploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEmployeeWrite_PurgesResponseCache(t *testing.T) {
	r, _, _ := newTestEnv(t)

	// 先通过带缓存中间件的路由填充内存响应缓存
	middleware.PurgeCache()
	cached := gin.New()
	cached.Use(middleware.Cache(middleware.CacheConfig{Expiration: time.Minute}))
	cached.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	w := httptest.NewRecorder()
	cached.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, middleware.CacheStats()["total_items"])

	// 员工写操作应清空响应缓存
	req := buildEmployeeRequest(t, validFields(), []string{"MCA"}, false)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, 0, middleware.CacheStats()["total_items"])
}

func TestGetEmployees_ReturnsFullCollection(t *testing.T) {
	r, _, _ := newTestEnv(t)

	for i := 0; i < 3; i++ {
		fields := validFields()
		fields["name"] = fmt.Sprintf("Employee-%d", i)
		fields["email"] = fmt.Sprintf("e%d@example.com", i)
		req := buildEmployeeRequest(t, fields, []string{"MCA"}, false)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/employee", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp listEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 3)
}

func TestUpdateEmployee_JSONPartialUpdate(t *testing.T) {
	r, _, _ := newTestEnv(t)

	req := buildEmployeeRequest(t, validFields(), []string{"MCA"}, false)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created employeeEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	payload := bytes.NewBufferString(`{"name":"Alicia","course":["BSC"]}`)
	updateReq := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/employee/%d", created.Data.ID), payload)
	updateReq.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, updateReq)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated employeeEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Alicia", updated.Data.Name)
	assert.Equal(t, models.StringList{"BSC"}, updated.Data.Course)
	// 未提供的字段保持原值
	assert.Equal(t, "alice@example.com", updated.Data.Email)
}

func TestUpdateEmployee_UnknownIDReturns404(t *testing.T) {
	r, _, _ := newTestEnv(t)

	payload := bytes.NewBufferString(`{"name":"Nobody"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/employee/9999", payload)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteEmployee_RemovesRecord(t *testing.T) {
	r, _, _ := newTestEnv(t)

	req := buildEmployeeRequest(t, validFields(), []string{"MCA"}, false)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created employeeEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	deleteReq := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/employee/%d", created.Data.ID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, deleteReq)
	require.Equal(t, http.StatusOK, w.Code)

	listReq := httptest.NewRequest(http.MethodGet, "/api/employee", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, listReq)

	var resp listEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}

func TestDeleteEmployee_KeepsImageFile(t *testing.T) {
	r, _, cfg := newTestEnv(t)

	req := buildEmployeeRequest(t, validFields(), []string{"MCA"}, true)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created employeeEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.Image)

	deleteReq := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/employee/%d", created.Data.ID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, deleteReq)
	require.Equal(t, http.StatusOK, w.Code)

	// 删除记录后图片文件保留在磁盘上
	_, err := os.Stat(filepath.Join(cfg.UploadDir, created.Data.Image))
	assert.NoError(t, err)
}

func TestDeleteEmployee_UnknownIDReturns404(t *testing.T) {
	r, _, _ := newTestEnv(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/employee/9999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteEmployee_BadIDReturns400(t *testing.T) {
	r, _, _ := newTestEnv(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/employee/abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
