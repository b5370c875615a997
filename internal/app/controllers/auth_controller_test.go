package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"employee-http-service/internal/app/middleware"
	"employee-http-service/internal/error/code"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAuthTestRouter 构建带认证路由的测试环境
func newAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	_, serviceContainer, cfg := newTestEnv(t)
	middleware.InitAuthMiddleware(cfg)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/register", HandleAuthFunc(serviceContainer, "register"))
	api.POST("/login", HandleAuthFunc(serviceContainer, "login"))

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.Authentication())
	authGroup.GET("/me", HandleAuthFunc(serviceContainer, "me"))
	return r
}

type authEnvelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Token  string `json:"token"`
		UserID uint   `json:"user_id"`
	} `json:"data"`
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister_ReturnsToken(t *testing.T) {
	r := newAuthTestRouter(t)

	w := postJSON(t, r, "/api/register", `{"userName":"hukum","password":"password123"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp authEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, code.ErrSuccess, resp.Code)
	assert.NotEmpty(t, resp.Data.Token)
	assert.NotZero(t, resp.Data.UserID)
}

func TestRegister_DuplicateRejected(t *testing.T) {
	r := newAuthTestRouter(t)

	w := postJSON(t, r, "/api/register", `{"userName":"hukum","password":"password123"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/register", `{"userName":"hukum","password":"other"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp authEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, code.ErrUserAlreadyExist, resp.Code)
}

func TestRegister_MissingFieldsRejected(t *testing.T) {
	r := newAuthTestRouter(t)

	w := postJSON(t, r, "/api/register", `{"userName":"hukum"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_Succeeds(t *testing.T) {
	r := newAuthTestRouter(t)

	w := postJSON(t, r, "/api/register", `{"userName":"hukum","password":"password123"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/login", `{"userName":"hukum","password":"password123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp authEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	r := newAuthTestRouter(t)

	w := postJSON(t, r, "/api/register", `{"userName":"hukum","password":"password123"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// 用户不存在和密码错误必须返回完全相同的状态码和错误码
	unknownUser := postJSON(t, r, "/api/login", `{"userName":"nobody","password":"password123"}`)
	wrongPassword := postJSON(t, r, "/api/login", `{"userName":"hukum","password":"wrong"}`)

	assert.Equal(t, http.StatusBadRequest, unknownUser.Code)
	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)

	var respA, respB authEnvelope
	require.NoError(t, json.Unmarshal(unknownUser.Body.Bytes(), &respA))
	require.NoError(t, json.Unmarshal(wrongPassword.Body.Bytes(), &respB))
	assert.Equal(t, code.ErrInvalidCredentials, respA.Code)
	assert.Equal(t, respA.Code, respB.Code)
	assert.Equal(t, respA.Message, respB.Message)
}

func TestMe_RequiresValidToken(t *testing.T) {
	r := newAuthTestRouter(t)

	// 无令牌
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 伪造令牌
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe_ReturnsCurrentUser(t *testing.T) {
	r := newAuthTestRouter(t)

	w := postJSON(t, r, "/api/register", `{"userName":"hukum","password":"password123"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var registered authEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+registered.Data.Token)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	require.Equal(t, http.StatusOK, w2.Code, w2.Body.String())

	var me struct {
		Data struct {
			UserID uint `json:"user_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &me))
	assert.Equal(t, registered.Data.UserID, me.Data.UserID)
}
