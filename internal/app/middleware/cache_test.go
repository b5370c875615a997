package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCacheTestRouter(expiration time.Duration) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	hits := 0

	r := gin.New()
	r.Use(Cache(CacheConfig{Expiration: expiration}))
	r.GET("/data", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})
	r.POST("/data", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})
	return r, &hits
}

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCache_ServesSecondGETFromCache(t *testing.T) {
	PurgeCache()
	r, hits := newCacheTestRouter(time.Minute)

	first := doRequest(r, http.MethodGet, "/data")
	second := doRequest(r, http.MethodGet, "/data")

	require.Equal(t, http.StatusOK, second.Code)
	// 第二次请求命中缓存，处理函数只执行了一次
	assert.Equal(t, 1, *hits)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestCache_SkipsNonGET(t *testing.T) {
	PurgeCache()
	r, hits := newCacheTestRouter(time.Minute)

	doRequest(r, http.MethodPost, "/data")
	doRequest(r, http.MethodPost, "/data")

	assert.Equal(t, 2, *hits)
}

func TestCache_DistinguishesQueryParams(t *testing.T) {
	PurgeCache()
	r, hits := newCacheTestRouter(time.Minute)

	doRequest(r, http.MethodGet, "/data?page=1")
	doRequest(r, http.MethodGet, "/data?page=2")

	assert.Equal(t, 2, *hits)
}

func TestCache_ExpiredEntryRefetched(t *testing.T) {
	PurgeCache()
	r, hits := newCacheTestRouter(10 * time.Millisecond)

	doRequest(r, http.MethodGet, "/data")
	time.Sleep(20 * time.Millisecond)
	doRequest(r, http.MethodGet, "/data")

	assert.Equal(t, 2, *hits)
}
