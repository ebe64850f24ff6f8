package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/your-org/storefront-backend/internal/config"
)

func timeoutRouter(requestTimeout time.Duration, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Server.RequestTimeout = requestTimeout

	r := gin.New()
	r.Use(RequestTimeout(cfg))
	r.GET("/ping", handler)
	return r
}

func TestRequestTimeoutPassesFastRequests(t *testing.T) {
	r := timeoutRouter(time.Second, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestRequestTimeoutCutsSlowRequests(t *testing.T) {
	r := timeoutRouter(20*time.Millisecond, func(c *gin.Context) {
		time.Sleep(150 * time.Millisecond)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), "too long")
}

func TestRequestTimeoutDisabled(t *testing.T) {
	r := timeoutRouter(0, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
