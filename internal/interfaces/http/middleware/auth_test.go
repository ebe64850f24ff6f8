// internal/interfaces/http/middleware/auth_test.go
package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/session"
)

type fakeProvider struct {
	info *session.UserInfo
	err  error
}

func (f *fakeProvider) Verify(ctx context.Context, idToken string) (*session.UserInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	if idToken == "" {
		return nil, session.ErrUnauthenticated
	}
	return f.info, nil
}

func (f *fakeProvider) Revoke(ctx context.Context, uid string) error {
	return nil
}

func guardRouter(provider session.Provider, cfg *config.Config, handlerRan *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", SessionGuard(provider, cfg), func(c *gin.Context) {
		*handlerRan = true
		uid, _ := GetUserUIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"uid": uid})
	})
	return r
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Checkout.HomePath = "index.html"
	return cfg
}

func TestSessionGuardNoToken(t *testing.T) {
	handlerRan := false
	r := guardRouter(&fakeProvider{}, testConfig(), &handlerRan)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"index.html"`)
	assert.False(t, handlerRan, "protected handler must not run without a session")
}

func TestSessionGuardInvalidToken(t *testing.T) {
	handlerRan := false
	r := guardRouter(&fakeProvider{err: session.ErrUnauthenticated}, testConfig(), &handlerRan)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, handlerRan)
}

func TestSessionGuardProviderOutage(t *testing.T) {
	handlerRan := false
	r := guardRouter(&fakeProvider{err: session.ErrProviderUnavailable}, testConfig(), &handlerRan)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer anything")
	r.ServeHTTP(w, req)

	// An outage must not bounce the user back to the home page
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "redirect")
	assert.False(t, handlerRan)
}

func TestSessionGuardValidToken(t *testing.T) {
	handlerRan := false
	provider := &fakeProvider{info: &session.UserInfo{UID: "uid-42", Email: "a@b.com"}}
	r := guardRouter(provider, testConfig(), &handlerRan)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, handlerRan)
	assert.Contains(t, w.Body.String(), "uid-42")
}

func TestOptionalSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	provider := &fakeProvider{info: &session.UserInfo{UID: "uid-42"}}

	r := gin.New()
	r.GET("/badge", OptionalSession(provider), func(c *gin.Context) {
		uid, ok := GetUserUIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"uid": uid, "signed_in": ok})
	})

	// Anonymous request passes through
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/badge", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"signed_in":false`)

	// Token resolves the session
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/badge", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"signed_in":true`)
	assert.Contains(t, w.Body.String(), "uid-42")
}
