// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"github.com/your-org/storefront-backend/internal/pkg/session"
)

// SessionGuard verifies the Firebase ID token on protected routes.
// Missing or invalid tokens get a 401 with a redirect back to the home
// page; a provider outage gets a 503 without any redirect so the client
// can retry instead of bouncing the user out of their session.
func SessionGuard(provider session.Provider, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))

		info, err := provider.Verify(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, session.ErrProviderUnavailable) {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"error": "Sign-in service is temporarily unavailable",
				})
				c.Abort()
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":    "Sign in to continue",
				"redirect": cfg.Checkout.HomePath,
			})
			c.Abort()
			return
		}

		c.Set("user_uid", info.UID)
		c.Set("user_email", info.Email)
		c.Set("session_user", info)

		c.Next()
	}
}

// OptionalSession resolves the session if a token is present but never
// blocks the request. Pages like the storefront and cart badge work for
// anonymous visitors too.
func OptionalSession(provider session.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.Next()
			return
		}

		info, err := provider.Verify(c.Request.Context(), tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_uid", info.UID)
		c.Set("user_email", info.Email)
		c.Set("session_user", info)

		c.Next()
	}
}

// AdminGuard creates JWT authentication middleware for admin routes
func AdminGuard(cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("admin_id", claims.AdminID)
		c.Set("admin_email", claims.Email)

		c.Next()
	}
}

// GetUserUIDFromContext extracts the session user UID from gin context
func GetUserUIDFromContext(c *gin.Context) (string, bool) {
	uid, exists := c.Get("user_uid")
	if !exists {
		return "", false
	}
	return uid.(string), true
}

// GetSessionUserFromContext extracts the verified session user from gin context
func GetSessionUserFromContext(c *gin.Context) (*session.UserInfo, bool) {
	val, exists := c.Get("session_user")
	if !exists {
		return nil, false
	}
	return val.(*session.UserInfo), true
}

// GetAdminIDFromContext extracts the admin ID from gin context
func GetAdminIDFromContext(c *gin.Context) (uint, bool) {
	adminID, exists := c.Get("admin_id")
	if !exists {
		return 0, false
	}
	return adminID.(uint), true
}
