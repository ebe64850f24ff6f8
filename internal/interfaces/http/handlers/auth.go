// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/session"
	"gorm.io/gorm"
)

// AuthHandler handles session endpoints. Sign-in itself happens on the
// client against Firebase; the backend only verifies ID tokens and keeps
// the user row in sync.
type AuthHandler struct {
	userService *user.Service
	provider    session.Provider
	config      *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, provider session.Provider, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: user.NewService(db, cfg),
		provider:    provider,
		config:      cfg,
	}
}

// SessionRequest carries the Firebase ID token from the client
type SessionRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// CreateSession handles POST /auth/session. Called right after the client
// completes Firebase sign-in; verifies the token and upserts the user.
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	info, err := h.provider.Verify(c.Request.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, session.ErrProviderUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Sign-in service is temporarily unavailable",
			})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid sign-in token",
		})
		return
	}

	u, err := h.userService.EnsureUser(info)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create user",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed in successfully",
		"data":    u,
	})
}

// DeleteSession handles DELETE /auth/session. Revokes the user's refresh
// tokens so every device has to sign in again.
func (h *AuthHandler) DeleteSession(c *gin.Context) {
	uid, exists := middleware.GetUserUIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	if err := h.provider.Revoke(c.Request.Context(), uid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to sign out",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed out successfully",
	})
}
