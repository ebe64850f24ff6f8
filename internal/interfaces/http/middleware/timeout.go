package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-backend/internal/config"
)

// RequestTimeout bounds every request by cfg.Server.RequestTimeout. Handlers
// see the deadline through the request context; a request that outlives it
// gets a 504 with the storefront error envelope. A zero or negative timeout
// disables the bound.
func RequestTimeout(cfg *config.Config) gin.HandlerFunc {
	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return timeoutWith(timeout)
}

func timeoutWith(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		done := make(chan struct{})
		go func() {
			defer close(done)
			c.Next()
		}()

		select {
		case <-done:
		case <-ctx.Done():
			c.Abort()
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request took too long, please try again",
			})
		}
	}
}
