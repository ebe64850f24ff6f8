// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/session"
	"gorm.io/gorm"
)

// SetupRoutes wires every API route group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client,
	provider session.Provider, cfg *config.Config, log *logrus.Logger) {

	// Domain services shared across handlers
	cartService := cart.NewService(db, redisClient, cfg)
	catalogService := catalog.NewService(db, cfg)
	userService := user.NewService(db, cfg)
	orderService := order.NewService(db, cfg)
	gateway := payment.NewRazorpayGateway(cfg)
	checkoutService := checkout.NewService(redisClient, cfg, log,
		cartService, catalogService, userService, orderService, gateway)

	authHandler := handlers.NewAuthHandler(db, provider, cfg)
	catalogHandler := handlers.NewCatalogHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, orderService, cfg, log)
	orderHandler := handlers.NewOrderHandler(db, cfg, log)
	profileHandler := handlers.NewProfileHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	// Session endpoints
	auth := rg.Group("/auth")
	{
		auth.POST("/session", authHandler.CreateSession)

		protected := auth.Group("")
		protected.Use(middleware.SessionGuard(provider, cfg))
		{
			protected.DELETE("/session", authHandler.DeleteSession)
		}
	}

	// Public storefront browse endpoints
	rg.GET("/products", catalogHandler.GetProducts)
	rg.GET("/products/:id", catalogHandler.GetProduct)
	rg.GET("/categories", catalogHandler.GetCategories)
	rg.GET("/banners", catalogHandler.GetBanners)

	// Cart badge works for anonymous visitors too
	rg.GET("/cart/badge", middleware.OptionalSession(provider), cartHandler.GetCartBadge)

	// Cart routes require a signed-in shopper
	cartGroup := rg.Group("/cart")
	cartGroup.Use(middleware.SessionGuard(provider, cfg))
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:index", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:index", cartHandler.RemoveFromCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}

	// Checkout routes. Buy-now and confirm accept guests carrying the
	// shipping form; only the cart flow needs a signed-in shopper.
	checkoutGroup := rg.Group("/checkout")
	{
		checkoutGroup.POST("/buy-now", middleware.OptionalSession(provider), checkoutHandler.BuyNow)
		checkoutGroup.POST("/confirm", middleware.OptionalSession(provider), checkoutHandler.Confirm)
		checkoutGroup.POST("/cart", middleware.SessionGuard(provider, cfg), checkoutHandler.CartCheckout)
	}

	// Profile routes
	profileGroup := rg.Group("/profile")
	profileGroup.Use(middleware.SessionGuard(provider, cfg))
	{
		profileGroup.GET("", profileHandler.GetProfile)
		profileGroup.PUT("", profileHandler.UpdateProfile)
		profileGroup.PUT("/address", profileHandler.SaveAddress)
	}

	// Order routes
	orderGroup := rg.Group("/orders")
	orderGroup.Use(middleware.SessionGuard(provider, cfg))
	{
		orderGroup.GET("", orderHandler.ListMyOrders)
		orderGroup.GET("/:id", orderHandler.GetMyOrder)
		orderGroup.GET("/:id/receipt", orderHandler.DownloadReceipt)
	}

	// Admin routes
	admin := rg.Group("/admin")
	{
		admin.POST("/login", adminHandler.Login)

		protected := admin.Group("")
		protected.Use(middleware.AdminGuard(cfg))
		{
			protected.GET("/me", adminHandler.GetMe)
			protected.GET("/orders", orderHandler.ListOrders)
			protected.GET("/orders/:id", orderHandler.GetOrder)
			protected.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
		}
	}
}
