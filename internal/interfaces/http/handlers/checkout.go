// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/email"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	orderService    *order.Service
	emailService    *email.EmailService
	config          *config.Config
	log             *logrus.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, orderService *order.Service, cfg *config.Config, log *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
		emailService:    email.NewEmailService(cfg, log),
		config:          cfg,
		log:             log,
	}
}

// BuyNow handles POST /checkout/buy-now. Guests may order here, so the
// session is optional; an empty uid is a guest checkout.
func (h *CheckoutHandler) BuyNow(c *gin.Context) {
	uid, _ := middleware.GetUserUIDFromContext(c)

	var req checkout.BuyNowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	intent, err := h.checkoutService.BuyNow(c.Request.Context(), uid, &req)
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout started",
		"data":    intent,
	})
}

// CartCheckout handles POST /checkout/cart
func (h *CheckoutHandler) CartCheckout(c *gin.Context) {
	uid, exists := middleware.GetUserUIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	intent, err := h.checkoutService.CartCheckout(c.Request.Context(), uid)
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout started",
		"data":    intent,
	})
}

// Confirm handles POST /checkout/confirm. Session optional so guest
// buy-now payments can be confirmed too.
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	uid, _ := middleware.GetUserUIDFromContext(c)

	var req checkout.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.checkoutService.Confirm(c.Request.Context(), uid, &req)
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}

	h.sendConfirmationEmail(c, result.OrderID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Order placed successfully",
		"data":    result,
	})
}

// sendConfirmationEmail mails the order confirmation. Failures are
// logged only since the order is already recorded.
func (h *CheckoutHandler) sendConfirmationEmail(c *gin.Context, orderID uint) {
	ord, err := h.orderService.GetByID(orderID)
	if err != nil {
		h.log.WithError(err).WithField("order_id", orderID).Warn("could not load order for confirmation email")
		return
	}

	lines := make([]email.OrderLine, 0, len(ord.Items))
	for _, item := range ord.Items {
		lines = append(lines, email.OrderLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Subtotal: cart.FormatAmount(item.Subtotal),
		})
	}

	if err := h.emailService.SendOrderConfirmation(c.Request.Context(), email.OrderConfirmationData{
		TemplateData: email.TemplateData{
			UserName:  ord.Customer.Name,
			UserEmail: ord.Customer.Email,
		},
		OrderNumber: ord.OrderNumber,
		OrderTotal:  cart.FormatAmount(ord.TotalAmount),
		Lines:       lines,
		PlacedAt:    ord.CreatedAt,
	}); err != nil {
		h.log.WithError(err).WithField("order_id", ord.ID).Warn("order confirmation email failed")
	}
}

// respondCheckoutError maps checkout failures to HTTP responses. An
// incomplete profile carries a redirect to the profile page so the client
// can send the shopper there before retrying.
func (h *CheckoutHandler) respondCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrProfileIncomplete):
		c.JSON(http.StatusConflict, gin.H{
			"error":    "Add your phone number and delivery address before ordering",
			"redirect": h.config.Checkout.ProfilePath,
		})
	case errors.Is(err, checkout.ErrInvalidDetails):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Your cart is empty",
		})
	case errors.Is(err, checkout.ErrPendingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Checkout session expired, please try again",
		})
	case errors.Is(err, checkout.ErrOrderNotRecorded):
		// Payment captured but the order row could not be written. No
		// redirect: the client must show the payment reference and ask
		// the shopper to contact support or retry confirmation.
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	}
}
