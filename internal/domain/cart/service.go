// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// Service handles cart business logic
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// AddToCartRequest represents an add to cart request
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"omitempty,min=1"`
}

// UpdateCartItemRequest represents an update cart item request
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CartResponse represents a cart with its computed summary
type CartResponse struct {
	UserID    string    `json:"user_id"`
	Items     Items     `json:"items"`
	Totals    Totals    `json:"totals"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetCart retrieves the cart for a user
func (s *Service) GetCart(ctx context.Context, userID string) (*CartResponse, error) {
	userCart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(userCart), nil
}

// AddToCart adds a product to the user's cart. Adding a product that is
// already present increments its quantity instead of creating a new line.
func (s *Service) AddToCart(ctx context.Context, userID string, req *AddToCartRequest) (*CartResponse, error) {
	var prod catalog.Product
	if err := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", req.ProductID, true).First(&prod).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found or inactive")
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	userCart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	userCart.Items = userCart.Items.Add(Item{
		ProductID: prod.ID,
		Name:      prod.Name,
		UnitPrice: prod.SellingPrice,
		Quantity:  quantity,
		ImageURL:  prod.ImageURL,
		AddedAt:   time.Now().UTC(),
	})

	if err := s.saveCart(ctx, userCart); err != nil {
		return nil, err
	}
	return s.toResponse(userCart), nil
}

// UpdateItem sets the quantity of the cart line at the given position
func (s *Service) UpdateItem(ctx context.Context, userID string, index int, req *UpdateCartItemRequest) (*CartResponse, error) {
	userCart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	userCart.Items, err = userCart.Items.UpdateQuantity(index, req.Quantity)
	if err != nil {
		return nil, err
	}

	if err := s.saveCart(ctx, userCart); err != nil {
		return nil, err
	}
	return s.toResponse(userCart), nil
}

// RemoveItem deletes the cart line at the given position
func (s *Service) RemoveItem(ctx context.Context, userID string, index int) (*CartResponse, error) {
	userCart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	userCart.Items, err = userCart.Items.RemoveAt(index)
	if err != nil {
		return nil, err
	}

	if err := s.saveCart(ctx, userCart); err != nil {
		return nil, err
	}
	return s.toResponse(userCart), nil
}

// GetItems returns the raw cart lines for a user
func (s *Service) GetItems(ctx context.Context, userID string) (Items, error) {
	userCart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return userCart.Items, nil
}

// ClearCart removes all items from the user's cart
func (s *Service) ClearCart(ctx context.Context, userID string) error {
	return s.redisClient.Del(ctx, s.cartKey(userID)).Err()
}

// GetBadgeCount returns the total quantity across the cart for the header
// indicator. Missing carts count as zero.
func (s *Service) GetBadgeCount(ctx context.Context, userID string) (int, error) {
	userCart, err := s.loadCart(ctx, userID)
	if err != nil {
		return 0, err
	}
	return userCart.Items.BadgeCount(), nil
}

func (s *Service) cartKey(userID string) string {
	return fmt.Sprintf("cart:user:%s", userID)
}

func (s *Service) loadCart(ctx context.Context, userID string) (*Cart, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID required for cart access")
	}

	data, err := s.redisClient.Get(ctx, s.cartKey(userID)).Result()
	if err == redis.Nil {
		now := time.Now().UTC()
		return &Cart{
			UserID:    userID,
			Items:     Items{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var userCart Cart
	if err := json.Unmarshal([]byte(data), &userCart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &userCart, nil
}

func (s *Service) saveCart(ctx context.Context, userCart *Cart) error {
	userCart.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(userCart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	return s.redisClient.Set(ctx, s.cartKey(userCart.UserID), data, s.config.Checkout.CartTTL).Err()
}

func (s *Service) toResponse(userCart *Cart) *CartResponse {
	return &CartResponse{
		UserID:    userCart.UserID,
		Items:     userCart.Items,
		Totals:    userCart.Items.CalculateTotals(),
		UpdatedAt: userCart.UpdatedAt,
	}
}
