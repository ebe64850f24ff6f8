// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/domain/user"
)

var (
	// ErrProfileIncomplete is returned when checkout is attempted without a
	// phone number or address line on file. No gateway or order calls are
	// made in that case.
	ErrProfileIncomplete = errors.New("profile incomplete")

	// ErrInvalidDetails is returned when the buy-now form fails the details
	// policy, or when a guest checks out without supplying any details.
	ErrInvalidDetails = errors.New("invalid customer details")

	// ErrEmptyCart is returned when cart checkout finds nothing to buy
	ErrEmptyCart = errors.New("cart is empty")

	// ErrPendingNotFound is returned when a confirmation references a
	// checkout that was never started or has expired.
	ErrPendingNotFound = errors.New("pending checkout not found")

	// ErrOrderNotRecorded is returned when the payment verified but the
	// order could not be persisted. The payment reference is included so
	// support can reconcile it manually.
	ErrOrderNotRecorded = errors.New("payment received but order not recorded")
)

// Carts is the cart surface the checkout flow needs
type Carts interface {
	GetItems(ctx context.Context, uid string) (cart.Items, error)
	ClearCart(ctx context.Context, uid string) error
}

// Catalog is the product lookup surface
type Catalog interface {
	GetProduct(id uint) (*catalog.Product, error)
}

// Profiles is the customer profile surface
type Profiles interface {
	GetUser(uid string) (*user.User, error)
}

// Orders is the order persistence surface
type Orders interface {
	Create(input *order.CreateOrderInput) (*order.Order, error)
}

// pendingStore parks checkout state between payment initiation and
// confirmation, keyed by the gateway order id.
type pendingStore interface {
	Save(ctx context.Context, gatewayOrderID string, pending *pendingCheckout) error
	Load(ctx context.Context, gatewayOrderID string) (*pendingCheckout, error)
	Delete(ctx context.Context, gatewayOrderID string) error
}

// DetailsPolicy decides whether a submitted customer details form is
// usable for an order.
type DetailsPolicy func(order.CustomerDetails) error

// RequireShippingDetails is the default details policy: the courier needs
// a name, a phone number and at least the village line of the address.
func RequireShippingDetails(c order.CustomerDetails) error {
	for field, value := range map[string]string{
		"name":    c.Name,
		"phone":   c.Phone,
		"village": c.Village,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidDetails, field)
		}
	}
	return nil
}

// Service drives the two checkout flows and the post-payment confirmation
type Service struct {
	config   *config.Config
	log      *logrus.Logger
	pending  pendingStore
	carts    Carts
	catalog  Catalog
	profiles Profiles
	orders   Orders
	gateway  payment.Gateway

	// ValidateDetails screens buy-now form submissions. Defaults to
	// RequireShippingDetails; swap it to tighten or relax the form rules.
	ValidateDetails DetailsPolicy
}

// NewService creates a new checkout service
func NewService(redisClient *redis.Client, cfg *config.Config, log *logrus.Logger,
	carts Carts, cat Catalog, profiles Profiles, orders Orders, gateway payment.Gateway) *Service {
	return &Service{
		config:          cfg,
		log:             log,
		pending:         &redisPendingStore{client: redisClient, ttl: cfg.Checkout.PendingTTL},
		carts:           carts,
		catalog:         cat,
		profiles:        profiles,
		orders:          orders,
		gateway:         gateway,
		ValidateDetails: RequireShippingDetails,
	}
}

// pendingCheckout is the state parked in Redis between payment initiation
// and confirmation, keyed by the gateway order id.
type pendingCheckout struct {
	UserID    string                `json:"user_id"`
	Source    string                `json:"source"` // "buy_now" or "cart"
	Items     []order.Item          `json:"items"`
	Customer  order.CustomerDetails `json:"customer"`
	Amount    int64                 `json:"amount"`
	CreatedAt time.Time             `json:"created_at"`
}

// BuyNowRequest represents a single-product checkout. Guests must fill the
// details form; signed-in users may omit it and ship to their saved profile.
type BuyNowRequest struct {
	ProductID uint          `json:"product_id" binding:"required"`
	Quantity  int           `json:"quantity" binding:"omitempty,min=1"`
	Details   *CustomerForm `json:"details"`
}

// CustomerForm is the shipping form submitted with a buy-now checkout
type CustomerForm struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Village    string `json:"village"`
	PostOffice string `json:"post_office"`
	District   string `json:"district"`
	Pincode    string `json:"pincode"`
	State      string `json:"state"`
	Landmark   string `json:"landmark"`
}

func (f *CustomerForm) toDetails() order.CustomerDetails {
	return order.CustomerDetails{
		Name:       strings.TrimSpace(f.Name),
		Phone:      strings.TrimSpace(f.Phone),
		Email:      strings.TrimSpace(f.Email),
		Village:    strings.TrimSpace(f.Village),
		PostOffice: strings.TrimSpace(f.PostOffice),
		District:   strings.TrimSpace(f.District),
		Pincode:    strings.TrimSpace(f.Pincode),
		State:      strings.TrimSpace(f.State),
		Landmark:   strings.TrimSpace(f.Landmark),
	}
}

// ConfirmRequest carries what the gateway's client widget returns after
// a successful payment.
type ConfirmRequest struct {
	GatewayOrderID string `json:"gateway_order_id" binding:"required"`
	PaymentID      string `json:"payment_id" binding:"required"`
	Signature      string `json:"signature" binding:"required"`
}

// IntentResponse is what the client needs to open the payment UI
type IntentResponse struct {
	GatewayOrderID string `json:"gateway_order_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	KeyID          string `json:"key_id"`
}

// ConfirmResponse reports the recorded order and where to send the customer
type ConfirmResponse struct {
	OrderID     uint   `json:"order_id"`
	OrderNumber string `json:"order_number"`
	RedirectURL string `json:"redirect_url"`
}

// BuyNow starts a checkout for a single product, bypassing the cart. The uid
// may be empty: guests check out with the details form alone.
func (s *Service) BuyNow(ctx context.Context, uid string, req *BuyNowRequest) (*IntentResponse, error) {
	customer, err := s.resolveCustomer(uid, req.Details)
	if err != nil {
		return nil, err
	}

	prod, err := s.catalog.GetProduct(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	items := []order.Item{{
		ProductID: prod.ID,
		Name:      prod.Name,
		UnitPrice: prod.SellingPrice,
		Quantity:  quantity,
		ImageURL:  prod.ImageURL,
	}}

	return s.createIntent(ctx, uid, "buy_now", items, customer)
}

// CartCheckout starts a checkout for the whole cart
func (s *Service) CartCheckout(ctx context.Context, uid string) (*IntentResponse, error) {
	customer, err := s.requireCompleteProfile(uid)
	if err != nil {
		return nil, err
	}

	cartItems, err := s.carts.GetItems(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]order.Item, len(cartItems))
	for i, ci := range cartItems {
		items[i] = order.Item{
			ProductID: ci.ProductID,
			Name:      ci.Name,
			UnitPrice: ci.UnitPrice,
			Quantity:  ci.Quantity,
			ImageURL:  ci.ImageURL,
		}
	}

	return s.createIntent(ctx, uid, "cart", items, customer)
}

// Confirm verifies the returned payment and records the order. Each step is
// gated on the previous one: a bad signature never reaches the order store,
// and a persisted order is required before the success redirect is issued.
func (s *Service) Confirm(ctx context.Context, uid string, req *ConfirmRequest) (*ConfirmResponse, error) {
	if err := s.gateway.VerifySignature(req.GatewayOrderID, req.PaymentID, req.Signature); err != nil {
		return nil, err
	}

	pending, err := s.pending.Load(ctx, req.GatewayOrderID)
	if err != nil {
		return nil, err
	}
	if pending.UserID != "" && pending.UserID != uid {
		return nil, ErrPendingNotFound
	}

	// Guest orders carry no user id.
	var userID *string
	if pending.UserID != "" {
		userID = &pending.UserID
	}

	recorded, err := s.orders.Create(&order.CreateOrderInput{
		UserID:         userID,
		Items:          pending.Items,
		Customer:       pending.Customer,
		TotalAmount:    pending.Amount,
		PaymentID:      req.PaymentID,
		GatewayOrderID: req.GatewayOrderID,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"payment_id":       req.PaymentID,
			"gateway_order_id": req.GatewayOrderID,
			"user_id":          uid,
		}).WithError(err).Error("verified payment could not be recorded")
		return nil, fmt.Errorf("%w (payment ref %s): %v", ErrOrderNotRecorded, req.PaymentID, err)
	}

	if pending.Source == "cart" {
		if err := s.carts.ClearCart(ctx, uid); err != nil {
			// Order is recorded; a stale cart is recoverable.
			s.log.WithField("user_id", uid).WithError(err).Warn("failed to clear cart after checkout")
		}
	}

	if err := s.pending.Delete(ctx, req.GatewayOrderID); err != nil {
		s.log.WithField("gateway_order_id", req.GatewayOrderID).WithError(err).Warn("failed to delete pending checkout")
	}

	return &ConfirmResponse{
		OrderID:     recorded.ID,
		OrderNumber: recorded.OrderNumber,
		RedirectURL: fmt.Sprintf("%s?orderId=%d", s.config.Checkout.SuccessPath, recorded.ID),
	}, nil
}

// resolveCustomer picks the shipping details for a buy-now checkout: the
// submitted form when present, otherwise the signed-in user's saved profile.
func (s *Service) resolveCustomer(uid string, form *CustomerForm) (order.CustomerDetails, error) {
	if form != nil {
		customer := form.toDetails()
		policy := s.ValidateDetails
		if policy == nil {
			policy = RequireShippingDetails
		}
		if err := policy(customer); err != nil {
			return order.CustomerDetails{}, err
		}
		return customer, nil
	}
	if uid == "" {
		return order.CustomerDetails{}, fmt.Errorf("%w: shipping details are required", ErrInvalidDetails)
	}
	return s.requireCompleteProfile(uid)
}

// requireCompleteProfile loads the user and rejects checkout when the phone
// number or address line is missing.
func (s *Service) requireCompleteProfile(uid string) (order.CustomerDetails, error) {
	u, err := s.profiles.GetUser(uid)
	if err != nil {
		return order.CustomerDetails{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if !u.IsComplete() {
		return order.CustomerDetails{}, ErrProfileIncomplete
	}

	return order.CustomerDetails{
		Name:       u.Name,
		Phone:      u.Phone,
		Email:      u.Email,
		Village:    u.Address.Village,
		PostOffice: u.Address.PostOffice,
		District:   u.Address.District,
		Pincode:    u.Address.Pincode,
		State:      u.Address.State,
		Landmark:   u.Address.Landmark,
	}, nil
}

func (s *Service) createIntent(ctx context.Context, uid, source string, items []order.Item, customer order.CustomerDetails) (*IntentResponse, error) {
	var total int64
	for _, item := range items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	if total <= 0 {
		return nil, fmt.Errorf("checkout total must be positive, got %d", total)
	}

	receipt := fmt.Sprintf("rcpt_%s", uuid.New().String()[:18])
	gwOrder, err := s.gateway.CreateOrder(ctx, total, receipt, map[string]string{
		"user_id": uid,
		"source":  source,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment order: %w", err)
	}

	pending := &pendingCheckout{
		UserID:    uid,
		Source:    source,
		Items:     items,
		Customer:  customer,
		Amount:    total,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.pending.Save(ctx, gwOrder.ID, pending); err != nil {
		return nil, fmt.Errorf("failed to store pending checkout: %w", err)
	}

	return &IntentResponse{
		GatewayOrderID: gwOrder.ID,
		Amount:         total,
		Currency:       gwOrder.Currency,
		Receipt:        receipt,
		KeyID:          s.config.Razorpay.KeyID,
	}, nil
}

// redisPendingStore keeps pending checkouts in Redis with a TTL so hung
// payments expire instead of accumulating.
type redisPendingStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *redisPendingStore) key(gatewayOrderID string) string {
	return fmt.Sprintf("checkout:pending:%s", gatewayOrderID)
}

func (r *redisPendingStore) Save(ctx context.Context, gatewayOrderID string, pending *pendingCheckout) error {
	data, err := json.Marshal(pending)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(gatewayOrderID), data, r.ttl).Err()
}

func (r *redisPendingStore) Load(ctx context.Context, gatewayOrderID string) (*pendingCheckout, error) {
	data, err := r.client.Get(ctx, r.key(gatewayOrderID)).Result()
	if err == redis.Nil {
		return nil, ErrPendingNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to load pending checkout: %w", err)
	}

	var pending pendingCheckout
	if err := json.Unmarshal([]byte(data), &pending); err != nil {
		return nil, fmt.Errorf("failed to decode pending checkout: %w", err)
	}
	return &pending, nil
}

func (r *redisPendingStore) Delete(ctx context.Context, gatewayOrderID string) error {
	return r.client.Del(ctx, r.key(gatewayOrderID)).Err()
}
