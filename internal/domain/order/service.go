// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no order matches the lookup
	ErrNotFound = errors.New("order not found")

	// ErrInvalidTransition is returned when a status update would move the
	// order backwards or skip a step.
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// Service handles order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateOrderInput carries everything needed to record a verified purchase
type CreateOrderInput struct {
	UserID         *string
	Items          []Item
	Customer       CustomerDetails
	TotalAmount    int64
	PaymentID      string
	GatewayOrderID string
}

// ListRequest represents admin order list query parameters
type ListRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	Status    Status `form:"status"`
	SortOrder string `form:"sort_order,default=desc"`
}

// ListResponse represents a page of orders
type ListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// UpdateStatusRequest represents an admin status update
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}

// Create records a verified purchase. The unique payment id makes the call
// idempotent: a retried confirmation returns the already recorded order
// instead of inserting a second one.
func (s *Service) Create(input *CreateOrderInput) (*Order, error) {
	if input.PaymentID == "" {
		return nil, fmt.Errorf("payment id is required")
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("order has no items")
	}

	var existing Order
	err := s.db.Preload("Items").Where("payment_id = ?", input.PaymentID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to check for existing order: %w", err)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	newOrder := Order{
		UserID:         input.UserID,
		Status:         StatusPlaced,
		TotalAmount:    input.TotalAmount,
		Currency:       s.config.Razorpay.Currency,
		PaymentID:      input.PaymentID,
		GatewayOrderID: input.GatewayOrderID,
		Customer:       input.Customer,
	}

	if err := tx.Create(&newOrder).Error; err != nil {
		tx.Rollback()
		// Concurrent confirmation of the same payment loses the unique-index
		// race; return the winner's order.
		if isUniqueViolation(err) {
			var winner Order
			if lookupErr := s.db.Preload("Items").Where("payment_id = ?", input.PaymentID).First(&winner).Error; lookupErr == nil {
				return &winner, nil
			}
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	newOrder.OrderNumber = newOrder.GenerateOrderNumber()
	if err := tx.Model(&newOrder).Update("order_number", newOrder.OrderNumber).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to set order number: %w", err)
	}

	for i := range input.Items {
		item := input.Items[i]
		item.OrderID = newOrder.ID
		item.Subtotal = item.UnitPrice * int64(item.Quantity)
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
		newOrder.Items = append(newOrder.Items, item)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return &newOrder, nil
}

// GetByID retrieves an order by its id
func (s *Service) GetByID(id uint) (*Order, error) {
	var o Order
	err := s.db.Preload("Items").Where("id = ?", id).First(&o).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &o, nil
}

// GetByIDForUser retrieves an order only if it belongs to the given user
func (s *Service) GetByIDForUser(id uint, uid string) (*Order, error) {
	var o Order
	err := s.db.Preload("Items").Where("id = ? AND user_id = ?", id, uid).First(&o).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &o, nil
}

// ListByUser returns the user's orders, newest first
func (s *Service) ListByUser(uid string) ([]Order, error) {
	var orders []Order
	err := s.db.Preload("Items").
		Where("user_id = ?", uid).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// List returns all orders for the admin view with filtering and pagination
func (s *Service) List(req *ListRequest) (*ListResponse, error) {
	var orders []Order
	var total int64

	query := s.db.Model(&Order{}).Preload("Items")

	if req.Status != "" {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("unknown order status: %s", req.Status)
		}
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	sortOrder := "DESC"
	if strings.EqualFold(req.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	err := query.Order("created_at " + sortOrder).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ListResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}

// UpdateStatus advances an order through its lifecycle. Moves are forward
// only and one step at a time; anything else is rejected.
func (s *Service) UpdateStatus(id uint, next Status) (*Order, error) {
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
	}

	var o Order
	if err := s.db.Preload("Items").Where("id = ?", id).First(&o).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}

	if !o.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{"status": next}
	switch next {
	case StatusDispatched:
		updates["dispatched_at"] = now
	case StatusDelivered:
		updates["delivered_at"] = now
	}

	if err := s.db.Model(&o).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	o.Status = next
	return &o, nil
}

// isUniqueViolation reports whether the error is a unique constraint failure
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
