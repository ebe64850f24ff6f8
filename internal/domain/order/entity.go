// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Status represents the fulfillment state of an order
type Status string

const (
	StatusPlaced     Status = "placed"
	StatusDispatched Status = "dispatched"
	StatusDelivered  Status = "delivered"
)

// statusRank orders the lifecycle so transitions can only move forward
var statusRank = map[Status]int{
	StatusPlaced:     0,
	StatusDispatched: 1,
	StatusDelivered:  2,
}

// IsValid reports whether the status is a known lifecycle state
func (s Status) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo reports whether the status may move to next. Transitions
// are forward-only and one step at a time.
func (s Status) CanTransitionTo(next Status) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to == from+1
}

// Order represents a placed order. Orders are created only after the gateway
// has verified the payment; PaymentID is unique so a retried confirmation
// cannot record the same payment twice.
type Order struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderNumber string  `gorm:"uniqueIndex;size:50" json:"order_number"`
	UserID      *string `gorm:"index;size:128" json:"user_id"`
	Status      Status  `gorm:"not null;default:'placed'" json:"status"`

	TotalAmount int64  `gorm:"not null" json:"total_amount"` // minor units
	Currency    string `gorm:"size:3;default:'INR'" json:"currency"`

	PaymentID      string `gorm:"uniqueIndex;not null;size:100" json:"payment_id"`
	GatewayOrderID string `gorm:"index;size:100" json:"gateway_order_id"`

	Customer CustomerDetails `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`

	// Timestamps
	DispatchedAt *time.Time     `json:"dispatched_at"`
	DeliveredAt  *time.Time     `json:"delivered_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []Item `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// Item is a line-item snapshot taken at the time the order was placed.
// Catalog edits after purchase do not change it.
type Item struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Subtotal  int64     `gorm:"not null" json:"subtotal"`
	ImageURL  string    `gorm:"size:500" json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerDetails is the contact and delivery snapshot embedded in an order
type CustomerDetails struct {
	Name       string `gorm:"size:255" json:"name"`
	Phone      string `gorm:"size:20" json:"phone"`
	Email      string `gorm:"size:255" json:"email"`
	Village    string `gorm:"size:255" json:"village"`
	PostOffice string `gorm:"size:255" json:"post_office"`
	District   string `gorm:"size:100" json:"district"`
	Pincode    string `gorm:"size:10" json:"pincode"`
	State      string `gorm:"size:100" json:"state"`
	Landmark   string `gorm:"size:255" json:"landmark,omitempty"`
}

// TableName overrides
func (Order) TableName() string { return "orders" }
func (Item) TableName() string  { return "order_items" }

// GenerateOrderNumber generates a unique order number
func (o *Order) GenerateOrderNumber() string {
	// Format: ORD-YYYYMMDD-XXXXX
	return fmt.Sprintf("ORD-%s-%05d", time.Now().Format("20060102"), o.ID)
}

// GetFormattedTotal returns the total amount in major units
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.TotalAmount) / 100
}
