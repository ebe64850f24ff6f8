// internal/domain/cart/entity.go
package cart

import (
	"fmt"
	"time"
)

// Item represents a single line in a shopping cart
type Item struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"` // minor units (paise)
	Quantity  int       `json:"quantity"`
	ImageURL  string    `json:"image_url,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// Subtotal returns the line total in minor units
func (i Item) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// Items is the ordered contents of a cart. Order is insertion order and is
// preserved across updates so positional removal stays stable.
type Items []Item

// Cart represents a user's cart as stored in Redis
type Cart struct {
	UserID    string    `json:"user_id"`
	Items     Items     `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Totals represents calculated cart totals
type Totals struct {
	ItemCount     int    `json:"item_count"`     // number of distinct lines
	TotalQuantity int    `json:"total_quantity"` // sum of all quantities
	TotalAmount   int64  `json:"total_amount"`   // minor units
	TotalDisplay  string `json:"total_display"`  // formatted with two decimals
}

// Add merges the given item into the cart. If a line with the same product
// already exists its quantity is incremented, otherwise the item is appended.
func (items Items) Add(item Item) Items {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			return items
		}
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}
	return append(items, item)
}

// UpdateQuantity sets the quantity of the line at index. Quantities below one
// are clamped to one; removal is an explicit separate operation.
func (items Items) UpdateQuantity(index, quantity int) (Items, error) {
	if index < 0 || index >= len(items) {
		return items, fmt.Errorf("cart index %d out of range", index)
	}
	if quantity < 1 {
		quantity = 1
	}
	items[index].Quantity = quantity
	return items, nil
}

// RemoveAt deletes the line at index, preserving the order of the rest.
func (items Items) RemoveAt(index int) (Items, error) {
	if index < 0 || index >= len(items) {
		return items, fmt.Errorf("cart index %d out of range", index)
	}
	return append(items[:index], items[index+1:]...), nil
}

// Total returns the sum of all line subtotals in minor units
func (items Items) Total() int64 {
	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

// BadgeCount returns the total quantity across all lines. A zero return
// means the cart indicator should be hidden.
func (items Items) BadgeCount() int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// CalculateTotals computes the cart summary
func (items Items) CalculateTotals() Totals {
	total := items.Total()
	return Totals{
		ItemCount:     len(items),
		TotalQuantity: items.BadgeCount(),
		TotalAmount:   total,
		TotalDisplay:  FormatAmount(total),
	}
}

// FormatAmount renders a minor-unit amount with exactly two decimal places
func FormatAmount(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
