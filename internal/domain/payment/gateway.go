// Package payment integrates the storefront with the payment gateway.
package payment

import (
	"context"
	"errors"
)

// ErrSignatureMismatch is returned when a payment signature fails
// verification. Callers must treat the payment as unverified.
var ErrSignatureMismatch = errors.New("payment signature mismatch")

// GatewayOrder represents a payment intent created at the gateway
type GatewayOrder struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"` // minor units
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Status   string            `json:"status"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// Details represents a captured payment as reported by the gateway
type Details struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Method   string `json:"method"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
}

// Gateway is the payment provider surface the checkout flow depends on
type Gateway interface {
	// CreateOrder registers a payment intent for the given amount in minor
	// units and returns the gateway's order.
	CreateOrder(ctx context.Context, amount int64, receipt string, notes map[string]string) (*GatewayOrder, error)

	// VerifySignature checks the signature the client returns after payment.
	// Returns ErrSignatureMismatch when it does not match.
	VerifySignature(gatewayOrderID, paymentID, signature string) error

	// FetchPayment retrieves the captured payment from the gateway
	FetchPayment(ctx context.Context, paymentID string) (*Details, error)
}
