// internal/domain/payment/razorpay.go
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
)

// RazorpayGateway talks to the Razorpay REST API
type RazorpayGateway struct {
	keyID      string
	keySecret  string
	baseURL    string
	currency   string
	httpClient *http.Client
}

// NewRazorpayGateway creates a new Razorpay gateway client
func NewRazorpayGateway(cfg *config.Config) *RazorpayGateway {
	return &RazorpayGateway{
		keyID:     cfg.Razorpay.KeyID,
		keySecret: cfg.Razorpay.KeySecret,
		baseURL:   cfg.Razorpay.BaseURL,
		currency:  cfg.Razorpay.Currency,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// KeyID returns the publishable key the client needs to open the payment UI
func (r *RazorpayGateway) KeyID() string {
	return r.keyID
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type razorpayOrder struct {
	ID        string            `json:"id"`
	Entity    string            `json:"entity"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Receipt   string            `json:"receipt"`
	Status    string            `json:"status"`
	Notes     map[string]string `json:"notes"`
	CreatedAt int64             `json:"created_at"`
}

type razorpayPayment struct {
	ID       string `json:"id"`
	Entity   string `json:"entity"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	OrderID  string `json:"order_id"`
	Method   string `json:"method"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
}

// CreateOrder registers a payment intent at Razorpay
func (r *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, receipt string, notes map[string]string) (*GatewayOrder, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive, got %d", amount)
	}

	body, err := r.makeAPICall(ctx, http.MethodPost, "/orders", createOrderRequest{
		Amount:   amount,
		Currency: r.currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	var rzpOrder razorpayOrder
	if err := json.Unmarshal(body, &rzpOrder); err != nil {
		return nil, fmt.Errorf("failed to parse gateway order response: %w", err)
	}

	return &GatewayOrder{
		ID:       rzpOrder.ID,
		Amount:   rzpOrder.Amount,
		Currency: rzpOrder.Currency,
		Receipt:  rzpOrder.Receipt,
		Status:   rzpOrder.Status,
		Notes:    rzpOrder.Notes,
	}, nil
}

// VerifySignature checks the HMAC-SHA256 signature Razorpay's checkout
// returns after a successful payment. The signed payload is
// "<order_id>|<payment_id>" keyed with the API secret.
func (r *RazorpayGateway) VerifySignature(gatewayOrderID, paymentID, signature string) error {
	if gatewayOrderID == "" || paymentID == "" || signature == "" {
		return ErrSignatureMismatch
	}

	mac := hmac.New(sha256.New, []byte(r.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}
	return nil
}

// FetchPayment retrieves a captured payment from Razorpay
func (r *RazorpayGateway) FetchPayment(ctx context.Context, paymentID string) (*Details, error) {
	body, err := r.makeAPICall(ctx, http.MethodGet, "/payments/"+paymentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment: %w", err)
	}

	var rzpPayment razorpayPayment
	if err := json.Unmarshal(body, &rzpPayment); err != nil {
		return nil, fmt.Errorf("failed to parse payment response: %w", err)
	}

	return &Details{
		ID:       rzpPayment.ID,
		OrderID:  rzpPayment.OrderID,
		Amount:   rzpPayment.Amount,
		Currency: rzpPayment.Currency,
		Status:   rzpPayment.Status,
		Method:   rzpPayment.Method,
		Email:    rzpPayment.Email,
		Contact:  rzpPayment.Contact,
	}, nil
}

// makeAPICall makes an authenticated HTTP call to the Razorpay API
func (r *RazorpayGateway) makeAPICall(ctx context.Context, method, endpoint string, data interface{}) ([]byte, error) {
	if r.keyID == "" || r.keySecret == "" {
		return nil, fmt.Errorf("gateway API credentials not configured")
	}

	var reqBody []byte
	if data != nil {
		var err error
		reqBody, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request data: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(r.keyID, r.keySecret)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make API call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API call failed with status %d: %s", resp.StatusCode, respBody)
	}

	return respBody, nil
}
