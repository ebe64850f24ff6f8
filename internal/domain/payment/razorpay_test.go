package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-backend/internal/config"
)

func newTestGateway(baseURL string) *RazorpayGateway {
	cfg := &config.Config{}
	cfg.Razorpay.KeyID = "rzp_test_key"
	cfg.Razorpay.KeySecret = "test_secret"
	cfg.Razorpay.BaseURL = baseURL
	cfg.Razorpay.Currency = "INR"
	return NewRazorpayGateway(cfg)
}

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "test_secret", pass)

		var req createOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(22550), req.Amount)
		assert.Equal(t, "INR", req.Currency)
		assert.Equal(t, "rcpt-1", req.Receipt)

		json.NewEncoder(w).Encode(razorpayOrder{
			ID:       "order_abc123",
			Amount:   req.Amount,
			Currency: req.Currency,
			Receipt:  req.Receipt,
			Status:   "created",
			Notes:    req.Notes,
		})
	}))
	defer server.Close()

	gw := newTestGateway(server.URL)
	got, err := gw.CreateOrder(context.Background(), 22550, "rcpt-1", map[string]string{"uid": "u1"})
	require.NoError(t, err)

	assert.Equal(t, "order_abc123", got.ID)
	assert.Equal(t, int64(22550), got.Amount)
	assert.Equal(t, "created", got.Status)
	assert.Equal(t, "u1", got.Notes["uid"])
}

func TestCreateOrderRejectsNonPositiveAmount(t *testing.T) {
	gw := newTestGateway("http://unused")
	_, err := gw.CreateOrder(context.Background(), 0, "rcpt", nil)
	assert.Error(t, err)
}

func TestCreateOrderGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"description":"amount too low"}}`))
	}))
	defer server.Close()

	gw := newTestGateway(server.URL)
	_, err := gw.CreateOrder(context.Background(), 50, "rcpt", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestVerifySignature(t *testing.T) {
	gw := newTestGateway("http://unused")

	t.Run("valid signature", func(t *testing.T) {
		sig := sign("test_secret", "order_abc", "pay_xyz")
		assert.NoError(t, gw.VerifySignature("order_abc", "pay_xyz", sig))
	})

	t.Run("wrong signature", func(t *testing.T) {
		err := gw.VerifySignature("order_abc", "pay_xyz", "deadbeef")
		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("signature for different payment", func(t *testing.T) {
		sig := sign("test_secret", "order_abc", "pay_other")
		err := gw.VerifySignature("order_abc", "pay_xyz", sig)
		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("empty fields", func(t *testing.T) {
		err := gw.VerifySignature("", "pay_xyz", "sig")
		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})
}

func TestFetchPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/payments/pay_xyz", r.URL.Path)

		json.NewEncoder(w).Encode(razorpayPayment{
			ID:       "pay_xyz",
			OrderID:  "order_abc",
			Amount:   22550,
			Currency: "INR",
			Status:   "captured",
			Method:   "upi",
			Email:    "buyer@example.com",
		})
	}))
	defer server.Close()

	gw := newTestGateway(server.URL)
	got, err := gw.FetchPayment(context.Background(), "pay_xyz")
	require.NoError(t, err)

	assert.Equal(t, "pay_xyz", got.ID)
	assert.Equal(t, "order_abc", got.OrderID)
	assert.Equal(t, "captured", got.Status)
	assert.Equal(t, int64(22550), got.Amount)
}
