package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/domain/user"
)

type fakeCarts struct {
	items   map[string]cart.Items
	cleared []string
}

func (f *fakeCarts) GetItems(_ context.Context, uid string) (cart.Items, error) {
	return f.items[uid], nil
}

func (f *fakeCarts) ClearCart(_ context.Context, uid string) error {
	f.cleared = append(f.cleared, uid)
	delete(f.items, uid)
	return nil
}

type fakeCatalog struct {
	products map[uint]*catalog.Product
}

func (f *fakeCatalog) GetProduct(id uint) (*catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("product not found")
	}
	return p, nil
}

type fakeProfiles struct {
	users map[string]*user.User
}

func (f *fakeProfiles) GetUser(uid string) (*user.User, error) {
	u, ok := f.users[uid]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

type fakeOrders struct {
	created []*order.CreateOrderInput
	nextID  uint
	fail    error
}

func (f *fakeOrders) Create(input *order.CreateOrderInput) (*order.Order, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.created = append(f.created, input)
	f.nextID++
	return &order.Order{
		ID:          f.nextID,
		OrderNumber: fmt.Sprintf("ORD-TEST-%05d", f.nextID),
		TotalAmount: input.TotalAmount,
		PaymentID:   input.PaymentID,
		Status:      order.StatusPlaced,
	}, nil
}

type fakeGateway struct {
	orders   []*payment.GatewayOrder
	validSig string
	nextID   int
}

func (f *fakeGateway) CreateOrder(_ context.Context, amount int64, receipt string, notes map[string]string) (*payment.GatewayOrder, error) {
	f.nextID++
	gw := &payment.GatewayOrder{
		ID:       fmt.Sprintf("order_gw%d", f.nextID),
		Amount:   amount,
		Currency: "INR",
		Receipt:  receipt,
		Status:   "created",
		Notes:    notes,
	}
	f.orders = append(f.orders, gw)
	return gw, nil
}

func (f *fakeGateway) VerifySignature(_, _, signature string) error {
	if signature != f.validSig {
		return payment.ErrSignatureMismatch
	}
	return nil
}

func (f *fakeGateway) FetchPayment(_ context.Context, paymentID string) (*payment.Details, error) {
	return &payment.Details{ID: paymentID, Status: "captured"}, nil
}

type memPendingStore struct {
	entries map[string]*pendingCheckout
}

func (m *memPendingStore) Save(_ context.Context, id string, p *pendingCheckout) error {
	m.entries[id] = p
	return nil
}

func (m *memPendingStore) Load(_ context.Context, id string) (*pendingCheckout, error) {
	p, ok := m.entries[id]
	if !ok {
		return nil, ErrPendingNotFound
	}
	return p, nil
}

func (m *memPendingStore) Delete(_ context.Context, id string) error {
	delete(m.entries, id)
	return nil
}

type fixture struct {
	svc     *Service
	carts   *fakeCarts
	catalog *fakeCatalog
	users   *fakeProfiles
	orders  *fakeOrders
	gateway *fakeGateway
	pending *memPendingStore
}

func newFixture() *fixture {
	cfg := &config.Config{}
	cfg.Razorpay.KeyID = "rzp_test_key"
	cfg.Razorpay.Currency = "INR"
	cfg.Checkout.SuccessPath = "success.html"
	cfg.Checkout.ProfilePath = "profile.html"

	log := logrus.New()
	log.SetOutput(io.Discard)

	f := &fixture{
		carts:   &fakeCarts{items: map[string]cart.Items{}},
		catalog: &fakeCatalog{products: map[uint]*catalog.Product{}},
		users:   &fakeProfiles{users: map[string]*user.User{}},
		orders:  &fakeOrders{},
		gateway: &fakeGateway{validSig: "good-signature"},
		pending: &memPendingStore{entries: map[string]*pendingCheckout{}},
	}
	f.svc = &Service{
		config:   cfg,
		log:      log,
		pending:  f.pending,
		carts:    f.carts,
		catalog:  f.catalog,
		profiles: f.users,
		orders:   f.orders,
		gateway:  f.gateway,
	}
	return f
}

func completeUser(uid string) *user.User {
	return &user.User{
		UID:   uid,
		Name:  "Asha",
		Email: "asha@example.com",
		Phone: "9999999999",
		Address: user.ShippingAddress{
			Village:    "Mellor",
			PostOffice: "Rangia",
			District:   "Kamrup",
			Pincode:    "781354",
			State:      "Assam",
		},
	}
}

func TestBuyNow(t *testing.T) {
	f := newFixture()
	f.users.users["u1"] = completeUser("u1")
	f.catalog.products[7] = &catalog.Product{ID: 7, Name: "Mustard Oil", SellingPrice: 18500, ImageURL: "oil.jpg"}

	intent, err := f.svc.BuyNow(context.Background(), "u1", &BuyNowRequest{ProductID: 7, Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(37000), intent.Amount)
	assert.Equal(t, "INR", intent.Currency)
	assert.Equal(t, "rzp_test_key", intent.KeyID)
	assert.NotEmpty(t, intent.GatewayOrderID)

	// Checkout state is parked until confirmation.
	p, err := f.pending.Load(context.Background(), intent.GatewayOrderID)
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "buy_now", p.Source)
	require.Len(t, p.Items, 1)
	assert.Equal(t, 2, p.Items[0].Quantity)
	assert.Equal(t, "Asha", p.Customer.Name)
}

func fullForm() *CustomerForm {
	return &CustomerForm{
		Name:       "Bhaskar",
		Phone:      "8888888888",
		Email:      "bhaskar@example.com",
		Village:    "Boko",
		PostOffice: "Boko",
		District:   "Kamrup",
		Pincode:    "781123",
		State:      "Assam",
	}
}

func TestBuyNowGuestWithForm(t *testing.T) {
	f := newFixture()
	f.catalog.products[7] = &catalog.Product{ID: 7, Name: "Mustard Oil", SellingPrice: 18500}

	intent, err := f.svc.BuyNow(context.Background(), "", &BuyNowRequest{
		ProductID: 7,
		Quantity:  1,
		Details:   fullForm(),
	})
	require.NoError(t, err)

	p, err := f.pending.Load(context.Background(), intent.GatewayOrderID)
	require.NoError(t, err)
	assert.Empty(t, p.UserID)
	assert.Equal(t, "Bhaskar", p.Customer.Name)
	assert.Equal(t, "Boko", p.Customer.Village)
}

func TestBuyNowFormOverridesProfile(t *testing.T) {
	f := newFixture()
	f.users.users["u1"] = completeUser("u1")
	f.catalog.products[7] = &catalog.Product{ID: 7, Name: "Mustard Oil", SellingPrice: 18500}

	intent, err := f.svc.BuyNow(context.Background(), "u1", &BuyNowRequest{
		ProductID: 7,
		Details:   fullForm(),
	})
	require.NoError(t, err)

	// The submitted form wins over the saved profile.
	p, err := f.pending.Load(context.Background(), intent.GatewayOrderID)
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "Bhaskar", p.Customer.Name)
}

func TestBuyNowFormFailsPolicy(t *testing.T) {
	f := newFixture()
	f.catalog.products[7] = &catalog.Product{ID: 7, Name: "Mustard Oil", SellingPrice: 18500}

	form := fullForm()
	form.Phone = "  "

	_, err := f.svc.BuyNow(context.Background(), "", &BuyNowRequest{ProductID: 7, Details: form})
	assert.ErrorIs(t, err, ErrInvalidDetails)
	assert.Empty(t, f.gateway.orders)
	assert.Empty(t, f.pending.entries)
}

func TestBuyNowGuestWithoutForm(t *testing.T) {
	f := newFixture()
	f.catalog.products[7] = &catalog.Product{ID: 7, Name: "Mustard Oil", SellingPrice: 18500}

	_, err := f.svc.BuyNow(context.Background(), "", &BuyNowRequest{ProductID: 7})
	assert.ErrorIs(t, err, ErrInvalidDetails)
	assert.Empty(t, f.gateway.orders)
}

func TestBuyNowCustomPolicy(t *testing.T) {
	f := newFixture()
	f.catalog.products[7] = &catalog.Product{ID: 7, Name: "Mustard Oil", SellingPrice: 18500}
	f.svc.ValidateDetails = func(c order.CustomerDetails) error {
		if c.Pincode == "" {
			return fmt.Errorf("%w: pincode is required", ErrInvalidDetails)
		}
		return nil
	}

	form := fullForm()
	form.Pincode = ""

	_, err := f.svc.BuyNow(context.Background(), "", &BuyNowRequest{ProductID: 7, Details: form})
	assert.ErrorIs(t, err, ErrInvalidDetails)
}

func TestConfirmGuestOrder(t *testing.T) {
	f := newFixture()
	f.catalog.products[7] = &catalog.Product{ID: 7, Name: "Mustard Oil", SellingPrice: 18500}

	intent, err := f.svc.BuyNow(context.Background(), "", &BuyNowRequest{ProductID: 7, Details: fullForm()})
	require.NoError(t, err)

	resp, err := f.svc.Confirm(context.Background(), "", &ConfirmRequest{
		GatewayOrderID: intent.GatewayOrderID,
		PaymentID:      "pay_guest",
		Signature:      "good-signature",
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.OrderID)

	// Guest orders are recorded without a user id.
	require.Len(t, f.orders.created, 1)
	assert.Nil(t, f.orders.created[0].UserID)
	assert.Empty(t, f.carts.cleared)
}

func TestBuyNowDefaultsQuantityToOne(t *testing.T) {
	f := newFixture()
	f.users.users["u1"] = completeUser("u1")
	f.catalog.products[7] = &catalog.Product{ID: 7, Name: "Mustard Oil", SellingPrice: 18500}

	intent, err := f.svc.BuyNow(context.Background(), "u1", &BuyNowRequest{ProductID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(18500), intent.Amount)
}

func TestCheckoutRequiresCompleteProfile(t *testing.T) {
	f := newFixture()
	f.users.users["u1"] = &user.User{UID: "u1", Name: "New User"} // no phone, no address
	f.catalog.products[7] = &catalog.Product{ID: 7, Name: "Mustard Oil", SellingPrice: 18500}
	f.carts.items["u1"] = cart.Items{{ProductID: 7, Name: "Mustard Oil", UnitPrice: 18500, Quantity: 1}}

	_, err := f.svc.BuyNow(context.Background(), "u1", &BuyNowRequest{ProductID: 7})
	assert.ErrorIs(t, err, ErrProfileIncomplete)

	_, err = f.svc.CartCheckout(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrProfileIncomplete)

	// An incomplete profile must stop everything before money moves.
	assert.Empty(t, f.gateway.orders)
	assert.Empty(t, f.orders.created)
	assert.Empty(t, f.pending.entries)
}

func TestCartCheckout(t *testing.T) {
	f := newFixture()
	f.users.users["u1"] = completeUser("u1")
	f.carts.items["u1"] = cart.Items{
		{ProductID: 1, Name: "Rice 5kg", UnitPrice: 42000, Quantity: 1},
		{ProductID: 2, Name: "Dal 1kg", UnitPrice: 9500, Quantity: 3},
	}

	intent, err := f.svc.CartCheckout(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, int64(42000+3*9500), intent.Amount)

	p, err := f.pending.Load(context.Background(), intent.GatewayOrderID)
	require.NoError(t, err)
	assert.Equal(t, "cart", p.Source)
	assert.Len(t, p.Items, 2)
}

func TestCartCheckoutEmptyCart(t *testing.T) {
	f := newFixture()
	f.users.users["u1"] = completeUser("u1")

	_, err := f.svc.CartCheckout(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, f.gateway.orders)
}

func TestConfirm(t *testing.T) {
	f := newFixture()
	f.users.users["u1"] = completeUser("u1")
	f.carts.items["u1"] = cart.Items{{ProductID: 1, Name: "Rice 5kg", UnitPrice: 42000, Quantity: 1}}

	intent, err := f.svc.CartCheckout(context.Background(), "u1")
	require.NoError(t, err)

	resp, err := f.svc.Confirm(context.Background(), "u1", &ConfirmRequest{
		GatewayOrderID: intent.GatewayOrderID,
		PaymentID:      "pay_123",
		Signature:      "good-signature",
	})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("success.html?orderId=%d", resp.OrderID), resp.RedirectURL)
	require.Len(t, f.orders.created, 1)
	assert.Equal(t, "pay_123", f.orders.created[0].PaymentID)
	assert.Equal(t, int64(42000), f.orders.created[0].TotalAmount)

	// Cart checkout clears the cart and consumes the pending record.
	assert.Contains(t, f.carts.cleared, "u1")
	assert.Empty(t, f.pending.entries)
}

func TestConfirmBadSignature(t *testing.T) {
	f := newFixture()
	f.users.users["u1"] = completeUser("u1")
	f.catalog.products[7] = &catalog.Product{ID: 7, Name: "Mustard Oil", SellingPrice: 18500}

	intent, err := f.svc.BuyNow(context.Background(), "u1", &BuyNowRequest{ProductID: 7})
	require.NoError(t, err)

	_, err = f.svc.Confirm(context.Background(), "u1", &ConfirmRequest{
		GatewayOrderID: intent.GatewayOrderID,
		PaymentID:      "pay_123",
		Signature:      "forged",
	})
	assert.ErrorIs(t, err, payment.ErrSignatureMismatch)

	// Nothing may be recorded for an unverified payment.
	assert.Empty(t, f.orders.created)
}

func TestConfirmUnknownPending(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Confirm(context.Background(), "u1", &ConfirmRequest{
		GatewayOrderID: "order_missing",
		PaymentID:      "pay_123",
		Signature:      "good-signature",
	})
	assert.ErrorIs(t, err, ErrPendingNotFound)
}

func TestConfirmWrongUser(t *testing.T) {
	f := newFixture()
	f.users.users["u1"] = completeUser("u1")
	f.catalog.products[7] = &catalog.Product{ID: 7, Name: "Mustard Oil", SellingPrice: 18500}

	intent, err := f.svc.BuyNow(context.Background(), "u1", &BuyNowRequest{ProductID: 7})
	require.NoError(t, err)

	_, err = f.svc.Confirm(context.Background(), "u2", &ConfirmRequest{
		GatewayOrderID: intent.GatewayOrderID,
		PaymentID:      "pay_123",
		Signature:      "good-signature",
	})
	assert.ErrorIs(t, err, ErrPendingNotFound)
	assert.Empty(t, f.orders.created)
}

func TestConfirmOrderNotRecorded(t *testing.T) {
	f := newFixture()
	f.users.users["u1"] = completeUser("u1")
	f.catalog.products[7] = &catalog.Product{ID: 7, Name: "Mustard Oil", SellingPrice: 18500}

	intent, err := f.svc.BuyNow(context.Background(), "u1", &BuyNowRequest{ProductID: 7})
	require.NoError(t, err)

	f.orders.fail = errors.New("database down")

	_, err = f.svc.Confirm(context.Background(), "u1", &ConfirmRequest{
		GatewayOrderID: intent.GatewayOrderID,
		PaymentID:      "pay_123",
		Signature:      "good-signature",
	})
	require.ErrorIs(t, err, ErrOrderNotRecorded)
	// The payment reference must survive into the error for reconciliation.
	assert.Contains(t, err.Error(), "pay_123")

	// The pending record stays so a retry can still record the order.
	assert.NotEmpty(t, f.pending.entries)
}
