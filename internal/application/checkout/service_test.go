package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domoutbox "github.com/cornerstore/checkout/internal/domain/outbox"
	"github.com/cornerstore/checkout/internal/domain/order"
	"github.com/cornerstore/checkout/internal/domain/payment"
	"github.com/cornerstore/checkout/internal/infrastructure/memory"
)

type stubIDGen struct{ n int }

func (g *stubIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("order-%d", g.n)
}

type capturePublisher struct{ events []domoutbox.Event }

func (p *capturePublisher) Publish(_ context.Context, e domoutbox.Event) error {
	p.events = append(p.events, e)
	return nil
}

func (p *capturePublisher) names() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventName())
	}
	return out
}

type declinedMethod struct{}

func (declinedMethod) ProcessPayment(decimal.Decimal) bool { return false }
func (declinedMethod) Name() string                        { return "Declined Test Method" }

type fixture struct {
	service   *Service
	catalog   *memory.CatalogStore
	orders    *memory.OrderRepository
	payments  *memory.PaymentRepository
	publisher *capturePublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	catalogStore := memory.NewCatalogStore()
	orderRepo := memory.NewOrderRepository()
	paymentRepo := memory.NewPaymentRepository()
	customerRepo := memory.NewCustomerRepository()
	require.NoError(t, memory.Seed(ctx, catalogStore, customerRepo))

	publisher := &capturePublisher{}
	service := NewService(catalogStore, orderRepo, paymentRepo, customerRepo, &stubIDGen{}, publisher, nil)

	return &fixture{
		service:   service,
		catalog:   catalogStore,
		orders:    orderRepo,
		payments:  paymentRepo,
		publisher: publisher,
	}
}

func TestAddToCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.service.AddToCart(ctx, "cust-1", 1, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	summary := f.service.Summary(ctx, "cust-1")
	assert.Equal(t, 3, summary.ItemCount)
	assert.True(t, decimal.RequireFromString("8.97").Equal(summary.Total))
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	f := newFixture(t)

	ok, err := f.service.AddToCart(context.Background(), "cust-1", 999, 1)
	require.NoError(t, err)
	assert.False(t, ok, "absent products are a quiet no, not an error")
}

func TestUpdateCartItem_ValidatesAgainstFreshStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.service.AddToCart(ctx, "cust-1", 4, 2)
	require.NoError(t, err)
	require.True(t, ok)

	// Another actor drains the shelf behind the cart's back.
	cookies, err := f.catalog.Get(ctx, 4)
	require.NoError(t, err)
	cookies.Stock = 3
	require.NoError(t, f.catalog.Save(ctx, cookies))

	ok, err = f.service.UpdateCartItem(ctx, "cust-1", 4, 10)
	require.NoError(t, err)
	assert.False(t, ok, "update must see the drained stock, not the stale read")

	ok, err = f.service.UpdateCartItem(ctx, "cust-1", 4, 3)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateCartItem_ZeroRemoves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.service.AddToCart(ctx, "cust-1", 1, 3)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = f.service.UpdateCartItem(ctx, "cust-1", 1, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, f.service.Summary(ctx, "cust-1").ItemCount)
}

func TestCheckout_FullPipeline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.service.AddToCart(ctx, "cust-1", 1, 3)
	require.NoError(t, err)
	require.True(t, ok)

	result, err := f.service.Checkout(ctx, CheckoutInput{
		CustomerID: "cust-1",
		Method:     payment.NewPayPal("a@b.com"),
	})
	require.NoError(t, err)

	assert.Equal(t, "order-1", result.Order.OrderID)
	assert.Equal(t, order.StatusPlaced, result.Order.Status)
	assert.True(t, decimal.RequireFromString("8.97").Equal(result.Order.Total))

	assert.Equal(t, payment.StatusSuccess, result.Payment.Status)
	assert.Contains(t, result.Payment.Method, "PayPal")

	assert.Equal(t, "INV-1000", result.Invoice.InvoiceNumber)
	assert.Equal(t, "John Doe", result.Invoice.CustomerName)
	assert.Equal(t, "Paid", string(result.Invoice.Status))

	require.NotNil(t, result.Receipt)
	assert.Equal(t, "RCP-2000", result.Receipt.ReceiptNumber)
	assert.True(t, decimal.RequireFromString("8.97").Equal(result.Receipt.AmountPaid))
	assert.Contains(t, result.Receipt.PaymentMethod, "a@b.com")

	// Stock was deducted, the order and payment were archived, the cart
	// is ready for the next session.
	chips, err := f.catalog.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 47, chips.Stock)

	stored, err := f.orders.Get(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, order.StatusPlaced, stored.Status)

	archived, err := f.payments.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusSuccess, archived.Status)

	assert.Equal(t, 0, f.service.Summary(ctx, "cust-1").ItemCount)

	assert.Equal(t, []string{"order.placed", "payment.processed"}, f.publisher.names())
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Checkout(context.Background(), CheckoutInput{
		CustomerID: "cust-1",
		Method:     payment.NewPayPal("a@b.com"),
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_ValidatesInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Checkout(ctx, CheckoutInput{Method: payment.NewPayPal("a@b.com")})
	assert.ErrorIs(t, err, ErrCustomerIDRequired)

	_, err = f.service.Checkout(ctx, CheckoutInput{CustomerID: "cust-1"})
	assert.ErrorIs(t, err, ErrMethodRequired)
}

func TestCheckout_DocumentNumbersIncreaseAcrossRuns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := f.service.AddToCart(ctx, "cust-1", 2, 1)
		require.NoError(t, err)
		require.True(t, ok)

		result, err := f.service.Checkout(ctx, CheckoutInput{
			CustomerID: "cust-1",
			Method:     payment.NewDigitalWallet("Apple Pay"),
		})
		require.NoError(t, err)

		assert.Equal(t, fmt.Sprintf("INV-%d", 1000+i), result.Invoice.InvoiceNumber)
		assert.Equal(t, fmt.Sprintf("RCP-%d", 2000+i), result.Receipt.ReceiptNumber)
		assert.Equal(t, int64(i+1), result.Payment.PaymentID)
	}
}

func TestCheckout_StockDrainedAfterAdd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.service.AddToCart(ctx, "cust-1", 4, 5)
	require.NoError(t, err)
	require.True(t, ok)

	cookies, err := f.catalog.Get(ctx, 4)
	require.NoError(t, err)
	cookies.Stock = 2
	require.NoError(t, f.catalog.Save(ctx, cookies))

	_, err = f.service.Checkout(ctx, CheckoutInput{
		CustomerID: "cust-1",
		Method:     payment.NewPayPal("a@b.com"),
	})
	assert.ErrorIs(t, err, ErrOutOfStock)

	_, err = f.orders.Get(ctx, "order-1")
	assert.ErrorIs(t, err, order.ErrNotFound, "no order may be cut when stock is gone")
}

func TestCheckout_DeclinedPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.service.AddToCart(ctx, "cust-1", 1, 2)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.service.Checkout(ctx, CheckoutInput{
		CustomerID: "cust-1",
		Method:     declinedMethod{},
	})
	assert.ErrorIs(t, err, ErrPaymentDeclined)

	stored, err := f.orders.Get(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, stored.Status)

	archived, err := f.payments.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusFailed, archived.Status)
	assert.Nil(t, archived.Receipt())

	assert.Equal(t, 2, f.service.Summary(ctx, "cust-1").ItemCount,
		"a declined payment keeps the cart intact")
}
