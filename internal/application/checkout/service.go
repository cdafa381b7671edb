package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/cornerstore/checkout/internal/domain/billing"
	"github.com/cornerstore/checkout/internal/domain/cart"
	"github.com/cornerstore/checkout/internal/domain/catalog"
	"github.com/cornerstore/checkout/internal/domain/customer"
	"github.com/cornerstore/checkout/internal/domain/order"
	domoutbox "github.com/cornerstore/checkout/internal/domain/outbox"
	"github.com/cornerstore/checkout/internal/domain/payment"
	"github.com/cornerstore/checkout/internal/observability"
	"github.com/cornerstore/checkout/internal/observability/logctx"
	"github.com/cornerstore/checkout/internal/pkg/sequence"
)

const (
	checkoutService = "checkout-service"
	useCaseCheckout = "checkout.place"
	spanPrefix      = "UC."
	publishTimeout  = 300 * time.Millisecond
)

var (
	ErrEmptyCart          = errors.New("checkout: cart has no items")
	ErrCustomerIDRequired = errors.New("checkout: customer id is required")
	ErrMethodRequired     = errors.New("checkout: payment method is required")
	ErrOutOfStock         = errors.New("checkout: item no longer in stock")
	ErrPaymentDeclined    = errors.New("checkout: payment was declined")
)

// Service drives the cart -> order -> payment -> invoice/receipt pipeline.
// It owns one cart per customer session and the three document number
// sequences, so numbering is scoped to the service instance instead of
// package-level state.
type Service struct {
	catalog   catalog.Store
	orders    order.Repository
	payments  payment.Repository
	customers customer.Repository
	publisher domoutbox.Publisher
	idGen     IDGenerator

	paymentIDs  *sequence.Sequence
	invoiceNums *sequence.Sequence
	receiptNums *sequence.Sequence

	mu    sync.Mutex
	carts map[string]*cart.Cart

	tel          observability.Observability
	log          observability.Logger
	reqCounter   observability.Counter
	durHistogram observability.Histogram
	totalCounter observability.Counter
	pubCounter   observability.Counter
	pubFailures  observability.Counter
}

// NewService wires the dependencies required to run the checkout pipeline.
func NewService(
	catalogStore catalog.Store,
	orders order.Repository,
	payments payment.Repository,
	customers customer.Repository,
	idGen IDGenerator,
	publisher domoutbox.Publisher,
	tel observability.Observability,
) *Service {
	if tel == nil {
		tel = observability.Nop()
	}
	baseLog := tel.Logger().With(
		observability.F("service", checkoutService),
	)
	metrics := tel.Metrics()

	return &Service{
		catalog:      catalogStore,
		orders:       orders,
		payments:     payments,
		customers:    customers,
		publisher:    publisher,
		idGen:        idGen,
		paymentIDs:   sequence.New(1),
		invoiceNums:  sequence.New(billing.InvoiceNumberStart),
		receiptNums:  sequence.New(payment.ReceiptNumberStart),
		carts:        make(map[string]*cart.Cart),
		tel:          tel,
		log:          baseLog,
		reqCounter:   metrics.Counter(observability.MUsecaseRequests),
		durHistogram: metrics.Histogram(observability.MUsecaseDuration),
		totalCounter: metrics.Counter(observability.MCheckoutTotal),
		pubCounter:   metrics.Counter(observability.MEventsPublished),
		pubFailures:  metrics.Counter(observability.MEventPublishFail),
	}
}

// Cart returns the live cart for the customer, creating one on first use.
func (s *Service) Cart(customerID string) *cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[customerID]
	if !ok {
		c = cart.New(customerID)
		s.carts[customerID] = c
	}
	return c
}

// AddToCart re-fetches the product from the catalog and adds it to the
// customer's cart. It reports false when the product is absent, unavailable,
// or the quantity exceeds current stock.
func (s *Service) AddToCart(ctx context.Context, customerID string, productID int64, quantity int) (bool, error) {
	logger := logctx.FromOr(ctx, s.log).With(
		observability.F("customer_id", customerID),
		observability.F("product_id", productID),
	)

	product, err := s.catalog.Get(ctx, productID)
	if errors.Is(err, catalog.ErrNotFound) {
		logger.Debug("cart_add_rejected_unknown_product")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checkout: catalog lookup: %w", err)
	}

	ok := s.Cart(customerID).AddItem(product, quantity)
	if !ok {
		logger.Debug("cart_add_rejected", observability.F("quantity", quantity))
	}
	return ok, nil
}

// UpdateCartItem replaces the quantity of a cart line, re-validating against
// a fresh catalog read. Zero or negative quantities remove the line.
func (s *Service) UpdateCartItem(ctx context.Context, customerID string, productID int64, quantity int) (bool, error) {
	c := s.Cart(customerID)
	if quantity <= 0 {
		return c.RemoveItem(productID), nil
	}

	product, err := s.catalog.Get(ctx, productID)
	if errors.Is(err, catalog.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checkout: catalog lookup: %w", err)
	}

	c.Refresh(product)
	return c.UpdateItemQuantity(productID, quantity), nil
}

// RemoveFromCart drops the product's line from the customer's cart.
func (s *Service) RemoveFromCart(_ context.Context, customerID string, productID int64) bool {
	return s.Cart(customerID).RemoveItem(productID)
}

// CartSummary is the cart projection handed to presentation layers.
type CartSummary struct {
	Items     []cart.LineDetails `json:"items"`
	Total     decimal.Decimal    `json:"total"`
	ItemCount int                `json:"item_count"`
}

func (s *Service) Summary(_ context.Context, customerID string) CartSummary {
	c := s.Cart(customerID)
	return CartSummary{
		Items:     c.Items(),
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}

type CheckoutInput struct {
	CustomerID string
	Method     payment.Method
}

type CheckoutResult struct {
	Order   order.Details
	Payment payment.Details
	Invoice billing.Details
	Receipt *payment.ReceiptDetails
}

// Checkout converts the customer's cart into an order, deducts stock,
// processes the payment, issues the invoice and, on success, the receipt.
// The cart is cleared only after a successful payment.
func (s *Service) Checkout(ctx context.Context, in CheckoutInput) (_ *CheckoutResult, err error) {
	logger := logctx.FromOr(ctx, s.log).With(
		observability.F("use_case", useCaseCheckout),
		observability.F("customer_id", in.CustomerID),
	)

	ctx, span := s.tel.Tracer().Start(ctx, spanPrefix+"Checkout",
		attribute.String("use_case", useCaseCheckout),
		attribute.String("checkout.customer_id", in.CustomerID),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"

	defer func() {
		lat := time.Since(start).Seconds()

		if span != nil {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, statusText)
			} else {
				span.SetStatus(codes.Ok, statusText)
			}
			span.End()
		}

		s.reqCounter.Add(1,
			observability.L("use_case", useCaseCheckout),
			observability.L("outcome", outcome),
		)
		s.durHistogram.Observe(lat,
			observability.L("use_case", useCaseCheckout),
		)

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("latency_seconds", lat),
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}
		logger.Info("use_case_done", fields...)
	}()

	if in.CustomerID == "" {
		outcome, statusText = "error", "CUSTOMER_ID_REQUIRED"
		return nil, ErrCustomerIDRequired
	}
	if in.Method == nil {
		outcome, statusText = "error", "PAYMENT_METHOD_REQUIRED"
		return nil, ErrMethodRequired
	}

	c := s.Cart(in.CustomerID)
	if c.IsEmpty() {
		outcome, statusText = "error", "CART_EMPTY"
		return nil, ErrEmptyCart
	}

	customerName := in.CustomerID
	if cust, lookupErr := s.customers.Get(ctx, in.CustomerID); lookupErr == nil {
		customerName = cust.Name
	}

	// Stock is never reserved, so every line is re-validated against a
	// fresh catalog read right before the order is cut.
	fresh := make(map[int64]*catalog.Product, len(c.Lines()))
	for _, line := range c.Lines() {
		product, lookupErr := s.catalog.Get(ctx, line.Product.ID)
		if lookupErr != nil {
			outcome, statusText = "error", "CATALOG_LOOKUP_FAILED"
			return nil, fmt.Errorf("checkout: catalog lookup: %w", lookupErr)
		}
		if !product.IsAvailable() || line.Quantity > product.Stock {
			outcome, statusText = "error", "OUT_OF_STOCK"
			return nil, fmt.Errorf("%w: product %d", ErrOutOfStock, product.ID)
		}
		c.Refresh(product)
		fresh[product.ID] = product
	}

	ord, err := order.FromCart(s.idGen.NewID(), c)
	if err != nil {
		outcome, statusText = "error", "ORDER_CONSTRUCTION_FAILED"
		return nil, fmt.Errorf("checkout: construct order: %w", err)
	}
	span.SetAttributes(
		attribute.String("order.id", ord.ID),
		attribute.String("order.total", ord.Total.StringFixed(2)),
	)

	for _, item := range ord.Items {
		product := fresh[item.ProductID]
		product.AdjustStock(-item.Quantity)
		if saveErr := s.catalog.Save(ctx, product); saveErr != nil {
			outcome, statusText = "error", "STOCK_DEDUCT_FAILED"
			return nil, fmt.Errorf("checkout: deduct stock: %w", saveErr)
		}
	}

	if err := s.orders.Insert(ctx, ord); err != nil {
		outcome, statusText = "error", "ORDER_INSERT_FAILED"
		return nil, fmt.Errorf("checkout: save order: %w", err)
	}
	s.publish(ctx, order.NewOrderPlacedEvent(ord))

	pmt := payment.New(s.paymentIDs.Next(), ord.ID, ord.Total, in.Method)
	paid := pmt.Process()

	invoice := billing.NewInvoice(s.invoiceNums, ord, customerName)

	var receiptDetails *payment.ReceiptDetails
	if paid {
		if receipt := pmt.GenerateReceipt(customerName, s.receiptNums); receipt != nil {
			rd := receipt.Details()
			receiptDetails = &rd
		}
		invoice.MarkAsPaid()
		s.totalCounter.Add(ord.Total.InexactFloat64())
	} else {
		statusText = "PAYMENT_DECLINED"
		if stErr := ord.UpdateStatus(order.StatusCancelled); stErr == nil {
			_ = s.orders.Update(ctx, ord)
		}
	}

	if err := s.payments.Insert(ctx, pmt); err != nil {
		outcome, statusText = "error", "PAYMENT_INSERT_FAILED"
		return nil, fmt.Errorf("checkout: save payment: %w", err)
	}
	s.publish(ctx, payment.NewPaymentProcessedEvent(pmt))

	if !paid {
		outcome = "error"
		return nil, fmt.Errorf("%w: order %s", ErrPaymentDeclined, ord.ID)
	}

	c.Clear()

	return &CheckoutResult{
		Order:   ord.Details(),
		Payment: pmt.Details(),
		Invoice: invoice.Details(),
		Receipt: receiptDetails,
	}, nil
}

// publish sends a domain event best-effort; checkout never fails because
// the bus is slow or down.
func (s *Service) publish(ctx context.Context, e domoutbox.Event) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, e); err != nil {
		s.pubFailures.Add(1, observability.L("event", e.EventName()))
		logctx.FromOr(ctx, s.log).Warn("event_publish_failed",
			observability.F("event", e.EventName()),
			observability.F("error", err.Error()),
		)
		return
	}
	s.pubCounter.Add(1, observability.L("event", e.EventName()))
}
