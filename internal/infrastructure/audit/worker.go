package audit

import (
	"context"

	domorder "github.com/cornerstore/checkout/internal/domain/order"
	domoutbox "github.com/cornerstore/checkout/internal/domain/outbox"
	dompayment "github.com/cornerstore/checkout/internal/domain/payment"
	"github.com/cornerstore/checkout/internal/pkg/logging"
	"go.uber.org/zap"
)

// Worker subscribes to checkout domain events and writes them to the audit
// log. It is observation only; it never mutates state.
type Worker struct {
	subscriber domoutbox.Subscriber
}

func New(subscriber domoutbox.Subscriber) *Worker {
	return &Worker{subscriber: subscriber}
}

func (w *Worker) Start() {
	w.subscriber.Subscribe(domorder.OrderPlacedEvent{}.EventName(), w.handleOrderPlaced)
	w.subscriber.Subscribe(dompayment.PaymentProcessedEvent{}.EventName(), w.handlePaymentProcessed)
}

func (w *Worker) handleOrderPlaced(ctx context.Context, e domoutbox.Event) error {
	logger := logging.FromContext(ctx).With(zap.String("component", "audit_worker"))

	evt, ok := e.(domorder.OrderPlacedEvent)
	if !ok {
		return nil
	}

	logger.Info("order_placed",
		zap.String("order_id", evt.OrderID),
		zap.String("customer_id", evt.CustomerID),
		zap.Int("item_count", evt.ItemCount),
		zap.String("total", evt.Total.StringFixed(2)),
	)
	return nil
}

func (w *Worker) handlePaymentProcessed(ctx context.Context, e domoutbox.Event) error {
	logger := logging.FromContext(ctx).With(zap.String("component", "audit_worker"))

	evt, ok := e.(dompayment.PaymentProcessedEvent)
	if !ok {
		return nil
	}

	logger.Info("payment_processed",
		zap.Int64("payment_id", evt.PaymentID),
		zap.String("order_id", evt.OrderID),
		zap.String("method", evt.Method),
		zap.String("status", string(evt.Status)),
		zap.String("amount", evt.Amount.StringFixed(2)),
	)
	return nil
}
