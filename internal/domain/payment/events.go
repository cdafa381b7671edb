package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentProcessedEvent is emitted after a payment resolves, successful or not.
type PaymentProcessedEvent struct {
	PaymentID  int64
	OrderID    string
	Amount     decimal.Decimal
	Method     string
	Status     Status
	OccurredAt time.Time
}

func (PaymentProcessedEvent) EventName() string { return "payment.processed" }

func NewPaymentProcessedEvent(p *Payment) PaymentProcessedEvent {
	return PaymentProcessedEvent{
		PaymentID:  p.ID,
		OrderID:    p.OrderID,
		Amount:     p.Amount,
		Method:     p.Method.Name(),
		Status:     p.Status,
		OccurredAt: time.Now().UTC(),
	}
}
