package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderPlacedEvent is emitted when a cart has been converted into an order.
type OrderPlacedEvent struct {
	OrderID    string
	CustomerID string
	ItemCount  int
	Total      decimal.Decimal
	OccurredAt time.Time
}

func (OrderPlacedEvent) EventName() string { return "order.placed" }

func NewOrderPlacedEvent(o *Order) OrderPlacedEvent {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return OrderPlacedEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		ItemCount:  count,
		Total:      o.Total,
		OccurredAt: time.Now().UTC(),
	}
}
