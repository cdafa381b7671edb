package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cornerstore/checkout/internal/domain/cart"
)

var (
	ErrNotFound      = errors.New("order: not found")
	ErrEmptyCart     = errors.New("order: cart has no items")
	ErrInvalidStatus = errors.New("order: invalid status")
)

type Status string

const (
	StatusPlaced     Status = "Placed"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

var validStatuses = map[Status]struct{}{
	StatusPlaced:     {},
	StatusProcessing: {},
	StatusShipped:    {},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// Item is an order line frozen at checkout time. Unlike a cart line it
// carries its own copy of the product fields, so later catalog changes do
// not rewrite order history.
type Item struct {
	ProductID   int64
	ProductName string
	SKU         string
	UnitPrice   decimal.Decimal
	Quantity    int
}

func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is a confirmed purchase: a snapshot of cart lines plus a lifecycle
// status.
type Order struct {
	ID         string
	CustomerID string
	Items      []Item
	Total      decimal.Decimal
	Status     Status
	CreatedAt  time.Time
}

// FromCart snapshots the cart's lines into a new order.
func FromCart(id string, c *cart.Cart) (*Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	items := make([]Item, 0, len(c.Lines()))
	total := decimal.Zero
	for _, line := range c.Lines() {
		item := Item{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			SKU:         line.Product.SKU,
			UnitPrice:   line.Product.Price,
			Quantity:    line.Quantity,
		}
		items = append(items, item)
		total = total.Add(item.LineTotal())
	}

	return &Order{
		ID:         id,
		CustomerID: c.CustomerID,
		Items:      items,
		Total:      total,
		Status:     StatusPlaced,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// UpdateStatus moves the order to a new lifecycle status. Only the closed
// set of known statuses is accepted.
func (o *Order) UpdateStatus(status Status) error {
	if _, ok := validStatuses[status]; !ok {
		return ErrInvalidStatus
	}
	o.Status = status
	return nil
}

// ItemDetails is the display projection of an order line.
type ItemDetails struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// Details is the display projection of an order.
type Details struct {
	OrderID    string          `json:"order_id"`
	CustomerID string          `json:"customer_id"`
	OrderDate  string          `json:"order_date"`
	Status     Status          `json:"status"`
	Total      decimal.Decimal `json:"total"`
	Items      []ItemDetails   `json:"items"`
}

func (o *Order) Details() Details {
	items := make([]ItemDetails, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, ItemDetails{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal(),
		})
	}
	return Details{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		OrderDate:  o.CreatedAt.Format("2006-01-02 15:04:05"),
		Status:     o.Status,
		Total:      o.Total,
		Items:      items,
	}
}

// Clone returns a deep copy so repositories never hand out aliased state.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]Item(nil), o.Items...)
	return &clone
}
