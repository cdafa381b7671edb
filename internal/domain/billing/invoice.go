package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cornerstore/checkout/internal/domain/order"
)

// InvoiceNumberStart is the first number an invoice sequence should yield.
const InvoiceNumberStart = 1000

// Payment terms: invoices fall due 30 days after issue.
const paymentTermDays = 30

type Status string

const (
	StatusUnpaid Status = "Unpaid"
	StatusPaid   Status = "Paid"
)

// Invoice is a billing document issued for an order, independent of any
// payment outcome. It holds a copy of the order's items and total taken at
// creation time, so later order or catalog mutation never rewrites an
// issued invoice.
type Invoice struct {
	number       int64
	orderID      string
	customerName string
	items        []order.Item
	total        decimal.Decimal
	issueDate    time.Time
	dueDate      time.Time
	status       Status
}

// NewInvoice issues an invoice for the given order, drawing its number from
// the supplied source.
func NewInvoice(numbers NumberSource, o *order.Order, customerName string) *Invoice {
	now := time.Now().UTC()
	return &Invoice{
		number:       numbers.Next(),
		orderID:      o.ID,
		customerName: customerName,
		items:        append([]order.Item(nil), o.Items...),
		total:        o.Total,
		issueDate:    now,
		dueDate:      now.AddDate(0, 0, paymentTermDays),
		status:       StatusUnpaid,
	}
}

// NumberSource hands out document numbers. Satisfied by *sequence.Sequence.
type NumberSource interface {
	Next() int64
}

// Number formats the invoice number with its fixed prefix, e.g. "INV-1000".
func (i *Invoice) Number() string {
	return fmt.Sprintf("INV-%d", i.number)
}

func (i *Invoice) Status() Status         { return i.status }
func (i *Invoice) Total() decimal.Decimal { return i.total }
func (i *Invoice) OrderID() string        { return i.orderID }

// MarkAsPaid records that the invoice has been settled. The surrounding
// workflow decides when to call this, typically after a payment resolves
// successfully; the invoice itself never watches payments.
func (i *Invoice) MarkAsPaid() {
	i.status = StatusPaid
}

// ItemDetails mirrors an order line inside an invoice projection.
type ItemDetails struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// Details is the structured projection of an invoice.
type Details struct {
	InvoiceNumber string          `json:"invoice_number"`
	OrderID       string          `json:"order_id"`
	CustomerName  string          `json:"customer_name"`
	IssueDate     string          `json:"issue_date"`
	DueDate       string          `json:"due_date"`
	Items         []ItemDetails   `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        Status          `json:"status"`
}

func (i *Invoice) Details() Details {
	items := make([]ItemDetails, 0, len(i.items))
	for _, item := range i.items {
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
		InvoiceNumber: i.Number(),
		OrderID:       i.orderID,
		CustomerName:  i.customerName,
		IssueDate:     i.issueDate.Format("2006-01-02"),
		DueDate:       i.dueDate.Format("2006-01-02"),
		Items:         items,
		TotalAmount:   i.total,
		Status:        i.status,
	}
}
