package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptNumberStart is the first number a receipt sequence should yield.
const ReceiptNumberStart = 2000

// Receipt is proof of a completed, successful payment. It is only ever
// constructed through Payment.GenerateReceipt and is immutable afterwards.
type Receipt struct {
	number       int64
	paymentID    int64
	orderID      string
	customerName string
	amountPaid   decimal.Decimal
	methodName   string
	paidAt       time.Time
}

func newReceipt(number int64, p *Payment, customerName string) *Receipt {
	return &Receipt{
		number:       number,
		paymentID:    p.ID,
		orderID:      p.OrderID,
		customerName: customerName,
		amountPaid:   p.Amount,
		methodName:   p.Method.Name(),
		paidAt:       time.Now().UTC(),
	}
}

// Number formats the receipt number with its fixed prefix, e.g. "RCP-2000".
func (r *Receipt) Number() string {
	return fmt.Sprintf("RCP-%d", r.number)
}

func (r *Receipt) AmountPaid() decimal.Decimal { return r.amountPaid }
func (r *Receipt) PaidAt() time.Time           { return r.paidAt }

// ReceiptDetails is the structured projection of a receipt.
type ReceiptDetails struct {
	ReceiptNumber string          `json:"receipt_number"`
	PaymentID     int64           `json:"payment_id"`
	OrderID       string          `json:"order_id"`
	CustomerName  string          `json:"customer_name"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	PaymentMethod string          `json:"payment_method"`
	PaymentDate   string          `json:"payment_date"`
	Status        string          `json:"status"`
}

func (r *Receipt) Details() ReceiptDetails {
	return ReceiptDetails{
		ReceiptNumber: r.Number(),
		PaymentID:     r.paymentID,
		OrderID:       r.orderID,
		CustomerName:  r.customerName,
		AmountPaid:    r.amountPaid,
		PaymentMethod: r.methodName,
		PaymentDate:   r.paidAt.Format("2006-01-02 15:04:05"),
		Status:        "Paid",
	}
}

// Formatted renders a human-readable block for display or printing.
func (r *Receipt) Formatted() string {
	var b strings.Builder
	b.WriteString("========================================\n")
	b.WriteString("              RECEIPT\n")
	b.WriteString("========================================\n")
	fmt.Fprintf(&b, "Receipt No : %s\n", r.Number())
	fmt.Fprintf(&b, "Order ID   : %s\n", r.orderID)
	fmt.Fprintf(&b, "Customer   : %s\n", r.customerName)
	fmt.Fprintf(&b, "Paid via   : %s\n", r.methodName)
	fmt.Fprintf(&b, "Date       : %s\n", r.paidAt.Format("2006-01-02 15:04:05"))
	b.WriteString("----------------------------------------\n")
	fmt.Fprintf(&b, "Amount Paid: $%s\n", r.amountPaid.StringFixed(2))
	b.WriteString("========================================\n")
	return b.String()
}
