package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("payment: not found")

type Status string

const (
	StatusPending Status = "Pending"
	StatusSuccess Status = "Success"
	StatusFailed  Status = "Failed"
)

// NumberSource hands out document numbers. Satisfied by *sequence.Sequence;
// injected so numbering stays deterministic in tests.
type NumberSource interface {
	Next() int64
}

// Payment is one transaction tying an order to an amount and a chosen
// method. It starts Pending and resolves to Success or Failed via Process.
// A Payment references its order by id only; it does not own the order.
type Payment struct {
	ID        int64
	OrderID   string
	Amount    decimal.Decimal
	Method    Method
	Status    Status
	CreatedAt time.Time

	receipt *Receipt
}

func New(id int64, orderID string, amount decimal.Decimal, method Method) *Payment {
	return &Payment{
		ID:        id,
		OrderID:   orderID,
		Amount:    amount,
		Method:    method,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// Process delegates to the payment method and records the outcome as the
// new status. It has no side effect beyond the status write; receipt
// generation is a separate explicit step. Calling Process again re-invokes
// the method and re-assigns the status; there is no retry logic.
func (p *Payment) Process() bool {
	ok := p.Method.ProcessPayment(p.Amount)
	if ok {
		p.Status = StatusSuccess
	} else {
		p.Status = StatusFailed
	}
	return ok
}

// GenerateReceipt mints a receipt for a successful payment, drawing its
// number from the supplied source. It returns nil while the payment is
// Pending or Failed. A repeated call after success mints a fresh receipt
// with a new number; callers that care must guard against re-invocation.
func (p *Payment) GenerateReceipt(customerName string, numbers NumberSource) *Receipt {
	if p.Status != StatusSuccess {
		return nil
	}

	p.receipt = newReceipt(numbers.Next(), p, customerName)
	return p.receipt
}

// Receipt returns the most recently generated receipt, or nil.
func (p *Payment) Receipt() *Receipt {
	return p.receipt
}

// Details is the display projection of a payment. Receipt is nil until one
// has been generated.
type Details struct {
	PaymentID   int64           `json:"payment_id"`
	OrderID     string          `json:"order_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Status      Status          `json:"status"`
	PaymentDate string          `json:"payment_date"`
	Receipt     *ReceiptDetails `json:"receipt,omitempty"`
}

func (p *Payment) Details() Details {
	d := Details{
		PaymentID:   p.ID,
		OrderID:     p.OrderID,
		Amount:      p.Amount,
		Method:      p.Method.Name(),
		Status:      p.Status,
		PaymentDate: p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if p.receipt != nil {
		rd := p.receipt.Details()
		d.Receipt = &rd
	}
	return d
}

// Clone returns a copy so repositories never hand out aliased state. The
// receipt pointer is shared; receipts are immutable.
func (p *Payment) Clone() *Payment {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
