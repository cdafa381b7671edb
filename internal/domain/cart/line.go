package cart

import (
	"github.com/shopspring/decimal"

	"github.com/cornerstore/checkout/internal/domain/catalog"
)

// Line binds a product to a quantity inside a cart. It is a plain data
// holder: quantity validation against stock is the cart's responsibility.
type Line struct {
	Product  *catalog.Product
	Quantity int
}

func NewLine(product *catalog.Product, quantity int) *Line {
	return &Line{Product: product, Quantity: quantity}
}

// UpdateQuantity replaces the quantity unconditionally.
func (l *Line) UpdateQuantity(quantity int) {
	l.Quantity = quantity
}

// Total is quantity times the current unit price. It is recomputed on every
// call so price changes are always reflected.
func (l *Line) Total() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineDetails is the display projection of a cart line.
type LineDetails struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

func (l *Line) Details() LineDetails {
	return LineDetails{
		ProductID:   l.Product.ID,
		ProductName: l.Product.Name,
		SKU:         l.Product.SKU,
		UnitPrice:   l.Product.Price,
		Quantity:    l.Quantity,
		LineTotal:   l.Total(),
	}
}
