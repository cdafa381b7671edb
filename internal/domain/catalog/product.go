package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("catalog: product not found")
	ErrInvalidPrice = errors.New("catalog: price must be zero or greater")
	ErrInvalidStock = errors.New("catalog: stock must be zero or greater")
)

// Product is a sellable item. The checkout core treats the catalog as an
// external collaborator: products are read, stock is adjusted through the
// store, nothing else is assumed about them.
type Product struct {
	ID          int64
	SKU         string
	Name        string
	Price       decimal.Decimal
	Description string
	Stock       int
	Active      bool
}

func NewProduct(id int64, sku, name string, price decimal.Decimal, description string, stock int) (*Product, error) {
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}
	return &Product{
		ID:          id,
		SKU:         sku,
		Name:        name,
		Price:       price,
		Description: description,
		Stock:       stock,
		Active:      true,
	}, nil
}

// IsAvailable reports whether the product can currently be purchased.
func (p *Product) IsAvailable() bool {
	return p.Active && p.Stock > 0
}

// AdjustStock applies a delta to the stock level, positive to add, negative
// to reduce. Stock never goes below zero.
func (p *Product) AdjustStock(delta int) {
	p.Stock += delta
	if p.Stock < 0 {
		p.Stock = 0
	}
}

// Details is the display projection of a product.
type Details struct {
	ProductID   int64           `json:"product_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
	Available   bool            `json:"available"`
}

func (p *Product) Details() Details {
	return Details{
		ProductID:   p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Stock:       p.Stock,
		Active:      p.Active,
		Available:   p.IsAvailable(),
	}
}

// Clone returns a copy so callers cannot alias store-held state.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
