package cart

import (
	"github.com/shopspring/decimal"

	"github.com/cornerstore/checkout/internal/domain/catalog"
)

// Cart aggregates order lines for a single customer session. Lines keep
// insertion order and there is at most one line per product: adding an
// already-present product merges quantities instead of appending.
//
// Mutations report success as a bool rather than an error; the caller only
// learns that the operation did not apply, not why.
type Cart struct {
	CustomerID string
	lines      []*Line
}

func New(customerID string) *Cart {
	return &Cart{CustomerID: customerID}
}

// AddItem puts quantity units of the product into the cart. It fails when
// the product is unavailable or the requested quantity exceeds current
// stock. Stock is re-checked at mutation time, never reserved.
func (c *Cart) AddItem(product *catalog.Product, quantity int) bool {
	if product == nil || quantity <= 0 {
		return false
	}
	if !product.IsAvailable() {
		return false
	}
	if quantity > product.Stock {
		return false
	}

	for _, line := range c.lines {
		if line.Product.ID == product.ID {
			line.Product = product
			line.UpdateQuantity(line.Quantity + quantity)
			return true
		}
	}

	c.lines = append(c.lines, NewLine(product, quantity))
	return true
}

// RemoveItem drops the line for the given product. Linear scan; carts are
// bounded by the number of distinct SKUs a customer handles in one session.
func (c *Cart) RemoveItem(productID int64) bool {
	for i, line := range c.lines {
		if line.Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateItemQuantity replaces the quantity of an existing line. A quantity
// of zero or less removes the line, exactly like RemoveItem.
func (c *Cart) UpdateItemQuantity(productID int64, quantity int) bool {
	if quantity <= 0 {
		return c.RemoveItem(productID)
	}

	for _, line := range c.lines {
		if line.Product.ID == productID {
			if quantity > line.Product.Stock {
				return false
			}
			line.UpdateQuantity(quantity)
			return true
		}
	}
	return false
}

// Refresh swaps the stored product data of the matching line for a newer
// catalog read, so stock and price checks see current values rather than
// whatever was true when the line was added.
func (c *Cart) Refresh(product *catalog.Product) {
	if product == nil {
		return
	}
	for _, line := range c.lines {
		if line.Product.ID == product.ID {
			line.Product = product
			return
		}
	}
}

// Total sums all line totals. Recomputed on every call, never cached.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Total())
	}
	return total
}

// ItemCount is the sum of quantities across lines, not the line count.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Clear drops all lines. The cart itself stays usable for the same session.
func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines exposes the live lines in insertion order for checkout snapshotting.
func (c *Cart) Lines() []*Line {
	return c.lines
}

// Items returns display projections of all lines.
func (c *Cart) Items() []LineDetails {
	items := make([]LineDetails, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, line.Details())
	}
	return items
}
