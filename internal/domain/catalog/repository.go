package catalog

import "context"

// Store is the narrow read/write contract the checkout core holds on the
// product catalog.
type Store interface {
	Get(ctx context.Context, productID int64) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Save(ctx context.Context, product *Product) error
}
