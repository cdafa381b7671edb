package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domain "github.com/cornerstore/checkout/internal/domain/catalog"
)

// CatalogStore is an in-memory product catalog. It stands in for whatever
// real system owns products; the checkout core only ever sees the
// catalog.Store contract.
type CatalogStore struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		products: make(map[int64]*domain.Product),
	}
}

func (s *CatalogStore) Get(ctx context.Context, productID int64) (*domain.Product, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return product.Clone(), nil
}

func (s *CatalogStore) List(ctx context.Context) ([]*domain.Product, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Product, 0, len(s.products))
	for _, product := range s.products {
		out = append(out, product.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *CatalogStore) Save(ctx context.Context, product *domain.Product) error {
	_ = ctx
	if product == nil || product.ID == 0 {
		return fmt.Errorf("catalog store: product id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[product.ID] = product.Clone()
	return nil
}
