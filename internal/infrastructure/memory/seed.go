package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cornerstore/checkout/internal/domain/catalog"
	"github.com/cornerstore/checkout/internal/domain/customer"
)

// Seed loads the demo data set: a handful of shelf products and one
// registered customer.
func Seed(ctx context.Context, store *CatalogStore, customers *CustomerRepository) error {
	products := []struct {
		id          int64
		sku         string
		name        string
		price       string
		description string
		stock       int
	}{
		{1, "SNACK001", "Potato Chips", "2.99", "Crispy potato chips", 50},
		{2, "DRINK001", "Cola", "1.99", "Refreshing cola drink", 100},
		{3, "CANDY001", "Chocolate Bar", "1.49", "Delicious chocolate", 75},
		{4, "SNACK002", "Cookies", "3.49", "Chocolate chip cookies", 30},
		{5, "DRINK002", "Water", "0.99", "Bottled water", 200},
	}

	for _, p := range products {
		product, err := catalog.NewProduct(p.id, p.sku, p.name, decimal.RequireFromString(p.price), p.description, p.stock)
		if err != nil {
			return err
		}
		if err := store.Save(ctx, product); err != nil {
			return err
		}
	}

	return customers.Save(ctx, &customer.Customer{
		ID:      "cust-1",
		Email:   "customer@example.com",
		Name:    "John Doe",
		Address: "123 Main St",
	})
}
