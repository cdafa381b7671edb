package customer

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("customer: not found")

// Customer is the minimal record the checkout workflow needs: an identity
// and the name/address printed on billing documents. Authentication is out
// of scope for this module.
type Customer struct {
	ID      string
	Email   string
	Name    string
	Address string
}

type Repository interface {
	Save(ctx context.Context, c *Customer) error
	Get(ctx context.Context, id string) (*Customer, error)
	GetByEmail(ctx context.Context, email string) (*Customer, error)
}
