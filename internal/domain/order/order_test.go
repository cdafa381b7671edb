package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornerstore/checkout/internal/domain/cart"
	"github.com/cornerstore/checkout/internal/domain/catalog"
)

func cartWithItems(t *testing.T) *cart.Cart {
	t.Helper()
	chips, err := catalog.NewProduct(1, "SNACK001", "Potato Chips", decimal.RequireFromString("2.99"), "", 50)
	require.NoError(t, err)
	cola, err := catalog.NewProduct(2, "DRINK001", "Cola", decimal.RequireFromString("1.99"), "", 100)
	require.NoError(t, err)

	c := cart.New("cust-1")
	require.True(t, c.AddItem(chips, 3))
	require.True(t, c.AddItem(cola, 2))
	return c
}

func TestFromCart_SnapshotsLines(t *testing.T) {
	c := cartWithItems(t)

	o, err := FromCart("order-1", c)
	require.NoError(t, err)

	assert.Equal(t, "order-1", o.ID)
	assert.Equal(t, "cust-1", o.CustomerID)
	assert.Equal(t, StatusPlaced, o.Status)
	require.Len(t, o.Items, 2)
	// 3*2.99 + 2*1.99 = 12.95
	assert.True(t, decimal.RequireFromString("12.95").Equal(o.Total), "got %s", o.Total)
}

func TestFromCart_EmptyCart(t *testing.T) {
	_, err := FromCart("order-1", cart.New("cust-1"))
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = FromCart("order-1", nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestFromCart_CopiesProductFields(t *testing.T) {
	chips, err := catalog.NewProduct(1, "SNACK001", "Potato Chips", decimal.RequireFromString("2.99"), "", 50)
	require.NoError(t, err)
	c := cart.New("cust-1")
	require.True(t, c.AddItem(chips, 3))

	o, err := FromCart("order-1", c)
	require.NoError(t, err)

	chips.Price = decimal.RequireFromString("9.99")
	chips.Name = "Renamed"

	assert.Equal(t, "Potato Chips", o.Items[0].ProductName)
	assert.True(t, decimal.RequireFromString("2.99").Equal(o.Items[0].UnitPrice),
		"order lines are frozen at checkout time")
}

func TestUpdateStatus(t *testing.T) {
	o, err := FromCart("order-1", cartWithItems(t))
	require.NoError(t, err)

	require.NoError(t, o.UpdateStatus(StatusShipped))
	assert.Equal(t, StatusShipped, o.Status)

	assert.ErrorIs(t, o.UpdateStatus(Status("Lost")), ErrInvalidStatus)
	assert.Equal(t, StatusShipped, o.Status, "invalid status must not apply")
}

func TestDetails(t *testing.T) {
	o, err := FromCart("order-1", cartWithItems(t))
	require.NoError(t, err)

	d := o.Details()
	assert.Equal(t, "order-1", d.OrderID)
	assert.Equal(t, StatusPlaced, d.Status)
	require.Len(t, d.Items, 2)
	assert.True(t, decimal.RequireFromString("8.97").Equal(d.Items[0].LineTotal))
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`, d.OrderDate)
}

func TestClone_IsDeep(t *testing.T) {
	o, err := FromCart("order-1", cartWithItems(t))
	require.NoError(t, err)

	clone := o.Clone()
	clone.Items[0].Quantity = 99
	clone.Status = StatusCancelled

	assert.Equal(t, 3, o.Items[0].Quantity)
	assert.Equal(t, StatusPlaced, o.Status)
}

func TestOrderPlacedEvent(t *testing.T) {
	o, err := FromCart("order-1", cartWithItems(t))
	require.NoError(t, err)

	evt := NewOrderPlacedEvent(o)
	assert.Equal(t, "order.placed", evt.EventName())
	assert.Equal(t, "order-1", evt.OrderID)
	assert.Equal(t, 5, evt.ItemCount)
	assert.True(t, o.Total.Equal(evt.Total))
}
