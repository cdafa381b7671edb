package cart

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornerstore/checkout/internal/domain/catalog"
)

func testProduct(t *testing.T, id int64, price string, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(
		id,
		fmt.Sprintf("SKU%03d", id),
		fmt.Sprintf("Product %d", id),
		decimal.RequireFromString(price),
		"",
		stock,
	)
	require.NoError(t, err)
	return p
}

func TestAddItem_MergesDuplicateProducts(t *testing.T) {
	c := New("cust-1")
	p := testProduct(t, 1, "2.99", 50)

	require.True(t, c.AddItem(p, 2))
	require.True(t, c.AddItem(p, 3))

	require.Len(t, c.Lines(), 1, "duplicate adds must merge into one line")
	assert.Equal(t, 5, c.Lines()[0].Quantity)
	assert.Equal(t, 5, c.ItemCount())
}

func TestAddItem_RejectsQuantityOverStock(t *testing.T) {
	c := New("cust-1")
	p := testProduct(t, 1, "2.99", 5)

	assert.False(t, c.AddItem(p, 6))
	assert.True(t, c.IsEmpty(), "failed add must leave the cart unchanged")
}

func TestAddItem_RejectsUnavailableProduct(t *testing.T) {
	c := New("cust-1")
	p := testProduct(t, 1, "2.99", 0)

	assert.False(t, c.AddItem(p, 1))
	assert.True(t, c.IsEmpty())
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	c := New("cust-1")
	p := testProduct(t, 1, "2.99", 10)

	assert.False(t, c.AddItem(p, 0))
	assert.False(t, c.AddItem(p, -1))
	assert.True(t, c.IsEmpty())
}

func TestUpdateItemQuantity_ZeroOrNegativeRemovesLine(t *testing.T) {
	for _, quantity := range []int{0, -5} {
		c := New("cust-1")
		p := testProduct(t, 1, "2.99", 50)
		require.True(t, c.AddItem(p, 3))

		assert.True(t, c.UpdateItemQuantity(p.ID, quantity), "quantity %d", quantity)
		assert.True(t, c.IsEmpty())
		assert.True(t, c.Total().IsZero())
	}
}

func TestUpdateItemQuantity_RejectsQuantityOverStock(t *testing.T) {
	c := New("cust-1")
	p := testProduct(t, 1, "2.99", 5)
	require.True(t, c.AddItem(p, 2))

	assert.False(t, c.UpdateItemQuantity(p.ID, 6))
	assert.Equal(t, 2, c.ItemCount(), "failed update must leave the line unchanged")
}

func TestUpdateItemQuantity_ReplacesQuantity(t *testing.T) {
	c := New("cust-1")
	p := testProduct(t, 1, "2.99", 50)
	require.True(t, c.AddItem(p, 2))

	require.True(t, c.UpdateItemQuantity(p.ID, 7))
	assert.Equal(t, 7, c.ItemCount())
}

func TestUpdateItemQuantity_UnknownProductReturnsFalse(t *testing.T) {
	c := New("cust-1")

	assert.False(t, c.UpdateItemQuantity(99, 1))
}

func TestRemoveItem(t *testing.T) {
	c := New("cust-1")
	p := testProduct(t, 1, "2.99", 50)
	require.True(t, c.AddItem(p, 1))

	assert.True(t, c.RemoveItem(p.ID))
	assert.False(t, c.RemoveItem(p.ID), "removing an absent line reports false")
}

func TestTotal_EmptyCartIsZero(t *testing.T) {
	c := New("cust-1")

	assert.True(t, c.Total().IsZero())
}

func TestTotal_SumsLineTotals(t *testing.T) {
	c := New("cust-1")
	require.True(t, c.AddItem(testProduct(t, 1, "2.99", 50), 3))
	require.True(t, c.AddItem(testProduct(t, 2, "1.49", 75), 2))

	// 3*2.99 + 2*1.49 = 11.95
	assert.True(t, decimal.RequireFromString("11.95").Equal(c.Total()), "got %s", c.Total())
}

func TestTotal_ReflectsCurrentPrice(t *testing.T) {
	c := New("cust-1")
	p := testProduct(t, 1, "2.99", 50)
	require.True(t, c.AddItem(p, 2))

	p.Price = decimal.RequireFromString("3.50")

	assert.True(t, decimal.RequireFromString("7.00").Equal(c.Total()),
		"totals are computed on demand from the current price, got %s", c.Total())
}

func TestItemCount_SumsQuantitiesNotLines(t *testing.T) {
	c := New("cust-1")
	require.True(t, c.AddItem(testProduct(t, 1, "2.99", 50), 3))
	require.True(t, c.AddItem(testProduct(t, 2, "1.49", 75), 4))

	assert.Equal(t, 7, c.ItemCount())
	assert.Len(t, c.Lines(), 2)
}

func TestClear_KeepsCartUsable(t *testing.T) {
	c := New("cust-1")
	p := testProduct(t, 1, "2.99", 50)
	require.True(t, c.AddItem(p, 3))

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.True(t, c.AddItem(p, 1), "cleared cart keeps serving the same session")
}

func TestRefresh_SwapsProductData(t *testing.T) {
	c := New("cust-1")
	stale := testProduct(t, 1, "2.99", 50)
	require.True(t, c.AddItem(stale, 3))

	fresh := testProduct(t, 1, "2.99", 2)
	c.Refresh(fresh)

	assert.False(t, c.UpdateItemQuantity(1, 3), "update must validate against the refreshed stock")
}

func TestItems_ProjectsLines(t *testing.T) {
	c := New("cust-1")
	require.True(t, c.AddItem(testProduct(t, 1, "2.99", 50), 3))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ProductID)
	assert.Equal(t, "Product 1", items[0].ProductName)
	assert.Equal(t, 3, items[0].Quantity)
	assert.True(t, decimal.RequireFromString("8.97").Equal(items[0].LineTotal))
}

func TestScenario_SessionAddThenDropToZero(t *testing.T) {
	c := New("customer-42")
	p := testProduct(t, 1, "2.99", 50)

	require.True(t, c.AddItem(p, 3))
	assert.True(t, decimal.RequireFromString("8.97").Equal(c.Total()))
	assert.Equal(t, 3, c.ItemCount())

	require.True(t, c.UpdateItemQuantity(p.ID, 0))
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
}
