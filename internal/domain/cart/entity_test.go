package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(productID uint, price int64, qty int) Item {
	return Item{ProductID: productID, UnitPrice: price, Quantity: qty}
}

func TestItemsAdd(t *testing.T) {
	t.Run("appends new product", func(t *testing.T) {
		items := Items{}
		items = items.Add(item(1, 5000, 1))
		items = items.Add(item(2, 12000, 2))

		require.Len(t, items, 2)
		assert.Equal(t, uint(1), items[0].ProductID)
		assert.Equal(t, uint(2), items[1].ProductID)
		assert.Equal(t, 2, items[1].Quantity)
	})

	t.Run("increments existing product instead of duplicating", func(t *testing.T) {
		items := Items{item(1, 5000, 1), item(2, 12000, 1)}
		items = items.Add(item(1, 5000, 2))

		require.Len(t, items, 2)
		assert.Equal(t, 3, items[0].Quantity)
		assert.Equal(t, 1, items[1].Quantity)
	})

	t.Run("clamps zero quantity to one", func(t *testing.T) {
		items := Items{}.Add(item(7, 100, 0))
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Quantity)
	})
}

func TestItemsUpdateQuantity(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		quantity int
		wantQty  int
		wantErr  bool
	}{
		{name: "sets quantity at index", index: 1, quantity: 5, wantQty: 5},
		{name: "clamps below one", index: 0, quantity: 0, wantQty: 1},
		{name: "clamps negative", index: 0, quantity: -3, wantQty: 1},
		{name: "rejects negative index", index: -1, quantity: 2, wantErr: true},
		{name: "rejects out of range index", index: 2, quantity: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := Items{item(1, 5000, 2), item(2, 12000, 1)}
			updated, err := items.UpdateQuantity(tt.index, tt.quantity)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantQty, updated[tt.index].Quantity)
		})
	}
}

func TestItemsRemoveAt(t *testing.T) {
	t.Run("removes by position and preserves order", func(t *testing.T) {
		items := Items{item(1, 100, 1), item(2, 200, 1), item(3, 300, 1)}
		items, err := items.RemoveAt(1)
		require.NoError(t, err)

		require.Len(t, items, 2)
		assert.Equal(t, uint(1), items[0].ProductID)
		assert.Equal(t, uint(3), items[1].ProductID)
	})

	t.Run("rejects out of range index", func(t *testing.T) {
		items := Items{item(1, 100, 1)}
		_, err := items.RemoveAt(1)
		assert.Error(t, err)
	})
}

func TestItemsTotals(t *testing.T) {
	items := Items{item(1, 5000, 2), item(2, 12550, 1)}

	totals := items.CalculateTotals()
	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, 3, totals.TotalQuantity)
	assert.Equal(t, int64(22550), totals.TotalAmount)
	assert.Equal(t, "225.50", totals.TotalDisplay)
}

func TestBadgeCount(t *testing.T) {
	assert.Equal(t, 0, Items{}.BadgeCount())
	assert.Equal(t, 4, Items{item(1, 100, 3), item(2, 100, 1)}.BadgeCount())
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{22550, "225.50"},
		{99999, "999.99"},
		{-1250, "-12.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.amount))
	}
}
