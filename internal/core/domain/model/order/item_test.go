package order_test

import (
	"testing"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	price := kernel.MustMoneyFromString("10.50")

	t.Run("should create a valid item", func(t *testing.T) {
		id := kernel.NewUUID()

		item, err := order.NewItem(id, "Widget", "WID-1", 2, price)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.True(t, item.ID().IsEqual(id))
		assert.Equal(t, "Widget", item.ProductName())
		assert.Equal(t, "WID-1", item.ProductSku())
		assert.Equal(t, 2, item.Quantity())
		assert.Equal(t, "10.50", item.UnitPrice().String())
		assert.Equal(t, "21.00", item.TotalPrice().String())
	})

	t.Run("should reject quantity below one", func(t *testing.T) {
		for _, quantity := range []int{0, -1} {
			item, err := order.NewItem(kernel.NewUUID(), "Widget", "WID-1", quantity, price)

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			assert.Nil(t, item)
			assert.Contains(t, err.Error(), "is quantity, min value is 1")
		}
	})

	t.Run("should reject non-positive unit price", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), "Widget", "WID-1", 1, kernel.ZeroMoney())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, item)
		assert.Contains(t, err.Error(), "0.00 is not greater than 0")
	})

	t.Run("should reject blank descriptive fields", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), "", "  ", 1, price)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, item)
		assert.Contains(t, err.Error(), "productName")
		assert.Contains(t, err.Error(), "productSku")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var item order.Item
		var nilItem *order.Item

		require.ErrorIs(t, item.Validate(), order.ErrItemIsNotConstructed)
		require.ErrorIs(t, nilItem.Validate(), order.ErrItemIsNotConstructed)
	})
}
