package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/domain/model"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/domain/service"
)

func fixtureCatalog() service.CatalogView {
	electronics := model.Category{ID: 1, Name: "Electronics"}
	books := model.Category{ID: 2, Name: "Books"}

	view := service.NewCatalogView()
	view.SetCategories([]model.Category{electronics, books})
	view.SetProducts([]model.Product{
		{ID: 10, Name: "Wireless Headphones", Description: "over-ear audio", Categories: []model.Category{electronics}},
		{ID: 11, Name: "Go Programming", Description: "a book about Go", Categories: []model.Category{books}},
		{ID: 12, Name: "USB-C Cable", Description: "braided cable", Categories: []model.Category{electronics}},
	})
	return view
}

func TestVisibleProducts(t *testing.T) {
	t.Run("All filter and empty search return everything in fetch order", func(t *testing.T) {
		view := fixtureCatalog()

		visible := view.VisibleProducts()

		require.Len(t, visible, 3)
		assert.Equal(t, int64(10), visible[0].ID)
		assert.Equal(t, int64(11), visible[1].ID)
		assert.Equal(t, int64(12), visible[2].ID)
	})

	t.Run("Idempotent for unchanged state", func(t *testing.T) {
		view := fixtureCatalog()
		view.SetCategoryFilter(1)
		view.SetSearchQuery("cable")

		first := view.VisibleProducts()
		second := view.VisibleProducts()

		assert.Equal(t, first, second)
	})

	t.Run("Category filter uses membership", func(t *testing.T) {
		view := fixtureCatalog()
		view.SetCategoryFilter(2)

		visible := view.VisibleProducts()

		require.Len(t, visible, 1)
		assert.Equal(t, int64(11), visible[0].ID)
	})

	t.Run("Search is case-insensitive over name and description", func(t *testing.T) {
		view := fixtureCatalog()

		view.SetSearchQuery("HEADPHONES")
		require.Len(t, view.VisibleProducts(), 1)

		view.SetSearchQuery("audio")
		require.Len(t, view.VisibleProducts(), 1)
		assert.Equal(t, int64(10), view.VisibleProducts()[0].ID)
	})

	t.Run("Filters combine", func(t *testing.T) {
		view := fixtureCatalog()
		view.SetCategoryFilter(1)
		view.SetSearchQuery("cable")

		visible := view.VisibleProducts()

		require.Len(t, visible, 1)
		assert.Equal(t, int64(12), visible[0].ID)
	})

	t.Run("Resetting the filter to all restores the full list", func(t *testing.T) {
		view := fixtureCatalog()
		view.SetCategoryFilter(2)
		view.SetCategoryFilter(model.CategoryAll)

		assert.Len(t, view.VisibleProducts(), 3)
	})
}

func TestFindProduct(t *testing.T) {
	view := fixtureCatalog()

	product, err := view.FindProduct(11)
	require.NoError(t, err)
	assert.Equal(t, "Go Programming", product.Name)

	_, err = view.FindProduct(99)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}
