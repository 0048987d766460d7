package tests

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/domain/model"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/domain/service"
)

func setupCart(t *testing.T) (service.CartService, *mockCartRepository, *mockEventDispatcher) {
	t.Helper()
	repo := &mockCartRepository{}
	dispatcher := &mockEventDispatcher{}
	cart := service.NewCartService(repo, dispatcher)
	return cart, repo, dispatcher
}

func headphones() model.Product {
	return model.Product{ID: 1, Name: "Wireless Headphones", SKU: "ELEC-001", PriceCents: 1000, StockQuantity: 2}
}

func paperback() model.Product {
	return model.Product{ID: 2, Name: "Go Programming", SKU: "BOOK-001", PriceCents: 500, StockQuantity: 5}
}

func TestAddItem(t *testing.T) {
	t.Run("Insert new entry with quantity one", func(t *testing.T) {
		cart, repo, dispatcher := setupCart(t)

		require.NoError(t, cart.AddItem(headphones(), 3))

		items := cart.Items()
		require.Len(t, items, 1)
		assert.Equal(t, int64(1), items[0].ProductID)
		// requestedQty beyond the first unit is ignored.
		assert.Equal(t, 1, items[0].Quantity)

		require.Len(t, repo.saved, 1)
		require.Len(t, dispatcher.events, 1)
		event := dispatcher.events[0].(model.ItemAddedToCart)
		assert.Equal(t, int64(1), event.ProductID)
	})

	t.Run("Increment existing entry", func(t *testing.T) {
		cart, _, _ := setupCart(t)

		require.NoError(t, cart.AddItem(headphones(), 1))
		require.NoError(t, cart.AddItem(headphones(), 1))

		items := cart.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("Stock ceiling is a no-op with a signal", func(t *testing.T) {
		cart, repo, _ := setupCart(t)
		require.NoError(t, cart.AddItem(headphones(), 1))
		require.NoError(t, cart.AddItem(headphones(), 1))

		savesBefore := len(repo.saved)
		err := cart.AddItem(headphones(), 1)

		assert.ErrorIs(t, err, model.ErrStockLimitExceeded)
		assert.Equal(t, 2, cart.Items()[0].Quantity)
		assert.Len(t, repo.saved, savesBefore)
	})

	t.Run("Out of stock product is rejected", func(t *testing.T) {
		cart, _, _ := setupCart(t)
		gone := headphones()
		gone.StockQuantity = 0

		err := cart.AddItem(gone, 1)

		assert.ErrorIs(t, err, model.ErrOutOfStock)
		assert.Zero(t, cart.Len())
	})

	t.Run("No duplicate product entries across mixed operations", func(t *testing.T) {
		cart, _, _ := setupCart(t)
		require.NoError(t, cart.AddItem(headphones(), 1))
		require.NoError(t, cart.AddItem(paperback(), 1))
		require.NoError(t, cart.AddItem(headphones(), 1))
		require.NoError(t, cart.SetQuantity(2, 3))
		require.NoError(t, cart.AddItem(paperback(), 1))

		seen := map[int64]bool{}
		for _, item := range cart.Items() {
			assert.False(t, seen[item.ProductID], "duplicate entry for product %d", item.ProductID)
			seen[item.ProductID] = true
			assert.LessOrEqual(t, item.Quantity, item.Product.StockQuantity)
			assert.GreaterOrEqual(t, item.Quantity, 1)
		}
	})
}

func TestSetQuantity(t *testing.T) {
	t.Run("Overwrite within stock", func(t *testing.T) {
		cart, _, dispatcher := setupCart(t)
		require.NoError(t, cart.AddItem(paperback(), 1))
		dispatcher.Reset()

		require.NoError(t, cart.SetQuantity(2, 4))

		assert.Equal(t, 4, cart.Items()[0].Quantity)
		require.Len(t, dispatcher.events, 1)
		assert.Equal(t, "CartQuantityChanged", dispatcher.events[0].Type())
	})

	t.Run("Zero or negative removes the entry", func(t *testing.T) {
		cart, _, _ := setupCart(t)
		require.NoError(t, cart.AddItem(paperback(), 1))

		require.NoError(t, cart.SetQuantity(2, 0))

		assert.Zero(t, cart.Len())
	})

	t.Run("Beyond stock is rejected", func(t *testing.T) {
		cart, _, _ := setupCart(t)
		require.NoError(t, cart.AddItem(headphones(), 1))

		err := cart.SetQuantity(1, 3)

		assert.ErrorIs(t, err, model.ErrStockLimitExceeded)
		assert.Equal(t, 1, cart.Items()[0].Quantity)
	})

	t.Run("Unknown product", func(t *testing.T) {
		cart, _, _ := setupCart(t)
		err := cart.SetQuantity(99, 1)
		assert.ErrorIs(t, err, model.ErrCartItemNotFound)
	})
}

func TestRemoveItem(t *testing.T) {
	cart, repo, _ := setupCart(t)
	require.NoError(t, cart.AddItem(headphones(), 1))
	require.NoError(t, cart.AddItem(paperback(), 1))

	require.NoError(t, cart.RemoveItem(1))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ProductID)

	// Removing something absent is a silent no-op without a save.
	savesBefore := len(repo.saved)
	require.NoError(t, cart.RemoveItem(42))
	assert.Len(t, repo.saved, savesBefore)
}

func TestTotalCents(t *testing.T) {
	cart, _, _ := setupCart(t)

	require.NoError(t, cart.AddItem(headphones(), 1)) // $10.00
	require.NoError(t, cart.AddItem(headphones(), 1)) // x2
	require.NoError(t, cart.AddItem(paperback(), 1))  // $5.00

	assert.Equal(t, int64(2500), cart.TotalCents())
}

func TestCartRestore(t *testing.T) {
	t.Run("Entries come back from the repository", func(t *testing.T) {
		repo := &mockCartRepository{entries: []model.CartEntry{
			{ProductID: 2, Product: paperback(), Quantity: 3},
		}}

		cart := service.NewCartService(repo, &mockEventDispatcher{})

		require.Equal(t, 1, cart.Len())
		assert.Equal(t, 3, cart.Items()[0].Quantity)
		assert.Equal(t, int64(1500), cart.TotalCents())
	})

	t.Run("Load failure starts empty", func(t *testing.T) {
		repo := &mockCartRepository{loadErr: errors.New("disk on fire")}

		cart := service.NewCartService(repo, &mockEventDispatcher{})

		assert.Zero(t, cart.Len())
	})
}

func TestClear(t *testing.T) {
	cart, repo, dispatcher := setupCart(t)
	require.NoError(t, cart.AddItem(headphones(), 1))
	dispatcher.Reset()

	require.NoError(t, cart.Clear())

	assert.Zero(t, cart.Len())
	require.NotEmpty(t, repo.saved)
	assert.Empty(t, repo.saved[len(repo.saved)-1])
	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, "CartCleared", dispatcher.events[0].Type())
}

type mockCartRepository struct {
	entries []model.CartEntry
	loadErr error
	saveErr error
	saved   [][]model.CartEntry
}

func (m *mockCartRepository) Load() ([]model.CartEntry, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.entries, nil
}

func (m *mockCartRepository) Save(entries []model.CartEntry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	snapshot := make([]model.CartEntry, len(entries))
	copy(snapshot, entries)
	m.saved = append(m.saved, snapshot)
	return nil
}

type mockEventDispatcher struct {
	events []service.Event
}

func (m *mockEventDispatcher) Dispatch(event service.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventDispatcher) Reset() {
	m.events = nil
}
