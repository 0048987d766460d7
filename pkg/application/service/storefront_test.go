package service_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appservice "github.com/ivankoranteng77/shopeasy-ecommerce/pkg/application/service"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/backend"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/backend/stub"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/domain/model"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/domain/service"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/localstore"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/storage"
)

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(service.Event) error { return nil }

type fakeGateway struct {
	products      []model.Product
	categories    []model.Category
	productsErr   error
	categoriesErr error
}

func (g *fakeGateway) FetchProducts(context.Context) ([]model.Product, error) {
	return g.products, g.productsErr
}

func (g *fakeGateway) FetchCategories(context.Context) ([]model.Category, error) {
	return g.categories, g.categoriesErr
}

func newStorefront(t *testing.T, gateway appservice.CatalogGateway) appservice.Storefront {
	t.Helper()
	store := localstore.NewMemoryStore()
	cart := service.NewCartService(storage.NewCartRepository(store), nopDispatcher{})
	catalog := service.NewCatalogView()
	sessionID, err := storage.SessionID(store)
	require.NoError(t, err)
	checkout := service.NewCheckoutWorkflow(cart, nil, nopDispatcher{}, sessionID)
	return appservice.NewStorefront(gateway, catalog, cart, checkout, sessionID)
}

func TestLoad(t *testing.T) {
	t.Run("Installs both lists", func(t *testing.T) {
		gateway := &fakeGateway{
			products:   []model.Product{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
			categories: []model.Category{{ID: 1, Name: "Electronics"}},
		}
		front := newStorefront(t, gateway)

		require.NoError(t, front.Load(context.Background()))

		assert.Len(t, front.Catalog().Products(), 2)
		assert.Len(t, front.Catalog().Categories(), 1)
	})

	t.Run("Category failure is tolerated", func(t *testing.T) {
		gateway := &fakeGateway{
			products:      []model.Product{{ID: 1, Name: "A"}},
			categoriesErr: errors.New("boom"),
		}
		front := newStorefront(t, gateway)

		require.NoError(t, front.Load(context.Background()))

		assert.Len(t, front.Catalog().Products(), 1)
		assert.Empty(t, front.Catalog().Categories())
	})

	t.Run("Product failure is not", func(t *testing.T) {
		gateway := &fakeGateway{productsErr: errors.New("boom")}
		front := newStorefront(t, gateway)

		assert.Error(t, front.Load(context.Background()))
	})
}

func TestAddToCart(t *testing.T) {
	gateway := &fakeGateway{products: []model.Product{
		{ID: 1, Name: "A", PriceCents: 1000, StockQuantity: 5},
	}}
	front := newStorefront(t, gateway)
	require.NoError(t, front.Load(context.Background()))

	require.NoError(t, front.AddToCart(1))
	assert.Equal(t, 1, front.Cart().Len())

	assert.ErrorIs(t, front.AddToCart(99), model.ErrProductNotFound)
}

// Full storefront flow against the stub backend: browse, fill the cart,
// check out, then verify the order landed and the cart state file emptied.
func TestStorefrontAgainstStubBackend(t *testing.T) {
	srv := httptest.NewServer(stub.NewServer("admin", "secret").Router())
	t.Cleanup(srv.Close)
	client := backend.NewClient(srv.URL+"/api/v1", 5*time.Second)

	store := localstore.NewMemoryStore()
	repo := storage.NewCartRepository(store)
	cart := service.NewCartService(repo, nopDispatcher{})
	sessionID, err := storage.SessionID(store)
	require.NoError(t, err)
	checkout := service.NewCheckoutWorkflow(cart, client, nopDispatcher{}, sessionID)
	front := appservice.NewStorefront(client, service.NewCatalogView(), cart, checkout, sessionID)

	require.NoError(t, front.Load(context.Background()))
	products := front.Catalog().VisibleProducts()
	require.NotEmpty(t, products)

	require.NoError(t, front.AddToCart(products[0].ID))
	require.NoError(t, front.AddToCart(products[0].ID))
	require.Greater(t, front.Cart().TotalCents(), int64(0))

	orderID, err := front.Checkout(context.Background(), model.ContactInfo{
		Name: "Ada", Phone: "+233200000000", Address: "1 Main St",
	})
	require.NoError(t, err)
	assert.Greater(t, orderID, int64(0))

	assert.Zero(t, front.Cart().Len())
	persisted, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)

	token, err := client.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	orders, err := client.FetchAllOrders(context.Background(), token)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].ID)
}
