// Package service orchestrates the domain services behind the storefront
// surface: catalog loading, add-to-cart by identifier and checkout.
package service

import (
	"context"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/domain/model"
	domain "github.com/ivankoranteng77/shopeasy-ecommerce/pkg/domain/service"
)

// CatalogGateway is the read side of the backend the storefront needs.
type CatalogGateway interface {
	FetchProducts(ctx context.Context) ([]model.Product, error)
	FetchCategories(ctx context.Context) ([]model.Category, error)
}

type Storefront interface {
	// Load fetches products and categories in parallel and installs them in
	// the catalog view. A category fetch failure is tolerated; a product
	// fetch failure is not.
	Load(ctx context.Context) error
	Catalog() domain.CatalogView
	Cart() domain.CartService
	AddToCart(productID int64) error
	Checkout(ctx context.Context, contact model.ContactInfo) (int64, error)
	SessionID() string
}

func NewStorefront(
	gateway CatalogGateway,
	catalog domain.CatalogView,
	cart domain.CartService,
	checkout domain.CheckoutWorkflow,
	sessionID string,
) Storefront {
	return &storefront{
		gateway:   gateway,
		catalog:   catalog,
		cart:      cart,
		checkout:  checkout,
		sessionID: sessionID,
	}
}

type storefront struct {
	gateway   CatalogGateway
	catalog   domain.CatalogView
	cart      domain.CartService
	checkout  domain.CheckoutWorkflow
	sessionID string
}

func (s *storefront) Load(ctx context.Context) error {
	var (
		products   []model.Product
		categories []model.Category
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.gateway.FetchProducts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.gateway.FetchCategories(ctx)
		if err != nil {
			// The storefront still works without the category filter row.
			log.WithError(err).Warn("failed to load categories")
			categories = nil
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	s.catalog.SetProducts(products)
	s.catalog.SetCategories(categories)

	log.WithFields(log.Fields{
		"products":   len(products),
		"categories": len(categories),
	}).Info("catalog loaded")
	return nil
}

func (s *storefront) Catalog() domain.CatalogView {
	return s.catalog
}

func (s *storefront) Cart() domain.CartService {
	return s.cart
}

func (s *storefront) AddToCart(productID int64) error {
	product, err := s.catalog.FindProduct(productID)
	if err != nil {
		return err
	}
	return s.cart.AddItem(product, 1)
}

func (s *storefront) Checkout(ctx context.Context, contact model.ContactInfo) (int64, error) {
	return s.checkout.Submit(ctx, contact)
}

func (s *storefront) SessionID() string {
	return s.sessionID
}
