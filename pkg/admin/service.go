package admin

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/domain/model"
)

var (
	ErrNotAuthenticated = errors.New("admin credential missing, log in first")
	ErrDeleteAborted    = errors.New("product deletion aborted")
)

// Gateway is the backend surface the admin console needs.
type Gateway interface {
	Login(ctx context.Context, username, password string) (string, error)
	FetchProducts(ctx context.Context) ([]model.Product, error)
	FetchCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, token string, category model.Category) (model.Category, error)
	CreateProduct(ctx context.Context, token string, input ProductInput, categoryIDs []int64) (model.Product, error)
	DeleteProduct(ctx context.Context, token string, productID int64) error
	FetchAllOrders(ctx context.Context, token string) ([]model.Order, error)
}

// CredentialStore holds the opaque bearer credential between sessions.
type CredentialStore interface {
	Token() (string, bool)
	SetToken(token string) error
	Clear() error
}

// Confirmer answers the "are you sure" question before destructive actions.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ProductInput struct {
	Name          string
	SKU           string
	Description   string
	PriceCents    int64
	StockQuantity int
	CategoryName  string
	ImageURL      string
}

type Service interface {
	Login(ctx context.Context, username, password string) error
	Logout() error
	IsAuthenticated() bool

	// CreateProduct resolves the category name against the fetched category
	// list (exact, case-sensitive), creating the category when absent. The
	// two calls are sequential with no transactional guarantee: the category
	// can outlive a failed product creation.
	CreateProduct(ctx context.Context, input ProductInput) (model.Product, error)
	DeleteProduct(ctx context.Context, productID int64) error
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
}

type Event interface {
	Type() string
}

type EventDispatcher interface {
	Dispatch(event Event) error
}

func NewService(gateway Gateway, credentials CredentialStore, confirmer Confirmer, dispatcher EventDispatcher) Service {
	return &service{gateway: gateway, credentials: credentials, confirmer: confirmer, dispatcher: dispatcher}
}

type service struct {
	gateway     Gateway
	credentials CredentialStore
	confirmer   Confirmer
	dispatcher  EventDispatcher
}

func (s *service) Login(ctx context.Context, username, password string) error {
	token, err := s.gateway.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := s.credentials.SetToken(token); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.AdminLoggedIn{Username: username})
	return nil
}

func (s *service) Logout() error {
	return s.credentials.Clear()
}

func (s *service) IsAuthenticated() bool {
	_, ok := s.credentials.Token()
	return ok
}

func (s *service) CreateProduct(ctx context.Context, input ProductInput) (model.Product, error) {
	token, ok := s.credentials.Token()
	if !ok {
		return model.Product{}, ErrNotAuthenticated
	}

	var categoryIDs []int64
	if input.CategoryName != "" {
		categoryID, err := s.resolveCategory(ctx, token, input.CategoryName)
		if err != nil {
			// The original admin panel falls back to an uncategorized
			// product when category resolution fails.
			log.WithError(err).WithField("category", input.CategoryName).Warn("category resolution failed")
		} else {
			categoryIDs = []int64{categoryID}
		}
	}

	return s.gateway.CreateProduct(ctx, token, input, categoryIDs)
}

func (s *service) resolveCategory(ctx context.Context, token, name string) (int64, error) {
	categories, err := s.gateway.FetchCategories(ctx)
	if err != nil {
		return 0, err
	}
	for _, c := range categories {
		if c.Name == name {
			return c.ID, nil
		}
	}

	created, err := s.gateway.CreateCategory(ctx, token, model.Category{Name: name, Description: name})
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

func (s *service) DeleteProduct(ctx context.Context, productID int64) error {
	token, ok := s.credentials.Token()
	if !ok {
		return ErrNotAuthenticated
	}
	if !s.confirmer.Confirm("Are you sure you want to delete this product?") {
		return ErrDeleteAborted
	}
	return s.gateway.DeleteProduct(ctx, token, productID)
}

func (s *service) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.gateway.FetchProducts(ctx)
}

func (s *service) ListOrders(ctx context.Context) ([]model.Order, error) {
	token, ok := s.credentials.Token()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return s.gateway.FetchAllOrders(ctx, token)
}
