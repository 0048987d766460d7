// Package storage adapts the flat localstore keys the original frontend
// used into the repository interfaces the domain services consume.
package storage

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/domain/model"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/localstore"
)

// Storage keys, kept byte-for-byte from the browser client so the names in
// the state file read the same as the old localStorage entries.
const (
	cartKey    = "shopEasy_cart"
	tokenKey   = "adminToken"
	sessionKey = "shopEasy_session"
)

type storedEntry struct {
	ProductID int64         `json:"product_id"`
	Product   storedProduct `json:"product"`
	Quantity  int           `json:"quantity"`
}

type storedProduct struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	SKU           string           `json:"sku"`
	Description   string           `json:"description"`
	PriceCents    int64            `json:"price_cents"`
	StockQuantity int              `json:"stock_quantity"`
	ImageURL      string           `json:"image_url,omitempty"`
	Categories    []storedCategory `json:"categories,omitempty"`
}

type storedCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// NewCartRepository returns a model.CartRepository over the given store.
func NewCartRepository(store localstore.Store) model.CartRepository {
	return &cartRepository{store: store}
}

type cartRepository struct {
	store localstore.Store
}

func (r *cartRepository) Load() ([]model.CartEntry, error) {
	raw, ok := r.store.Get(cartKey)
	if !ok {
		return nil, nil
	}

	var stored []storedEntry
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		// Corrupt state is normalized to an empty cart, never surfaced.
		log.WithError(err).Warn("discarding malformed stored cart")
		return nil, nil
	}

	entries := make([]model.CartEntry, 0, len(stored))
	for _, e := range stored {
		entries = append(entries, model.CartEntry{
			ProductID: e.ProductID,
			Product:   e.Product.toModel(),
			Quantity:  e.Quantity,
		})
	}
	return entries, nil
}

func (r *cartRepository) Save(entries []model.CartEntry) error {
	stored := make([]storedEntry, 0, len(entries))
	for _, e := range entries {
		stored = append(stored, storedEntry{
			ProductID: e.ProductID,
			Product:   toStoredProduct(e.Product),
			Quantity:  e.Quantity,
		})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return r.store.Set(cartKey, string(data))
}

func toStoredProduct(p model.Product) storedProduct {
	sp := storedProduct{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Description:   p.Description,
		PriceCents:    p.PriceCents,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
	}
	for _, c := range p.Categories {
		sp.Categories = append(sp.Categories, storedCategory{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return sp
}

func (sp storedProduct) toModel() model.Product {
	p := model.Product{
		ID:            sp.ID,
		Name:          sp.Name,
		SKU:           sp.SKU,
		Description:   sp.Description,
		PriceCents:    sp.PriceCents,
		StockQuantity: sp.StockQuantity,
		ImageURL:      sp.ImageURL,
	}
	for _, c := range sp.Categories {
		p.Categories = append(p.Categories, model.Category{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return p
}
