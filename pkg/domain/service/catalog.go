package service

import (
	"strings"

	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/domain/model"
)

// CatalogView holds the last-fetched product and category lists and computes
// the filtered view. VisibleProducts is a pure function of the recorded
// state and preserves fetch order.
type CatalogView interface {
	SetProducts(products []model.Product)
	SetCategories(categories []model.Category)
	Products() []model.Product
	Categories() []model.Category
	FindProduct(productID int64) (model.Product, error)

	SetCategoryFilter(categoryID int64)
	SetSearchQuery(query string)
	VisibleProducts() []model.Product
}

func NewCatalogView() CatalogView {
	return &catalogView{categoryFilter: model.CategoryAll}
}

type catalogView struct {
	products       []model.Product
	categories     []model.Category
	categoryFilter int64
	searchQuery    string
}

func (v *catalogView) SetProducts(products []model.Product) {
	v.products = products
}

func (v *catalogView) SetCategories(categories []model.Category) {
	v.categories = categories
}

func (v *catalogView) Products() []model.Product {
	return v.products
}

func (v *catalogView) Categories() []model.Category {
	return v.categories
}

func (v *catalogView) FindProduct(productID int64) (model.Product, error) {
	for _, p := range v.products {
		if p.ID == productID {
			return p, nil
		}
	}
	return model.Product{}, model.ErrProductNotFound
}

func (v *catalogView) SetCategoryFilter(categoryID int64) {
	v.categoryFilter = categoryID
}

func (v *catalogView) SetSearchQuery(query string) {
	v.searchQuery = strings.ToLower(query)
}

func (v *catalogView) VisibleProducts() []model.Product {
	filtered := make([]model.Product, 0, len(v.products))
	for _, p := range v.products {
		if v.categoryFilter != model.CategoryAll && !p.InCategory(v.categoryFilter) {
			continue
		}
		if v.searchQuery != "" && !matchesQuery(p, v.searchQuery) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchesQuery(p model.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query)
}
