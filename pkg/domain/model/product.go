package model

import "errors"

var ErrProductNotFound = errors.New("product not found")

// CategoryAll is the category filter sentinel meaning "no filtering".
// Backend category identifiers start at 1, so zero is free to carry it.
const CategoryAll int64 = 0

type Category struct {
	ID          int64
	Name        string
	Description string
}

// Product is the client-side snapshot of a catalog entry. It is never
// mutated locally; writes go through the backend and the list is re-fetched.
type Product struct {
	ID            int64
	Name          string
	SKU           string
	Description   string
	PriceCents    int64
	StockQuantity int
	ImageURL      string
	Categories    []Category
}

func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

func (p Product) InCategory(categoryID int64) bool {
	for _, c := range p.Categories {
		if c.ID == categoryID {
			return true
		}
	}
	return false
}
