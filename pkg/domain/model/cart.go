package model

import "errors"

var (
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrStockLimitExceeded = errors.New("stock limit reached")
	ErrCartItemNotFound   = errors.New("cart item not found")
)

// CartEntry binds a product snapshot to a quantity. The snapshot's price and
// stock quantity are frozen at add time; totals and stock ceilings use them,
// not a live re-fetch.
type CartEntry struct {
	ProductID int64
	Product   Product
	Quantity  int
}

func (e CartEntry) SubtotalCents() int64 {
	return e.Product.PriceCents * int64(e.Quantity)
}

// CartRepository is the durable copy of the cart. Load must normalize a
// malformed stored payload to an empty list instead of failing.
type CartRepository interface {
	Load() ([]CartEntry, error)
	Save(entries []CartEntry) error
}
