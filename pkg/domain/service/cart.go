package service

import (
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/domain/model"
)

type Event interface {
	Type() string
}

type EventDispatcher interface {
	Dispatch(event Event) error
}

// CartService keeps the ordered, unique-by-product cart and writes the
// durable copy after every successful mutation. Like the browser event loop
// it replaces, it expects a single goroutine.
type CartService interface {
	// AddItem appends a one-unit entry for a product not yet in the cart, or
	// bumps an existing entry by one. requestedQty beyond the first unit is
	// ignored; callers wanting an exact quantity use SetQuantity.
	AddItem(product model.Product, requestedQty int) error
	SetQuantity(productID int64, quantity int) error
	RemoveItem(productID int64) error
	Items() []model.CartEntry
	Len() int
	TotalCents() int64
	Clear() error
}

func NewCartService(repo model.CartRepository, dispatcher EventDispatcher) CartService {
	entries, err := repo.Load()
	if err != nil {
		entries = nil
	}
	return &cartService{repo: repo, dispatcher: dispatcher, entries: entries}
}

type cartService struct {
	repo       model.CartRepository
	dispatcher EventDispatcher
	entries    []model.CartEntry
}

func (s *cartService) AddItem(product model.Product, _ int) error {
	if !product.InStock() {
		return model.ErrOutOfStock
	}

	for i := range s.entries {
		if s.entries[i].ProductID != product.ID {
			continue
		}
		if s.entries[i].Quantity >= s.entries[i].Product.StockQuantity {
			return model.ErrStockLimitExceeded
		}
		s.entries[i].Quantity++

		if err := s.repo.Save(s.entries); err != nil {
			s.entries[i].Quantity--
			return err
		}
		_ = s.dispatcher.Dispatch(model.ItemAddedToCart{ProductID: product.ID, Quantity: s.entries[i].Quantity})
		return nil
	}

	s.entries = append(s.entries, model.CartEntry{ProductID: product.ID, Product: product, Quantity: 1})
	if err := s.repo.Save(s.entries); err != nil {
		s.entries = s.entries[:len(s.entries)-1]
		return err
	}
	_ = s.dispatcher.Dispatch(model.ItemAddedToCart{ProductID: product.ID, Quantity: 1})
	return nil
}

func (s *cartService) SetQuantity(productID int64, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(productID)
	}

	for i := range s.entries {
		if s.entries[i].ProductID != productID {
			continue
		}
		if quantity > s.entries[i].Product.StockQuantity {
			return model.ErrStockLimitExceeded
		}

		previous := s.entries[i].Quantity
		s.entries[i].Quantity = quantity

		if err := s.repo.Save(s.entries); err != nil {
			s.entries[i].Quantity = previous
			return err
		}
		_ = s.dispatcher.Dispatch(model.CartQuantityChanged{ProductID: productID, Quantity: quantity})
		return nil
	}

	return model.ErrCartItemNotFound
}

func (s *cartService) RemoveItem(productID int64) error {
	index := -1
	for i := range s.entries {
		if s.entries[i].ProductID == productID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil
	}

	removed := s.entries[index]
	s.entries = append(s.entries[:index], s.entries[index+1:]...)

	if err := s.repo.Save(s.entries); err != nil {
		s.entries = append(s.entries[:index], append([]model.CartEntry{removed}, s.entries[index:]...)...)
		return err
	}
	_ = s.dispatcher.Dispatch(model.ItemRemovedFromCart{ProductID: productID})
	return nil
}

func (s *cartService) Items() []model.CartEntry {
	items := make([]model.CartEntry, len(s.entries))
	copy(items, s.entries)
	return items
}

func (s *cartService) Len() int {
	return len(s.entries)
}

func (s *cartService) TotalCents() int64 {
	var total int64
	for _, entry := range s.entries {
		total += entry.SubtotalCents()
	}
	return total
}

func (s *cartService) Clear() error {
	previous := s.entries
	s.entries = nil

	if err := s.repo.Save(s.entries); err != nil {
		s.entries = previous
		return err
	}
	_ = s.dispatcher.Dispatch(model.CartCleared{})
	return nil
}
