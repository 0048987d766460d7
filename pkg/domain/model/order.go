package model

import (
	"errors"
	"time"
)

var (
	ErrEmptyCart          = errors.New("cannot check out an empty cart")
	ErrMissingContactInfo = errors.New("customer name, phone and address are required")
	ErrSubmitInProgress   = errors.New("an order submission is already in progress")
)

// ContactInfo is the checkout form payload. Notes are optional.
type ContactInfo struct {
	Name    string
	Phone   string
	Address string
	Notes   string
}

func (c ContactInfo) Complete() bool {
	return c.Name != "" && c.Phone != "" && c.Address != ""
}

// OrderItem carries the price captured when the product entered the cart.
type OrderItem struct {
	ProductID  int64
	Quantity   int
	PriceCents int64
}

// OrderDraft is built from the cart at submission time and not retained
// after the backend accepts it. SessionID ties the guest order to the
// durable session identifier when one exists.
type OrderDraft struct {
	Contact   ContactInfo
	SessionID string
	Items     []OrderItem
}

// Order is the admin-side view of a placed order.
type Order struct {
	ID           int64
	OrderNumber  string
	CustomerName string
	Phone        string
	Address      string
	Status       string
	TotalCents   int64
	Notes        string
	WhatsAppSent bool
	CreatedAt    time.Time
}
