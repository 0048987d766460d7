package model

type ItemAddedToCart struct {
	ProductID int64
	Quantity  int
}

func (e ItemAddedToCart) Type() string { return "ItemAddedToCart" }

type CartQuantityChanged struct {
	ProductID int64
	Quantity  int
}

func (e CartQuantityChanged) Type() string { return "CartQuantityChanged" }

type ItemRemovedFromCart struct {
	ProductID int64
}

func (e ItemRemovedFromCart) Type() string { return "ItemRemovedFromCart" }

type CartCleared struct{}

func (e CartCleared) Type() string { return "CartCleared" }

type OrderPlaced struct {
	OrderID int64
}

func (e OrderPlaced) Type() string { return "OrderPlaced" }

type AdminLoggedIn struct {
	Username string
}

func (e AdminLoggedIn) Type() string { return "AdminLoggedIn" }
