package domain

// CartItem is one cart row joined with its product snapshot. There is at
// most one row per (customer, product); repeated adds accumulate quantity.
type CartItem struct {
	Product  Product
	Quantity int
}

// OrderLine is a requested (product, quantity) pair before the placement
// snapshot refreshes price and stock from the store.
type OrderLine struct {
	ProductID int64
	Quantity  int
}
