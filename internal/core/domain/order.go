package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is immutable once placed. Total is computed from the line items at
// placement time, never supplied by the caller.
type Order struct {
	ID              int64
	CustomerID      int64
	Date            time.Time
	Total           decimal.Decimal
	ShippingAddress string
}

// OrderEntry is one row of a customer's order history: the order header
// joined with a line item and its product snapshot. Grouping entries under
// their order is the caller's concern.
type OrderEntry struct {
	OrderID   int64
	OrderDate time.Time
	Product   Product
	Quantity  int
}
