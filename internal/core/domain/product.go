package domain

import "github.com/shopspring/decimal"

// Product is a catalog row. Price uses decimal math so order totals are
// exact; Stock never goes below zero (enforced by the store).
type Product struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	Description string
	Stock       int
}
