package domain

import (
	"errors"
	"fmt"
)

const (
	EntityCustomer = "customer"
	EntityProduct  = "product"
	EntityOrder    = "order"
)

var (
	// ErrInvalidArgument is the root of the invalid-input family; typed
	// errors below unwrap to it so callers can match the whole class.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyCart is returned when an order is placed with no explicit
	// items and the customer's cart has nothing in it.
	ErrEmptyCart = errors.New("cart is empty, nothing to order")
)

// NotFoundError reports an absent customer, product or order id.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// InvalidQuantityError rejects a non-positive quantity for a product.
type InvalidQuantityError struct {
	ProductID int64
	Quantity  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for product %d", e.Quantity, e.ProductID)
}

func (e *InvalidQuantityError) Unwrap() error { return ErrInvalidArgument }

// DuplicateProductError rejects an explicit item list naming the same
// product id more than once.
type DuplicateProductError struct {
	ProductID int64
}

func (e *DuplicateProductError) Error() string {
	return fmt.Sprintf("product %d appears more than once in order items", e.ProductID)
}

func (e *DuplicateProductError) Unwrap() error { return ErrInvalidArgument }

// InsufficientStockError names the product that cannot cover the requested
// quantity. Available is the stock observed inside the failing transaction.
type InsufficientStockError struct {
	ProductID int64
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: have %d, need %d", e.Name, e.Available, e.Requested)
}

// IntegrityError reports a delete blocked by a dependent row, after the
// surrounding transaction has rolled back.
type IntegrityError struct {
	Entity string
	ID     int64
	Err    error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s %d is referenced by existing orders: %v", e.Entity, e.ID, e.Err)
}

func (e *IntegrityError) Unwrap() error { return e.Err }
