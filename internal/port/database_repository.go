package port

import (
	"context"

	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/core/domain"
)

// StoreRepository is the persistence contract for the shop. Implementations
// own transaction scope: every mutating call either commits fully or leaves
// the store untouched.
type StoreRepository interface {
	// CreateProduct inserts a product and returns its generated id.
	CreateProduct(ctx context.Context, p domain.Product) (int64, error)

	// GetProduct loads the authoritative product row, or NotFoundError.
	GetProduct(ctx context.Context, id int64) (domain.Product, error)

	// ProductExists reports whether the product id is present.
	ProductExists(ctx context.Context, id int64) (bool, error)

	// DeleteProduct removes a product and its cart rows. Returns
	// IntegrityError when order items still reference the product.
	DeleteProduct(ctx context.Context, id int64) error

	// CreateCustomer inserts a customer and returns its generated id.
	CreateCustomer(ctx context.Context, c domain.Customer) (int64, error)

	// GetCustomer loads a customer row, or NotFoundError.
	GetCustomer(ctx context.Context, id int64) (domain.Customer, error)

	// CustomerExists reports whether the customer id is present.
	CustomerExists(ctx context.Context, id int64) (bool, error)

	// DeleteCustomer removes a customer and its cart rows. Returns
	// IntegrityError when orders still reference the customer.
	DeleteCustomer(ctx context.Context, id int64) error

	// AddToCart adds quantity for (customer, product), summing into the
	// existing row if one is present.
	AddToCart(ctx context.Context, customerID, productID int64, quantity int) error

	// RemoveFromCart deletes the cart row if present and reports whether
	// a row was actually removed. Absence is not an error.
	RemoveFromCart(ctx context.Context, customerID, productID int64) (bool, error)

	// ListCart returns the customer's cart joined with product snapshots,
	// ordered by product name ascending.
	ListCart(ctx context.Context, customerID int64) ([]domain.CartItem, error)

	// PlaceOrder atomically reloads each line's product, validates stock,
	// inserts the order and its line items, decrements stock and deletes
	// the consumed cart rows. Any failure rolls the whole thing back.
	PlaceOrder(ctx context.Context, customerID int64, lines []domain.OrderLine, shippingAddress string) (domain.Order, error)

	// ListOrdersByCustomer returns the customer's order history ordered
	// by order date descending, then order id descending.
	ListOrdersByCustomer(ctx context.Context, customerID int64) ([]domain.OrderEntry, error)
}
