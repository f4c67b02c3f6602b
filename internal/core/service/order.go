package service

import (
	"context"
	"fmt"

	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/core/domain"
)

// PlaceOrderRequest describes one placement. Items nil sources the
// customer's current cart; an explicit list bypasses the cart. RequestID is
// optional and only enforced when the service runs with a cache.
type PlaceOrderRequest struct {
	CustomerID      int64
	Items           []domain.OrderLine
	ShippingAddress string
	RequestID       string
}

// PlaceOrder runs the whole placement: idempotency check, customer check,
// item sourcing, per-line validation, then one atomic store transaction
// that creates the order, decrements stock and clears the consumed cart
// rows. Nothing is observable unless every step committed.
func (s *ShopService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (domain.Order, error) {
	if s.cache != nil && req.RequestID != "" {
		ok, err := s.cache.SetIdempotency(ctx, req.RequestID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("idempotency check: %w", err)
		}
		if !ok {
			return domain.Order{}, ErrDuplicateRequest
		}
	}

	if err := s.requireCustomer(ctx, req.CustomerID); err != nil {
		return domain.Order{}, err
	}

	lines := req.Items
	if lines == nil {
		cart, err := s.repo.ListCart(ctx, req.CustomerID)
		if err != nil {
			return domain.Order{}, err
		}
		lines = make([]domain.OrderLine, 0, len(cart))
		for _, item := range cart {
			lines = append(lines, domain.OrderLine{ProductID: item.Product.ID, Quantity: item.Quantity})
		}
	}
	if len(lines) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}

	seen := make(map[int64]bool, len(lines))
	for _, ln := range lines {
		if ln.Quantity <= 0 {
			return domain.Order{}, &domain.InvalidQuantityError{ProductID: ln.ProductID, Quantity: ln.Quantity}
		}
		if seen[ln.ProductID] {
			return domain.Order{}, &domain.DuplicateProductError{ProductID: ln.ProductID}
		}
		seen[ln.ProductID] = true
	}

	order, err := s.repo.PlaceOrder(ctx, req.CustomerID, lines, req.ShippingAddress)
	if err != nil {
		return domain.Order{}, err
	}

	s.log.Info("order placed",
		"order_id", order.ID,
		"customer_id", order.CustomerID,
		"total", order.Total.String(),
		"items", len(lines),
	)

	// Refresh the stock mirror for everything this order touched.
	if s.cache != nil {
		for _, ln := range lines {
			p, err := s.repo.GetProduct(ctx, ln.ProductID)
			if err != nil {
				s.log.Warn("stock mirror refresh failed", "product_id", ln.ProductID, "err", err)
				continue
			}
			s.mirrorStock(ctx, ln.ProductID, p.Stock)
		}
	}

	return order, nil
}

// GetOrdersByCustomer returns the customer's history, newest order first.
// A customer with no orders gets an empty slice.
func (s *ShopService) GetOrdersByCustomer(ctx context.Context, customerID int64) ([]domain.OrderEntry, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.repo.ListOrdersByCustomer(ctx, customerID)
}
