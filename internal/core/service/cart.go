package service

import (
	"context"

	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/core/domain"
)

func (s *ShopService) AddToCart(ctx context.Context, customerID, productID int64, quantity int) error {
	if quantity <= 0 {
		return &domain.InvalidQuantityError{ProductID: productID, Quantity: quantity}
	}
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return err
	}
	if err := s.requireProduct(ctx, productID); err != nil {
		return err
	}

	if err := s.repo.AddToCart(ctx, customerID, productID, quantity); err != nil {
		return err
	}
	s.log.Debug("cart add", "customer_id", customerID, "product_id", productID, "quantity", quantity)
	return nil
}

// RemoveFromCart reports whether a row was removed. Removing an absent
// entry is a no-op success.
func (s *ShopService) RemoveFromCart(ctx context.Context, customerID, productID int64) (bool, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return false, err
	}
	if err := s.requireProduct(ctx, productID); err != nil {
		return false, err
	}
	return s.repo.RemoveFromCart(ctx, customerID, productID)
}

// GetAllFromCart returns the cart sorted by product name ascending; an
// empty cart yields an empty slice, not an error.
func (s *ShopService) GetAllFromCart(ctx context.Context, customerID int64) ([]domain.CartItem, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.repo.ListCart(ctx, customerID)
}
