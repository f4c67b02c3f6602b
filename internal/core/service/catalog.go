package service

import (
	"context"
	"fmt"

	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/core/domain"
)

func (s *ShopService) CreateProduct(ctx context.Context, p domain.Product) (int64, error) {
	if p.Name == "" {
		return 0, fmt.Errorf("product name must not be empty: %w", domain.ErrInvalidArgument)
	}
	if p.Price.IsNegative() {
		return 0, fmt.Errorf("product price must not be negative: %w", domain.ErrInvalidArgument)
	}
	if p.Stock < 0 {
		return 0, fmt.Errorf("product stock must not be negative: %w", domain.ErrInvalidArgument)
	}

	id, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		return 0, err
	}
	s.log.Info("product created", "product_id", id, "name", p.Name)
	return id, nil
}

func (s *ShopService) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *ShopService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.log.Info("product deleted", "product_id", id)
	return nil
}

// GetProductStock answers availability reads from the mirror when it is
// warm, falling back to the store. The store stays authoritative.
func (s *ShopService) GetProductStock(ctx context.Context, id int64) (int, error) {
	if s.cache != nil {
		stock, ok, err := s.cache.GetStock(ctx, id)
		if err != nil {
			s.log.Warn("stock mirror read failed", "product_id", id, "err", err)
		} else if ok {
			return stock, nil
		}
	}

	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return 0, err
	}
	s.mirrorStock(ctx, id, p.Stock)
	return p.Stock, nil
}

func (s *ShopService) CreateCustomer(ctx context.Context, c domain.Customer) (int64, error) {
	if c.Email == "" {
		return 0, fmt.Errorf("customer email must not be empty: %w", domain.ErrInvalidArgument)
	}

	id, err := s.repo.CreateCustomer(ctx, c)
	if err != nil {
		return 0, err
	}
	s.log.Info("customer created", "customer_id", id)
	return id, nil
}

func (s *ShopService) GetCustomer(ctx context.Context, id int64) (domain.Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *ShopService) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	s.log.Info("customer deleted", "customer_id", id)
	return nil
}

// mirrorStock is best effort; a failed write only makes the next
// availability read hit the store.
func (s *ShopService) mirrorStock(ctx context.Context, productID int64, stock int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SyncStock(ctx, productID, stock); err != nil {
		s.log.Warn("stock mirror write failed", "product_id", productID, "err", err)
	}
}
