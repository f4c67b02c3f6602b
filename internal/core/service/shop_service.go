package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/core/domain"
	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/port"
)

// ErrDuplicateRequest rejects an order-placement request whose request id
// has already been accepted.
var ErrDuplicateRequest = errors.New("duplicate request")

// ShopService implements the shop's repository-facing operations on top of
// a StoreRepository. The optional cache carries request idempotency and a
// stock mirror; pass nil to run without it.
type ShopService struct {
	repo  port.StoreRepository
	cache port.CacheRepository
	log   *slog.Logger
}

func NewShopService(repo port.StoreRepository, cache port.CacheRepository, log *slog.Logger) *ShopService {
	if log == nil {
		log = slog.Default()
	}
	return &ShopService{repo: repo, cache: cache, log: log}
}

// requireCustomer fails fast with a typed not-found error before any state
// keyed by the id is touched.
func (s *ShopService) requireCustomer(ctx context.Context, id int64) error {
	ok, err := s.repo.CustomerExists(ctx, id)
	if err != nil {
		return fmt.Errorf("check customer %d: %w", id, err)
	}
	if !ok {
		return &domain.NotFoundError{Entity: domain.EntityCustomer, ID: id}
	}
	return nil
}

func (s *ShopService) requireProduct(ctx context.Context, id int64) error {
	ok, err := s.repo.ProductExists(ctx, id)
	if err != nil {
		return fmt.Errorf("check product %d: %w", id, err)
	}
	if !ok {
		return &domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
	}
	return nil
}
