package port

import "context"

type CacheRepository interface {
	// SetIdempotency sets a key for idempotency check, returns false if already exists
	SetIdempotency(ctx context.Context, key string) (bool, error)

	// SyncStock mirrors a product's current stock level, best effort
	SyncStock(ctx context.Context, productID int64, stock int) error

	// GetStock reads the mirrored stock level; ok is false on a cache miss
	GetStock(ctx context.Context, productID int64) (stock int, ok bool, err error)
}
