package storage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	stockKeyPrefix    = "stock:"
	idempotencyKeyTTL = 24 * time.Hour
)

// RedisAdapter keeps two auxiliary concerns out of MySQL: idempotency keys
// for order-placement requests and a best-effort mirror of product stock
// levels. MySQL stays authoritative; a stale or missing mirror entry only
// costs an extra database read.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) SetIdempotency(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, "idempotency:"+key, 1, idempotencyKeyTTL).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (r *RedisAdapter) SyncStock(ctx context.Context, productID int64, stock int) error {
	return r.client.Set(ctx, stockKey(productID), stock, 0).Err()
}

func (r *RedisAdapter) GetStock(ctx context.Context, productID int64) (int, bool, error) {
	val, err := r.client.Get(ctx, stockKey(productID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

func stockKey(productID int64) string {
	return stockKeyPrefix + strconv.FormatInt(productID, 10)
}
