package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/adapter/storage"
	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/core/domain"
	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/core/service"
	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/port"
	"github.com/IyshwaryaRamesh/Ecommerce-project/pkg/config"
)

const (
	initialStock  = 20
	totalRequests = 50
)

// Hammers concurrent placements of the same product through the in-memory
// store and checks that exactly initialStock of them succeed. Redis, when
// reachable, supplies the idempotency keys the real deployment uses.
func main() {
	ctx := context.Background()
	cfg := config.Load()

	var cache port.CacheRepository
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis not available, running without idempotency: %v", err)
	} else {
		cache = storage.NewRedisAdapter(rdb)
		defer rdb.Close()
	}

	repo := storage.NewMemoryAdapter()
	shop := service.NewShopService(repo, cache, nil)

	productID, err := shop.CreateProduct(ctx, domain.Product{
		Name:  "loadgen-item",
		Price: decimal.NewFromInt(10),
		Stock: initialStock,
	})
	if err != nil {
		log.Fatalf("create product: %v", err)
	}

	customerIDs := make([]int64, totalRequests)
	for i := range customerIDs {
		id, err := shop.CreateCustomer(ctx, domain.Customer{
			Name:     fmt.Sprintf("customer-%d", i),
			Email:    fmt.Sprintf("customer-%d@example.com", i),
			Password: "secret",
		})
		if err != nil {
			log.Fatalf("create customer: %v", err)
		}
		customerIDs[i] = id
	}

	var successCount atomic.Int32
	var failCount atomic.Int32
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func(customerID int64) {
			defer wg.Done()

			_, err := shop.PlaceOrder(ctx, service.PlaceOrderRequest{
				CustomerID:      customerID,
				Items:           []domain.OrderLine{{ProductID: productID, Quantity: 1}},
				ShippingAddress: "1 Load Test Lane",
				RequestID:       uuid.NewString(),
			})
			if err == nil {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}(customerIDs[i])
	}

	wg.Wait()
	elapsed := time.Since(start)

	success := successCount.Load()
	fail := failCount.Load()

	fmt.Println("========== LOAD TEST RESULTS ==========")
	fmt.Printf("Initial Stock:    %d\n", initialStock)
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("=======================================")

	if success == initialStock && fail == totalRequests-initialStock {
		fmt.Printf("PASS: exactly %d orders succeeded, %d failed\n", initialStock, totalRequests-initialStock)
	} else {
		fmt.Printf("FAIL: expected %d success/%d fail, got %d/%d\n",
			initialStock, totalRequests-initialStock, success, fail)
	}

	final, err := shop.GetProduct(ctx, productID)
	if err != nil {
		log.Fatalf("reload product: %v", err)
	}
	if final.Stock == 0 {
		fmt.Println("PASS: stock depleted to 0")
	} else {
		fmt.Printf("FAIL: expected stock 0, got %d\n", final.Stock)
	}
}
