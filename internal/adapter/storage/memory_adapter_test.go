package storage

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/core/domain"
)

func TestMemoryPlaceOrder_ConcurrentNoOversell(t *testing.T) {
	initialStock := 20
	totalRequests := 50

	ctx := context.Background()
	repo := NewMemoryAdapter()

	productID, err := repo.CreateProduct(ctx, domain.Product{
		Name:  "scarce-item",
		Price: decimal.NewFromInt(5),
		Stock: initialStock,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	customerIDs := make([]int64, totalRequests)
	for i := range customerIDs {
		id, err := repo.CreateCustomer(ctx, domain.Customer{Name: "c", Email: "c@example.com", Password: "p"})
		if err != nil {
			t.Fatalf("create customer: %v", err)
		}
		customerIDs[i] = id
	}

	var successCount atomic.Int32
	var insufficientCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func(customerID int64) {
			defer wg.Done()

			_, err := repo.PlaceOrder(ctx, customerID,
				[]domain.OrderLine{{ProductID: productID, Quantity: 1}}, "addr")
			if err == nil {
				successCount.Add(1)
				return
			}
			var insufficient *domain.InsufficientStockError
			if errors.As(err, &insufficient) {
				insufficientCount.Add(1)
				return
			}
			t.Errorf("unexpected error: %v", err)
		}(customerIDs[i])
	}

	wg.Wait()

	if successCount.Load() != int32(initialStock) {
		t.Errorf("expected %d successes, got %d", initialStock, successCount.Load())
	}
	if insufficientCount.Load() != int32(totalRequests-initialStock) {
		t.Errorf("expected %d insufficient-stock failures, got %d",
			totalRequests-initialStock, insufficientCount.Load())
	}

	p, err := repo.GetProduct(ctx, productID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if p.Stock != 0 {
		t.Errorf("expected stock 0, got %d", p.Stock)
	}
}

func TestMemoryListOrders_TieBreakOnOrderID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAdapter()

	customerID, err := repo.CreateCustomer(ctx, domain.Customer{Name: "c", Email: "c@example.com", Password: "p"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	productID, err := repo.CreateProduct(ctx, domain.Product{Name: "p", Price: decimal.NewFromInt(1), Stock: 10})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	// Force two orders onto the same instant so only the id can break
	// the tie.
	sameInstant := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, orderID := range []int64{1, 2} {
		repo.orders[orderID] = domain.Order{
			ID:         orderID,
			CustomerID: customerID,
			Date:       sameInstant,
			Total:      decimal.NewFromInt(1),
		}
		repo.orderItems[orderID] = []domain.OrderLine{{ProductID: productID, Quantity: 1}}
	}
	repo.nextOrderID = 2

	entries, err := repo.ListOrdersByCustomer(ctx, customerID)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].OrderID != 2 || entries[1].OrderID != 1 {
		t.Errorf("expected order ids [2 1], got [%d %d]", entries[0].OrderID, entries[1].OrderID)
	}
}

func TestMemoryRemoveFromCart(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAdapter()

	removed, err := repo.RemoveFromCart(ctx, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Error("expected no row removed")
	}

	if err := repo.AddToCart(ctx, 1, 1, 3); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	removed, err = repo.RemoveFromCart(ctx, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !removed {
		t.Error("expected row removed")
	}
}
