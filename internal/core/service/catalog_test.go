package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/core/domain"
)

func TestCreateProduct_RejectsNegativeValues(t *testing.T) {
	shop, _ := newTestShop(t)
	ctx := context.Background()

	_, err := shop.CreateProduct(ctx, domain.Product{Name: "Bad", Price: decimal.RequireFromString("-1.00"), Stock: 1})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = shop.CreateProduct(ctx, domain.Product{Name: "Bad", Price: decimal.NewFromInt(1), Stock: -1})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = shop.CreateProduct(ctx, domain.Product{Price: decimal.NewFromInt(1), Stock: 1})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestDeleteProduct_BlockedByOrderItems(t *testing.T) {
	shop, _ := newTestShop(t)
	ctx := context.Background()
	customerID := seedCustomer(t, shop)
	productID := seedProduct(t, shop, "Widget", "10.00", 10)

	_, err := shop.PlaceOrder(ctx, PlaceOrderRequest{
		CustomerID:      customerID,
		Items:           []domain.OrderLine{{ProductID: productID, Quantity: 1}},
		ShippingAddress: "X",
	})
	require.NoError(t, err)

	err = shop.DeleteProduct(ctx, productID)

	var integrity *domain.IntegrityError
	require.ErrorAs(t, err, &integrity)
	require.Equal(t, domain.EntityProduct, integrity.Entity)

	// Still present.
	_, err = shop.GetProduct(ctx, productID)
	require.NoError(t, err)
}

func TestDeleteProduct_ClearsCartRows(t *testing.T) {
	shop, _ := newTestShop(t)
	ctx := context.Background()
	customerID := seedCustomer(t, shop)
	productID := seedProduct(t, shop, "Widget", "10.00", 10)
	require.NoError(t, shop.AddToCart(ctx, customerID, productID, 2))

	require.NoError(t, shop.DeleteProduct(ctx, productID))

	items, err := shop.GetAllFromCart(ctx, customerID)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	shop, _ := newTestShop(t)

	err := shop.DeleteProduct(context.Background(), 123)

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, domain.EntityProduct, notFound.Entity)
}

func TestDeleteCustomer_BlockedByOrders(t *testing.T) {
	shop, _ := newTestShop(t)
	ctx := context.Background()
	customerID := seedCustomer(t, shop)
	productID := seedProduct(t, shop, "Widget", "10.00", 10)

	_, err := shop.PlaceOrder(ctx, PlaceOrderRequest{
		CustomerID:      customerID,
		Items:           []domain.OrderLine{{ProductID: productID, Quantity: 1}},
		ShippingAddress: "X",
	})
	require.NoError(t, err)

	err = shop.DeleteCustomer(ctx, customerID)

	var integrity *domain.IntegrityError
	require.ErrorAs(t, err, &integrity)
	require.Equal(t, domain.EntityCustomer, integrity.Entity)
}

func TestDeleteCustomer_WithoutOrders(t *testing.T) {
	shop, _ := newTestShop(t)
	ctx := context.Background()
	customerID := seedCustomer(t, shop)
	productID := seedProduct(t, shop, "Widget", "10.00", 10)
	require.NoError(t, shop.AddToCart(ctx, customerID, productID, 1))

	require.NoError(t, shop.DeleteCustomer(ctx, customerID))

	var notFound *domain.NotFoundError
	_, err := shop.GetCustomer(ctx, customerID)
	require.ErrorAs(t, err, &notFound)
}

func TestCreateCustomer_RequiresEmail(t *testing.T) {
	shop, _ := newTestShop(t)

	_, err := shop.CreateCustomer(context.Background(), domain.Customer{Name: "NoMail"})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestGetProductStock_ReadThrough(t *testing.T) {
	_, repo := newTestShop(t)
	cache := newFakeCache()
	shop := NewShopService(repo, cache, nil)
	ctx := context.Background()
	productID := seedProduct(t, shop, "Widget", "10.00", 42)

	// Cold mirror: served from the store, then mirrored.
	stock, err := shop.GetProductStock(ctx, productID)
	require.NoError(t, err)
	require.Equal(t, 42, stock)

	mirrored, ok, err := cache.GetStock(ctx, productID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 42, mirrored)

	// Warm mirror wins even when stale.
	require.NoError(t, cache.SyncStock(ctx, productID, 7))
	stock, err = shop.GetProductStock(ctx, productID)
	require.NoError(t, err)
	require.Equal(t, 7, stock)
}
