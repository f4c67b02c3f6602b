package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/core/domain"
)

type cartKey struct {
	customerID int64
	productID  int64
}

// MemoryAdapter is a mutex-guarded StoreRepository with the same observable
// semantics as the MySQL adapter. It backs unit tests and the load
// generator, where spinning up a database is not worth it. Writes serialize
// through one lock, so placement is trivially all-or-nothing.
type MemoryAdapter struct {
	mu         sync.RWMutex
	products   map[int64]domain.Product
	customers  map[int64]domain.Customer
	cart       map[cartKey]int
	orders     map[int64]domain.Order
	orderItems map[int64][]domain.OrderLine

	nextProductID  int64
	nextCustomerID int64
	nextOrderID    int64
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		products:   make(map[int64]domain.Product),
		customers:  make(map[int64]domain.Customer),
		cart:       make(map[cartKey]int),
		orders:     make(map[int64]domain.Order),
		orderItems: make(map[int64][]domain.OrderLine),
	}
}

func (m *MemoryAdapter) CreateProduct(ctx context.Context, p domain.Product) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextProductID++
	p.ID = m.nextProductID
	m.products[p.ID] = p
	return p.ID, nil
}

func (m *MemoryAdapter) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return domain.Product{}, &domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
	}
	return p, nil
}

func (m *MemoryAdapter) ProductExists(ctx context.Context, id int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.products[id]
	return ok, nil
}

func (m *MemoryAdapter) DeleteProduct(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return &domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
	}
	for _, lines := range m.orderItems {
		for _, ln := range lines {
			if ln.ProductID == id {
				return &domain.IntegrityError{
					Entity: domain.EntityProduct,
					ID:     id,
					Err:    errors.New("order_items row exists"),
				}
			}
		}
	}
	for k := range m.cart {
		if k.productID == id {
			delete(m.cart, k)
		}
	}
	delete(m.products, id)
	return nil
}

func (m *MemoryAdapter) CreateCustomer(ctx context.Context, c domain.Customer) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextCustomerID++
	c.ID = m.nextCustomerID
	m.customers[c.ID] = c
	return c.ID, nil
}

func (m *MemoryAdapter) GetCustomer(ctx context.Context, id int64) (domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.customers[id]
	if !ok {
		return domain.Customer{}, &domain.NotFoundError{Entity: domain.EntityCustomer, ID: id}
	}
	return c, nil
}

func (m *MemoryAdapter) CustomerExists(ctx context.Context, id int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.customers[id]
	return ok, nil
}

func (m *MemoryAdapter) DeleteCustomer(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.customers[id]; !ok {
		return &domain.NotFoundError{Entity: domain.EntityCustomer, ID: id}
	}
	for _, o := range m.orders {
		if o.CustomerID == id {
			return &domain.IntegrityError{
				Entity: domain.EntityCustomer,
				ID:     id,
				Err:    errors.New("orders row exists"),
			}
		}
	}
	for k := range m.cart {
		if k.customerID == id {
			delete(m.cart, k)
		}
	}
	delete(m.customers, id)
	return nil
}

func (m *MemoryAdapter) AddToCart(ctx context.Context, customerID, productID int64, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart[cartKey{customerID, productID}] += quantity
	return nil
}

func (m *MemoryAdapter) RemoveFromCart(ctx context.Context, customerID, productID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := cartKey{customerID, productID}
	if _, ok := m.cart[k]; !ok {
		return false, nil
	}
	delete(m.cart, k)
	return true, nil
}

func (m *MemoryAdapter) ListCart(ctx context.Context, customerID int64) ([]domain.CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var items []domain.CartItem
	for k, qty := range m.cart {
		if k.customerID != customerID {
			continue
		}
		items = append(items, domain.CartItem{Product: m.products[k.productID], Quantity: qty})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Product.Name < items[j].Product.Name
	})
	return items, nil
}

func (m *MemoryAdapter) PlaceOrder(ctx context.Context, customerID int64, lines []domain.OrderLine, shippingAddress string) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Validate everything before touching any state.
	total := decimal.Zero
	for _, ln := range lines {
		p, ok := m.products[ln.ProductID]
		if !ok {
			return domain.Order{}, &domain.NotFoundError{Entity: domain.EntityProduct, ID: ln.ProductID}
		}
		if p.Stock < ln.Quantity {
			return domain.Order{}, &domain.InsufficientStockError{
				ProductID: p.ID,
				Name:      p.Name,
				Available: p.Stock,
				Requested: ln.Quantity,
			}
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(ln.Quantity))))
	}

	m.nextOrderID++
	order := domain.Order{
		ID:              m.nextOrderID,
		CustomerID:      customerID,
		Date:            time.Now().UTC(),
		Total:           total,
		ShippingAddress: shippingAddress,
	}
	m.orders[order.ID] = order

	items := make([]domain.OrderLine, 0, len(lines))
	for _, ln := range lines {
		p := m.products[ln.ProductID]
		p.Stock -= ln.Quantity
		m.products[p.ID] = p
		items = append(items, ln)
		delete(m.cart, cartKey{customerID, ln.ProductID})
	}
	m.orderItems[order.ID] = items

	return order, nil
}

func (m *MemoryAdapter) ListOrdersByCustomer(ctx context.Context, customerID int64) ([]domain.OrderEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []domain.OrderEntry
	for id, o := range m.orders {
		if o.CustomerID != customerID {
			continue
		}
		for _, ln := range m.orderItems[id] {
			entries = append(entries, domain.OrderEntry{
				OrderID:   id,
				OrderDate: o.Date,
				Product:   m.products[ln.ProductID],
				Quantity:  ln.Quantity,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].OrderDate.Equal(entries[j].OrderDate) {
			return entries[i].OrderDate.After(entries[j].OrderDate)
		}
		return entries[i].OrderID > entries[j].OrderID
	})
	return entries, nil
}
