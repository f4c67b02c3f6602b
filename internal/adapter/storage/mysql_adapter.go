package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/core/domain"
)

// MySQL error 1451: cannot delete a parent row referenced by a foreign key.
const erRowIsReferenced = 1451

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) CreateProduct(ctx context.Context, p domain.Product) (int64, error) {
	res, err := m.db.ExecContext(ctx, `
		INSERT INTO products (name, price, description, stock)
		VALUES (?, ?, ?, ?)`,
		p.Name, p.Price, nullString(p.Description), p.Stock,
	)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return res.LastInsertId()
}

func (m *MySQLAdapter) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	row := m.db.QueryRowContext(ctx, `
		SELECT product_id, name, price, description, stock
		FROM products WHERE product_id = ?`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, &domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("query product: %w", err)
	}
	return p, nil
}

func (m *MySQLAdapter) ProductExists(ctx context.Context, id int64) (bool, error) {
	return m.exists(ctx, `SELECT 1 FROM products WHERE product_id = ?`, id)
}

func (m *MySQLAdapter) DeleteProduct(ctx context.Context, id int64) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Cart rows are pending intent, safe to drop with the product.
	if _, err := tx.ExecContext(ctx, `DELETE FROM cart WHERE product_id = ?`, id); err != nil {
		return fmt.Errorf("clear cart rows: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE product_id = ?`, id)
	if err != nil {
		if fkBlocked(err) {
			return &domain.IntegrityError{Entity: domain.EntityProduct, ID: id, Err: err}
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return &domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
	}

	return tx.Commit()
}

func (m *MySQLAdapter) CreateCustomer(ctx context.Context, c domain.Customer) (int64, error) {
	res, err := m.db.ExecContext(ctx, `
		INSERT INTO customers (name, email, password)
		VALUES (?, ?, ?)`,
		c.Name, c.Email, c.Password,
	)
	if err != nil {
		return 0, fmt.Errorf("insert customer: %w", err)
	}
	return res.LastInsertId()
}

func (m *MySQLAdapter) GetCustomer(ctx context.Context, id int64) (domain.Customer, error) {
	var c domain.Customer
	err := m.db.QueryRowContext(ctx, `
		SELECT customer_id, name, email, password
		FROM customers WHERE customer_id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Password)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, &domain.NotFoundError{Entity: domain.EntityCustomer, ID: id}
	}
	if err != nil {
		return domain.Customer{}, fmt.Errorf("query customer: %w", err)
	}
	return c, nil
}

func (m *MySQLAdapter) CustomerExists(ctx context.Context, id int64) (bool, error) {
	return m.exists(ctx, `SELECT 1 FROM customers WHERE customer_id = ?`, id)
}

func (m *MySQLAdapter) DeleteCustomer(ctx context.Context, id int64) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart WHERE customer_id = ?`, id); err != nil {
		return fmt.Errorf("clear cart rows: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM customers WHERE customer_id = ?`, id)
	if err != nil {
		if fkBlocked(err) {
			return &domain.IntegrityError{Entity: domain.EntityCustomer, ID: id, Err: err}
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return &domain.NotFoundError{Entity: domain.EntityCustomer, ID: id}
	}

	return tx.Commit()
}

func (m *MySQLAdapter) AddToCart(ctx context.Context, customerID, productID int64, quantity int) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO cart (customer_id, product_id, quantity)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)`,
		customerID, productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert cart row: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) RemoveFromCart(ctx context.Context, customerID, productID int64) (bool, error) {
	res, err := m.db.ExecContext(ctx, `
		DELETE FROM cart WHERE customer_id = ? AND product_id = ?`,
		customerID, productID,
	)
	if err != nil {
		return false, fmt.Errorf("delete cart row: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return rows > 0, nil
}

func (m *MySQLAdapter) ListCart(ctx context.Context, customerID int64) ([]domain.CartItem, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT p.product_id, p.name, p.price, p.description, p.stock, c.quantity
		FROM cart c
		JOIN products p ON p.product_id = c.product_id
		WHERE c.customer_id = ?
		ORDER BY p.name ASC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("query cart: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var (
			p    domain.Product
			desc sql.NullString
			qty  int
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &desc, &p.Stock, &qty); err != nil {
			return nil, fmt.Errorf("scan cart row: %w", err)
		}
		p.Description = desc.String
		items = append(items, domain.CartItem{Product: p, Quantity: qty})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart rows: %w", err)
	}
	return items, nil
}

// PlaceOrder runs the whole placement inside one transaction: reload each
// product for fresh price and stock, validate, insert the order and its
// line items, decrement stock conditionally and drop the consumed cart
// rows. The conditional decrement (stock >= quantity) catches concurrent
// placements that passed validation against the same rows; zero affected
// rows aborts the transaction as an insufficient-stock failure.
func (m *MySQLAdapter) PlaceOrder(ctx context.Context, customerID int64, lines []domain.OrderLine, shippingAddress string) (domain.Order, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	type snapshot struct {
		product  domain.Product
		quantity int
	}

	total := decimal.Zero
	snaps := make([]snapshot, 0, len(lines))
	for _, ln := range lines {
		row := tx.QueryRowContext(ctx, `
			SELECT product_id, name, price, description, stock
			FROM products WHERE product_id = ?`, ln.ProductID)

		p, err := scanProduct(row)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, &domain.NotFoundError{Entity: domain.EntityProduct, ID: ln.ProductID}
		}
		if err != nil {
			return domain.Order{}, fmt.Errorf("load product %d: %w", ln.ProductID, err)
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
		snaps = append(snaps, snapshot{product: p, quantity: ln.Quantity})
	}

	orderDate := time.Now().UTC().Truncate(time.Microsecond)
	res, err := tx.ExecContext(ctx, `
		INSERT INTO orders (customer_id, order_date, total_price, shipping_address)
		VALUES (?, ?, ?, ?)`,
		customerID, orderDate, total, shippingAddress,
	)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return domain.Order{}, fmt.Errorf("order id: %w", err)
	}

	for _, s := range snaps {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity)
			VALUES (?, ?, ?)`,
			orderID, s.product.ID, s.quantity,
		)
		if err != nil {
			return domain.Order{}, fmt.Errorf("insert order item %d: %w", s.product.ID, err)
		}

		upd, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - ?
			WHERE product_id = ? AND stock >= ?`,
			s.quantity, s.product.ID, s.quantity,
		)
		if err != nil {
			return domain.Order{}, fmt.Errorf("decrement stock %d: %w", s.product.ID, err)
		}
		if rows, _ := upd.RowsAffected(); rows == 0 {
			// Lost a race since the validation read. Re-read the row so
			// the error names what is actually available now.
			available := s.product.Stock
			tx.QueryRowContext(ctx, `
				SELECT stock FROM products WHERE product_id = ?`, s.product.ID,
			).Scan(&available)
			return domain.Order{}, &domain.InsufficientStockError{
				ProductID: s.product.ID,
				Name:      s.product.Name,
				Available: available,
				Requested: s.quantity,
			}
		}

		_, err = tx.ExecContext(ctx, `
			DELETE FROM cart WHERE customer_id = ? AND product_id = ?`,
			customerID, s.product.ID,
		)
		if err != nil {
			return domain.Order{}, fmt.Errorf("clear cart row %d: %w", s.product.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, fmt.Errorf("commit order: %w", err)
	}

	return domain.Order{
		ID:              orderID,
		CustomerID:      customerID,
		Date:            orderDate,
		Total:           total,
		ShippingAddress: shippingAddress,
	}, nil
}

func (m *MySQLAdapter) ListOrdersByCustomer(ctx context.Context, customerID int64) ([]domain.OrderEntry, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT o.order_id, o.order_date,
		       p.product_id, p.name, p.price, p.description, p.stock,
		       oi.quantity
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.order_id
		JOIN products p ON p.product_id = oi.product_id
		WHERE o.customer_id = ?
		ORDER BY o.order_date DESC, o.order_id DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var entries []domain.OrderEntry
	for rows.Next() {
		var (
			e    domain.OrderEntry
			desc sql.NullString
		)
		err := rows.Scan(
			&e.OrderID, &e.OrderDate,
			&e.Product.ID, &e.Product.Name, &e.Product.Price, &desc, &e.Product.Stock,
			&e.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		e.Product.Description = desc.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return entries, nil
}

func (m *MySQLAdapter) exists(ctx context.Context, query string, id int64) (bool, error) {
	var one int
	err := m.db.QueryRowContext(ctx, query, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("existence check: %w", err)
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p    domain.Product
		desc sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &desc, &p.Stock); err != nil {
		return domain.Product{}, err
	}
	p.Description = desc.String
	return p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func fkBlocked(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == erRowIsReferenced
}
