package orders

import (
	"context"
	"database/sql"

	"github.com/aguaviva/storefront/internal/domain"
	"github.com/aguaviva/storefront/internal/pricing"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateWithItems persists an order and its line-item snapshots in one
// transaction; a failure partway leaves nothing behind. Item subtotals are
// recomputed from unit price and quantity at insert time rather than trusted
// from the caller.
func (r *OrderRepository) CreateWithItems(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer_name, phone, shipping_address, message,
			subtotal, shipping, total, status, token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, order.CustomerName, order.Phone, order.ShippingAddress, order.Message,
		order.Subtotal, order.Shipping, order.Total, order.Status, order.Token,
		order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		item.Subtotal = pricing.LineSubtotal(item.UnitPrice, item.Quantity)

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, item.OrderID, item.ProductID, item.ProductName, item.UnitPrice,
			item.Quantity, item.Subtotal,
		).Scan(&item.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindByIDAndToken loads an order only when both the id and the access token
// match. Wrong id and wrong token are indistinguishable to the caller: both
// come back as (nil, nil).
func (r *OrderRepository) FindByIDAndToken(ctx context.Context, id int64, token string) (*domain.Order, error) {
	order := &domain.Order{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_name, phone, shipping_address, message,
			subtotal, shipping, total, status, token, created_at
		FROM orders
		WHERE id = $1 AND token = $2
	`, id, token).Scan(
		&order.ID, &order.CustomerName, &order.Phone, &order.ShippingAddress,
		&order.Message, &order.Subtotal, &order.Shipping, &order.Total,
		&order.Status, &order.Token, &order.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, unit_price, quantity, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, order.ID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.ProductName, &item.UnitPrice, &item.Quantity, &item.Subtotal); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return order, nil
}
