package services

import (
	"context"
	"errors"
	"fmt"

	"chefboard/db"
	"chefboard/models"

	"github.com/jackc/pgx/v5"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrIllegalTransition = errors.New("illegal status transition")
)

// ListOrders returns the seller's orders, newest first, with their items.
func ListOrders(ctx context.Context, sellerID string) ([]models.Order, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, status, menu_date::text, customer_name, delivery_method,
			COALESCE(address, ''), total_cents, created_at
		FROM orders
		WHERE seller_id = $1
		ORDER BY created_at DESC, id DESC`,
		sellerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	index := map[int64]int{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(
			&o.ID, &o.Status, &o.Date, &o.CustomerName, &o.DeliveryMethod,
			&o.Address, &o.TotalCents, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		o.Items = []models.OrderItem{}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []models.Order{}, nil
	}

	itemRows, err := db.Pool.Query(ctx, `
		SELECT oi.order_id, oi.menu_item_id, oi.name, oi.quantity, oi.price_cents
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.seller_id = $1
		ORDER BY oi.order_id, oi.menu_item_id`,
		sellerID,
	)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var orderID int64
		var it models.OrderItem
		if err := itemRows.Scan(&orderID, &it.MenuItemID, &it.Name, &it.Quantity, &it.PriceCents); err != nil {
			return nil, err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return orders, itemRows.Err()
}

// UpdateOrderStatus applies one status transition. The current status is
// read inside a transaction, the transition table is checked, and the update
// is compare-and-swapped on the old status so a concurrent change loses
// cleanly. Every change is appended to order_status_history.
func UpdateOrderStatus(ctx context.Context, sellerID string, orderID int64, newStatus string) (*models.Order, error) {
	if !models.ValidOrderStatus(newStatus) {
		return nil, fmt.Errorf("invalid status: %s", newStatus)
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var fromStatus string
	err = tx.QueryRow(ctx, `
		SELECT status FROM orders WHERE id = $1 AND seller_id = $2`,
		orderID, sellerID,
	).Scan(&fromStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !models.ValidTransition(fromStatus, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, fromStatus, newStatus)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE orders SET status = $1, updated_at = now()
		WHERE id = $2 AND seller_id = $3 AND status = $4`,
		newStatus, orderID, sellerID, fromStatus,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		// Status moved under us between read and write.
		return nil, fmt.Errorf("%w: order %d changed concurrently", ErrIllegalTransition, orderID)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO order_status_history (order_id, from_status, to_status)
		VALUES ($1, $2, $3)`,
		orderID, fromStatus, newStatus,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return GetOrder(ctx, sellerID, orderID)
}

func GetOrder(ctx context.Context, sellerID string, orderID int64) (*models.Order, error) {
	var o models.Order
	err := db.Pool.QueryRow(ctx, `
		SELECT id, status, menu_date::text, customer_name, delivery_method,
			COALESCE(address, ''), total_cents, created_at
		FROM orders WHERE id = $1 AND seller_id = $2`,
		orderID, sellerID,
	).Scan(
		&o.ID, &o.Status, &o.Date, &o.CustomerName, &o.DeliveryMethod,
		&o.Address, &o.TotalCents, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	rows, err := db.Pool.Query(ctx, `
		SELECT menu_item_id, name, quantity, price_cents
		FROM order_items WHERE order_id = $1 ORDER BY menu_item_id`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	o.Items = []models.OrderItem{}
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.MenuItemID, &it.Name, &it.Quantity, &it.PriceCents); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	return &o, rows.Err()
}

// CreateOrder inserts a new order in status placed. Checkout lives outside
// this system; this exists for the checkout collaborator and for tests.
func CreateOrder(ctx context.Context, sellerID string, input models.CreateOrderInput) (*models.Order, error) {
	if input.DeliveryMethod != models.DeliveryMethodDelivery && input.DeliveryMethod != models.DeliveryMethodPickup {
		return nil, fmt.Errorf("invalid delivery method: %s", input.DeliveryMethod)
	}
	if input.DeliveryMethod == models.DeliveryMethodDelivery && input.Address == "" {
		return nil, fmt.Errorf("address is required for delivery")
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("order has no items")
	}

	var total int64
	for _, it := range input.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be > 0 for %s", it.Name)
		}
		total += it.PriceCents * int64(it.Quantity)
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var addr *string
	if input.Address != "" {
		addr = &input.Address
	}
	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (seller_id, status, menu_date, customer_name, delivery_method, address, total_cents)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7)
		RETURNING id`,
		sellerID, models.OrderStatusPlaced, input.Date, input.CustomerName,
		input.DeliveryMethod, addr, total,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	for _, it := range input.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, name, quantity, price_cents)
			VALUES ($1, $2, $3, $4, $5)`,
			id, it.MenuItemID, it.Name, it.Quantity, it.PriceCents,
		); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return GetOrder(ctx, sellerID, id)
}
