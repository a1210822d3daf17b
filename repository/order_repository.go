package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"dropxcult-admin/db"
	"dropxcult-admin/models"
)

// OrderRepository handles database operations for orders
// Implements OrderRepositoryInterface
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// List returns every order with its buyer's name and email, newest first
func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	query := `
		SELECT o.id, o.order_items, o.shipping_address, o.total_price,
		       o.is_paid, o.paid_at, o.is_delivered, o.delivered_at, o.created_at,
		       u.id, u.name, u.email
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Errorf("❌ Error listing orders: %v", err)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var (
			o                   models.Order
			items, address      []byte
			paidAt, deliveredAt sql.NullTime
			userID, name, mail  sql.NullString
		)
		if err := rows.Scan(&o.ID, &items, &address, &o.TotalPrice,
			&o.IsPaid, &paidAt, &o.IsDelivered, &deliveredAt, &o.CreatedAt,
			&userID, &name, &mail); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		o.OrderItems = []models.OrderItem{}
		if len(items) > 0 {
			if err := json.Unmarshal(items, &o.OrderItems); err != nil {
				return nil, fmt.Errorf("order %s items: %w", o.ID, err)
			}
		}
		if len(address) > 0 {
			if err := json.Unmarshal(address, &o.ShippingAddress); err != nil {
				return nil, fmt.Errorf("order %s shipping address: %w", o.ID, err)
			}
		}
		if paidAt.Valid {
			o.PaidAt = &paidAt.Time
		}
		if deliveredAt.Valid {
			o.DeliveredAt = &deliveredAt.Time
		}
		if userID.Valid {
			o.User = &models.UserSummary{ID: userID.String, Name: name.String, Email: mail.String}
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	log.Debugf("🧾 Listed %d orders", len(orders))
	return orders, nil
}

// Count returns the number of orders
func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, "orders")
}

// SumPaidRevenue returns the total price of paid orders, 0 when there are none
func (r *OrderRepository) SumPaidRevenue(ctx context.Context) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE is_paid = TRUE`
	if err := db.DB.QueryRowContext(ctx, query).Scan(&total); err != nil {
		log.Errorf("❌ Error summing revenue: %v", err)
		return 0, fmt.Errorf("failed to sum paid revenue: %w", err)
	}
	return total, nil
}
