package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"dekorhouse/internal/domain"
	apperrors "dekorhouse/internal/errors"
)

const orderColumns = `id, order_number, user_id, status, subtotal, delivery_fee, discount, total,
	delivery_type, address, latitude, longitude, customer_name, customer_phone, note,
	payment_method, created_at, confirmed_at, shipped_at, delivered_at, cancelled_at`

type MySQLOrderRepository struct {
	db    *sqlx.DB
	items *MySQLOrderItemRepository
}

func NewMySQLOrderRepository(db *sqlx.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{
		db:    db,
		items: NewMySQLOrderItemRepository(db),
	}
}

// Insert writes the order header and returns its id. A clashing order
// number surfaces as the driver's duplicate entry error.
func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sqlx.Tx, order *domain.Order) (int64, error) {
	query := `
		INSERT INTO orders (order_number, user_id, status, subtotal, delivery_fee, discount, total,
			delivery_type, address, latitude, longitude, customer_name, customer_phone, note,
			payment_method, created_at)
		VALUES (:order_number, :user_id, :status, :subtotal, :delivery_fee, :discount, :total,
			:delivery_type, :address, :latitude, :longitude, :customer_name, :customer_phone, :note,
			:payment_method, :created_at)`

	result, err := tx.NamedExecContext(ctx, query, order)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}
	return id, nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ?`

	var order domain.Order
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		return nil, notFoundOr(err, id)
	}

	items, err := r.items.FindByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

// FindByIDForUpdate locks the order header until tx ends. Items are not
// loaded.
func (r *MySQLOrderRepository) FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ? FOR UPDATE`

	var order domain.Order
	if err := tx.GetContext(ctx, &order, query, id); err != nil {
		return nil, notFoundOr(err, id)
	}
	return &order, nil
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, tx *sqlx.Tx, order *domain.Order) error {
	query := `
		UPDATE orders
		SET status = :status, confirmed_at = :confirmed_at, shipped_at = :shipped_at,
			delivered_at = :delivered_at, cancelled_at = :cancelled_at
		WHERE id = :id`

	result, err := tx.NamedExecContext(ctx, query, order)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", order.ID))
	}

	return nil
}

// ListByUser returns the user's orders newest first, items attached.
func (r *MySQLOrderRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`

	var orders []domain.Order
	if err := r.db.SelectContext(ctx, &orders, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	if len(orders) == 0 {
		return []domain.Order{}, nil
	}

	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	byOrder, err := r.items.FindByOrderIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}

	return orders, nil
}

func notFoundOr(err error, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	return fmt.Errorf("querying order by id: %w", err)
}
