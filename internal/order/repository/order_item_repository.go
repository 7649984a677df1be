package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"dekorhouse/internal/domain"
)

const orderItemColumns = `id, order_id, product_id, product_name, product_code, product_image,
	color_name, unit_price, quantity, total`

type MySQLOrderItemRepository struct {
	db *sqlx.DB
}

func NewMySQLOrderItemRepository(db *sqlx.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

// InsertBatch writes all items of one order in a single statement. Every
// item must already carry its OrderID.
func (r *MySQLOrderItemRepository) InsertBatch(ctx context.Context, tx *sqlx.Tx, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (order_id, product_id, product_name, product_code, product_image,
			color_name, unit_price, quantity, total)
		VALUES (:order_id, :product_id, :product_name, :product_code, :product_image,
			:color_name, :unit_price, :quantity, :total)`

	if _, err := tx.NamedExecContext(ctx, query, items); err != nil {
		return fmt.Errorf("inserting order items: %w", err)
	}
	return nil
}

func (r *MySQLOrderItemRepository) FindByOrderID(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE order_id = ? ORDER BY id`

	items := []domain.OrderItem{}
	if err := r.db.SelectContext(ctx, &items, query, orderID); err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	return items, nil
}

// FindByOrderIDs loads the items of several orders grouped by order id.
func (r *MySQLOrderItemRepository) FindByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error) {
	grouped := make(map[int64][]domain.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return grouped, nil
	}

	query, args, err := sqlx.In(`SELECT `+orderItemColumns+` FROM order_items WHERE order_id IN (?) ORDER BY order_id, id`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("building order items query: %w", err)
	}

	var items []domain.OrderItem
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}

	for _, item := range items {
		grouped[item.OrderID] = append(grouped[item.OrderID], item)
	}
	return grouped, nil
}
