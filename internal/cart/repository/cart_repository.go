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

const cartItemColumns = `id, user_id, product_id, color_id, quantity, created_at, updated_at`

type MySQLCartRepository struct {
	db *sqlx.DB
}

func NewMySQLCartRepository(db *sqlx.DB) *MySQLCartRepository {
	return &MySQLCartRepository{db: db}
}

func (r *MySQLCartRepository) ListByUser(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE user_id = ? ORDER BY id`

	var items []domain.CartItem
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("querying cart items: %w", err)
	}
	return items, nil
}

// ListByUserForUpdate locks the user's cart lines until tx ends, so two
// concurrent checkouts of the same cart serialize.
func (r *MySQLCartRepository) ListByUserForUpdate(ctx context.Context, tx *sqlx.Tx, userID int64) ([]domain.CartItem, error) {
	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE user_id = ? ORDER BY id FOR UPDATE`

	var items []domain.CartItem
	if err := tx.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("locking cart items: %w", err)
	}
	return items, nil
}

func (r *MySQLCartRepository) FindLineForUpdate(ctx context.Context, tx *sqlx.Tx, userID, productID int64, colorID *int64) (*domain.CartItem, error) {
	query := `SELECT ` + cartItemColumns + `
		FROM cart_items
		WHERE user_id = ? AND product_id = ? AND color_id <=> ?
		LIMIT 1
		FOR UPDATE`

	var item domain.CartItem
	err := tx.GetContext(ctx, &item, query, userID, productID, colorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying cart line: %w", err)
	}
	return &item, nil
}

func (r *MySQLCartRepository) Insert(ctx context.Context, tx *sqlx.Tx, item domain.CartItem) (int64, error) {
	query := `INSERT INTO cart_items (user_id, product_id, color_id, quantity) VALUES (?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, item.UserID, item.ProductID, item.ColorID, item.Quantity)
	if err != nil {
		return 0, fmt.Errorf("inserting cart item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}
	return id, nil
}

func (r *MySQLCartRepository) SetQuantity(ctx context.Context, tx *sqlx.Tx, userID, itemID int64, quantity int) error {
	return r.setQuantity(ctx, tx, userID, itemID, quantity)
}

func (r *MySQLCartRepository) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	return r.setQuantity(ctx, r.db, userID, itemID, quantity)
}

func (r *MySQLCartRepository) setQuantity(ctx context.Context, exec sqlx.ExecerContext, userID, itemID int64, quantity int) error {
	query := `UPDATE cart_items SET quantity = ? WHERE id = ? AND user_id = ?`

	result, err := exec.ExecContext(ctx, query, quantity, itemID, userID)
	if err != nil {
		return fmt.Errorf("updating cart item quantity: %w", err)
	}
	return requireAffected(result, itemID)
}

func (r *MySQLCartRepository) Delete(ctx context.Context, userID, itemID int64) error {
	query := `DELETE FROM cart_items WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, itemID, userID)
	if err != nil {
		return fmt.Errorf("deleting cart item: %w", err)
	}
	return requireAffected(result, itemID)
}

func (r *MySQLCartRepository) Clear(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clearing cart: %w", err)
	}
	return nil
}

func (r *MySQLCartRepository) ClearTx(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clearing cart: %w", err)
	}
	return nil
}

func requireAffected(result sql.Result, itemID int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("cart item with id %d not found", itemID))
	}
	return nil
}
