package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"dekorhouse/internal/domain"
)

type MySQLRepository struct {
	db *sqlx.DB
}

func NewMySQLRepository(db *sqlx.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	return r.FindByIDsTx(ctx, r.db, ids)
}

// FindByIDsTx loads products with their colors using q, which is either the
// pool or an open transaction. Inactive products are returned as well so the
// caller can tell them apart from deleted ones.
func (r *MySQLRepository) FindByIDsTx(ctx context.Context, q sqlx.QueryerContext, ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, name_ru, name_uz, code, price, old_price, main_image,
		       is_active, created_at, updated_at
		FROM products
		WHERE id IN (?)
		ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("building products query: %w", err)
	}

	var products []domain.Product
	if err := sqlx.SelectContext(ctx, q, &products, query, args...); err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	if len(products) == 0 {
		return products, nil
	}

	colors, err := r.findColors(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Colors = colors[products[i].ID]
	}

	return products, nil
}

func (r *MySQLRepository) findColors(ctx context.Context, q sqlx.QueryerContext, productIDs []int64) (map[int64][]domain.Color, error) {
	query, args, err := sqlx.In(`
		SELECT id, product_id, name_ru, name_uz, hex_code, price_modifier, in_stock
		FROM colors
		WHERE product_id IN (?)
		ORDER BY id`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("building colors query: %w", err)
	}

	var colors []domain.Color
	if err := sqlx.SelectContext(ctx, q, &colors, query, args...); err != nil {
		return nil, fmt.Errorf("querying colors: %w", err)
	}

	byProduct := make(map[int64][]domain.Color, len(productIDs))
	for _, c := range colors {
		byProduct[c.ProductID] = append(byProduct[c.ProductID], c)
	}
	return byProduct, nil
}
