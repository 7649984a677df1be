package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"dekorhouse/internal/domain"
)

type mockTxRunner struct {
	calls int
}

func (m *mockTxRunner) InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	m.calls++
	return fn(nil)
}

type mockCartRepository struct {
	ListByUserForUpdateFunc func(ctx context.Context, tx *sqlx.Tx, userID int64) ([]domain.CartItem, error)
	ClearTxFunc             func(ctx context.Context, tx *sqlx.Tx, userID int64) error
}

func (m *mockCartRepository) ListByUserForUpdate(ctx context.Context, tx *sqlx.Tx, userID int64) ([]domain.CartItem, error) {
	return m.ListByUserForUpdateFunc(ctx, tx, userID)
}

func (m *mockCartRepository) ClearTx(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	return m.ClearTxFunc(ctx, tx, userID)
}

type mockProductRepository struct {
	FindByIDsTxFunc func(ctx context.Context, q sqlx.QueryerContext, ids []int64) ([]domain.Product, error)
}

func (m *mockProductRepository) FindByIDsTx(ctx context.Context, q sqlx.QueryerContext, ids []int64) ([]domain.Product, error) {
	return m.FindByIDsTxFunc(ctx, q, ids)
}

type mockOrderRepository struct {
	InsertFunc            func(ctx context.Context, tx *sqlx.Tx, order *domain.Order) (int64, error)
	FindByIDFunc          func(ctx context.Context, id int64) (*domain.Order, error)
	FindByIDForUpdateFunc func(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Order, error)
	UpdateStatusFunc      func(ctx context.Context, tx *sqlx.Tx, order *domain.Order) error
	ListByUserFunc        func(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error)
}

func (m *mockOrderRepository) Insert(ctx context.Context, tx *sqlx.Tx, order *domain.Order) (int64, error) {
	return m.InsertFunc(ctx, tx, order)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderRepository) FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Order, error) {
	return m.FindByIDForUpdateFunc(ctx, tx, id)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, tx *sqlx.Tx, order *domain.Order) error {
	return m.UpdateStatusFunc(ctx, tx, order)
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	return m.ListByUserFunc(ctx, userID, limit, offset)
}

type mockOrderItemRepository struct {
	InsertBatchFunc func(ctx context.Context, tx *sqlx.Tx, items []domain.OrderItem) error
}

func (m *mockOrderItemRepository) InsertBatch(ctx context.Context, tx *sqlx.Tx, items []domain.OrderItem) error {
	return m.InsertBatchFunc(ctx, tx, items)
}
