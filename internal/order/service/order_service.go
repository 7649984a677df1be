package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"dekorhouse/internal/domain"
	apperrors "dekorhouse/internal/errors"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// OrderService serves order reads and status changes after checkout.
type OrderService struct {
	db        TxRunner
	orderRepo OrderRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewOrderService(db TxRunner, orderRepo OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		db:        db,
		orderRepo: orderRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// GetForUser returns the order only to its owner. Other users get the
// same NotFoundError as for a missing order.
func (s *OrderService) GetForUser(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, orderNotFound(orderID)
	}
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *OrderService) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.orderRepo.ListByUser(ctx, userID, limit, offset)
}

// ChangeStatus applies an administrative transition. Any move the state
// machine allows is accepted.
func (s *OrderService) ChangeStatus(ctx context.Context, orderID int64, next domain.OrderStatus) (*domain.Order, error) {
	if !next.Valid() {
		return nil, apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of PENDING, CONFIRMED, SHIPPED, DELIVERED, CANCELLED",
		})
	}

	return s.transition(ctx, orderID, func(order *domain.Order) error {
		return s.apply(order, next)
	})
}

// CancelByCustomer cancels the customer's own order while it is still
// PENDING. Confirmed orders can only be cancelled by an admin.
func (s *OrderService) CancelByCustomer(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	return s.transition(ctx, orderID, func(order *domain.Order) error {
		if order.UserID != userID {
			return orderNotFound(orderID)
		}
		if order.Status != domain.OrderStatusPending {
			return apperrors.NewConflictError(fmt.Sprintf("order in status %s can no longer be cancelled", order.Status))
		}
		return s.apply(order, domain.OrderStatusCancelled)
	})
}

func (s *OrderService) transition(ctx context.Context, orderID int64, change func(order *domain.Order) error) (*domain.Order, error) {
	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		order, err := s.orderRepo.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}

		previous := order.Status
		if err := change(order); err != nil {
			return err
		}

		if err := s.orderRepo.UpdateStatus(ctx, tx, order); err != nil {
			return err
		}

		s.logger.Info("order status changed",
			zap.Int64("orderId", order.ID),
			zap.String("orderNumber", order.OrderNumber),
			zap.String("from", string(previous)),
			zap.String("to", string(order.Status)),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *OrderService) apply(order *domain.Order, next domain.OrderStatus) error {
	if err := order.TransitionTo(next, s.now().UTC()); err != nil {
		return apperrors.NewConflictError(err.Error())
	}
	return nil
}

func orderNotFound(orderID int64) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", orderID))
}
