package usecase

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"dekorhouse/internal/domain"
	apperrors "dekorhouse/internal/errors"
	"dekorhouse/internal/infrastructure/mysql"
	"dekorhouse/internal/order/service"
)

type CheckoutService interface {
	PlaceOrder(ctx context.Context, req service.CheckoutRequest) (*domain.Order, error)
}

type OrderFinder interface {
	GetForUser(ctx context.Context, userID, orderID int64) (*domain.Order, error)
}

// IdempotencyStore remembers which order a checkout attempt produced.
type IdempotencyStore interface {
	// Reserve claims key for a new attempt and returns 0. When an earlier
	// attempt with the same key already produced an order, its id is
	// returned instead. An attempt still in flight yields a ConflictError.
	Reserve(ctx context.Context, userID int64, key string) (int64, error)
	Complete(ctx context.Context, userID int64, key string, orderID int64) error
	Release(ctx context.Context, userID int64, key string) error
}

type Notifier interface {
	NotifyOrderPlaced(ctx context.Context, order *domain.Order) error
}

type CheckoutResult struct {
	Order    *domain.Order
	Replayed bool
}

type CheckoutUseCase struct {
	checkout         CheckoutService
	orders           OrderFinder
	idempotency      IdempotencyStore
	notifier         Notifier
	logger           *zap.Logger
	maxRetryAttempts int
	notifyTimeout    time.Duration
	backoffs         []time.Duration
	notifications    sync.WaitGroup
}

func NewCheckoutUseCase(
	checkout CheckoutService,
	orders OrderFinder,
	idempotency IdempotencyStore,
	notifier Notifier,
	logger *zap.Logger,
	maxRetryAttempts int,
	notifyTimeout time.Duration,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		checkout:         checkout,
		orders:           orders,
		idempotency:      idempotency,
		notifier:         notifier,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
		notifyTimeout:    notifyTimeout,
		backoffs:         []time.Duration{100 * time.Millisecond, 200 * time.Millisecond},
	}
}

// Checkout places an order from the user's cart. A non-empty
// idempotencyKey makes repeated submissions return the first order.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, req service.CheckoutRequest, idempotencyKey string) (*CheckoutResult, error) {
	uc.logger.Info("checkout started",
		zap.Int64("userId", req.UserID),
		zap.String("deliveryType", string(req.Selection.Type)),
		zap.String("paymentMethod", string(req.Customer.PaymentMethod)),
	)

	if idempotencyKey == "" {
		order, err := uc.placeWithRetry(ctx, req)
		if err != nil {
			return nil, err
		}
		uc.notify(ctx, order)
		return &CheckoutResult{Order: order}, nil
	}

	existingID, err := uc.idempotency.Reserve(ctx, req.UserID, idempotencyKey)
	if err != nil {
		return nil, err
	}
	if existingID != 0 {
		uc.logger.Info("checkout replayed", zap.Int64("userId", req.UserID), zap.Int64("orderId", existingID))
		order, err := uc.orders.GetForUser(ctx, req.UserID, existingID)
		if err != nil {
			return nil, err
		}
		return &CheckoutResult{Order: order, Replayed: true}, nil
	}

	order, err := uc.placeWithRetry(ctx, req)
	if err != nil {
		if releaseErr := uc.idempotency.Release(context.WithoutCancel(ctx), req.UserID, idempotencyKey); releaseErr != nil {
			uc.logger.Warn("failed to release idempotency key", zap.Int64("userId", req.UserID), zap.Error(releaseErr))
		}
		return nil, err
	}

	if err := uc.idempotency.Complete(context.WithoutCancel(ctx), req.UserID, idempotencyKey, order.ID); err != nil {
		uc.logger.Warn("failed to record idempotency key", zap.Int64("userId", req.UserID), zap.Int64("orderId", order.ID), zap.Error(err))
	}

	uc.notify(ctx, order)
	return &CheckoutResult{Order: order}, nil
}

func (uc *CheckoutUseCase) placeWithRetry(ctx context.Context, req service.CheckoutRequest) (*domain.Order, error) {
	maxAttempts := uc.maxRetryAttempts

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		order, err := uc.checkout.PlaceOrder(ctx, req)
		if err == nil {
			return order, nil
		}

		if !mysql.IsDeadlock(err) {
			return nil, err
		}

		if attempt == maxAttempts {
			break
		}

		uc.logger.Warn("deadlock detected, retrying", zap.Int("attempt", attempt), zap.Int("maxAttempts", maxAttempts), zap.Int64("userId", req.UserID))
		if err := sleepCtx(ctx, uc.backoff(attempt)); err != nil {
			return nil, err
		}
	}

	return nil, apperrors.NewDeadlockError("max retries exceeded")
}

// backoff returns the pause after the given failed attempt with a ±20%
// jitter.
func (uc *CheckoutUseCase) backoff(attempt int) time.Duration {
	idx := attempt - 1
	if idx >= len(uc.backoffs) {
		idx = len(uc.backoffs) - 1
	}
	base := uc.backoffs[idx]
	return time.Duration(float64(base) * (0.8 + rand.Float64()*0.4))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// notify sends the order to the admin chat in the background. Failures
// are logged and never reach the customer.
func (uc *CheckoutUseCase) notify(ctx context.Context, order *domain.Order) {
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.notifyTimeout)

	uc.notifications.Add(1)
	go func() {
		defer uc.notifications.Done()
		defer cancel()

		if err := uc.notifier.NotifyOrderPlaced(notifyCtx, order); err != nil {
			uc.logger.Error("order notification failed",
				zap.String("orderNumber", order.OrderNumber),
				zap.Error(apperrors.NewNotificationError(order.OrderNumber, err)),
			)
		}
	}()
}

// Wait blocks until all pending notifications have finished.
func (uc *CheckoutUseCase) Wait() {
	uc.notifications.Wait()
}
