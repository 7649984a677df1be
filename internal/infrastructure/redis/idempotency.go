package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	apperrors "dekorhouse/internal/errors"
)

const pendingValue = "pending"

// IdempotencyStore maps checkout idempotency keys to order ids. A key holds
// "pending" while its first attempt runs and the order id afterwards.
type IdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

func (s *IdempotencyStore) Reserve(ctx context.Context, userID int64, key string) (int64, error) {
	k := checkoutKey(userID, key)

	// the key can expire between SETNX and GET, hence the second round
	for i := 0; i < 2; i++ {
		reserved, err := s.rdb.SetNX(ctx, k, pendingValue, s.ttl).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to reserve idempotency key: %w", err)
		}
		if reserved {
			return 0, nil
		}

		val, err := s.rdb.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read idempotency key: %w", err)
		}

		if val == pendingValue {
			return 0, apperrors.NewConflictError("checkout with this idempotency key is already in progress")
		}

		orderID, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("corrupt idempotency value %q: %w", val, err)
		}
		return orderID, nil
	}

	return 0, apperrors.NewConflictError("checkout with this idempotency key is already in progress")
}

func (s *IdempotencyStore) Complete(ctx context.Context, userID int64, key string, orderID int64) error {
	if err := s.rdb.Set(ctx, checkoutKey(userID, key), orderID, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to complete idempotency key: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, userID int64, key string) error {
	if err := s.rdb.Del(ctx, checkoutKey(userID, key)).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}

func checkoutKey(userID int64, key string) string {
	return fmt.Sprintf("checkout:%d:%s", userID, key)
}
