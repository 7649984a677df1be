package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"dekorhouse/internal/domain"
	apperrors "dekorhouse/internal/errors"
	"dekorhouse/internal/infrastructure/mysql"
)

// maxNumberAttempts bounds how many order numbers are tried when the
// generated one is already taken.
const maxNumberAttempts = 5

type TxRunner interface {
	InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type CartRepository interface {
	ListByUserForUpdate(ctx context.Context, tx *sqlx.Tx, userID int64) ([]domain.CartItem, error)
	ClearTx(ctx context.Context, tx *sqlx.Tx, userID int64) error
}

type ProductRepository interface {
	FindByIDsTx(ctx context.Context, q sqlx.QueryerContext, ids []int64) ([]domain.Product, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sqlx.Tx, order *domain.Order) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, tx *sqlx.Tx, order *domain.Order) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error)
}

type OrderItemRepository interface {
	InsertBatch(ctx context.Context, tx *sqlx.Tx, items []domain.OrderItem) error
}

type CheckoutRequest struct {
	UserID    int64
	Selection DeliverySelection
	Customer  CustomerInfo
}

// CheckoutService turns a user's cart into an order. Reading the cart,
// writing the order with its items and clearing the cart happen in one
// transaction.
type CheckoutService struct {
	db           TxRunner
	cartRepo     CartRepository
	productRepo  ProductRepository
	orderRepo    OrderRepository
	itemRepo     OrderItemRepository
	materializer *Materializer
	numbers      *NumberGenerator
	logger       *zap.Logger
	txTimeout    time.Duration
	now          func() time.Time
}

func NewCheckoutService(
	db TxRunner,
	cartRepo CartRepository,
	productRepo ProductRepository,
	orderRepo OrderRepository,
	itemRepo OrderItemRepository,
	materializer *Materializer,
	numbers *NumberGenerator,
	logger *zap.Logger,
	txTimeout time.Duration,
) *CheckoutService {
	return &CheckoutService{
		db:           db,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		materializer: materializer,
		numbers:      numbers,
		logger:       logger,
		txTimeout:    txTimeout,
		now:          time.Now,
	}
}

func (s *CheckoutService) PlaceOrder(ctx context.Context, req CheckoutRequest) (*domain.Order, error) {
	if err := ValidateSelection(req.Selection); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	var order *domain.Order
	err := s.db.InTx(txCtx, func(tx *sqlx.Tx) error {
		items, err := s.cartRepo.ListByUserForUpdate(txCtx, tx, req.UserID)
		if err != nil {
			return apperrors.NewPersistenceError("loading cart", err)
		}
		if len(items) == 0 {
			return apperrors.NewEmptyCartError()
		}

		products, err := s.productRepo.FindByIDsTx(txCtx, tx, domain.ProductIDs(items))
		if err != nil {
			return apperrors.NewPersistenceError("loading products", err)
		}

		order, err = s.materializer.Materialize(req.UserID, items, products, req.Selection, req.Customer, s.numbers.Next(), s.now().UTC())
		if err != nil {
			return err
		}

		if err := s.insertOrder(txCtx, tx, order); err != nil {
			return err
		}

		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}
		if err := s.itemRepo.InsertBatch(txCtx, tx, order.Items); err != nil {
			return apperrors.NewPersistenceError("inserting order items", err)
		}

		if err := s.cartRepo.ClearTx(txCtx, tx, req.UserID); err != nil {
			return apperrors.NewPersistenceError("clearing cart", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("checkout failed", zap.Int64("userId", req.UserID), zap.Error(err))
		return nil, wrapStorageError("placing order", err)
	}

	s.logger.Info("order placed",
		zap.Int64("orderId", order.ID),
		zap.String("orderNumber", order.OrderNumber),
		zap.Int64("userId", req.UserID),
		zap.Int("itemCount", order.ItemCount()),
		zap.Int64("total", order.Total),
	)
	return order, nil
}

// insertOrder writes the header, drawing a fresh number whenever the
// current one is already taken.
func (s *CheckoutService) insertOrder(ctx context.Context, tx *sqlx.Tx, order *domain.Order) error {
	var err error
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		var id int64
		id, err = s.orderRepo.Insert(ctx, tx, order)
		if err == nil {
			order.ID = id
			return nil
		}
		if !mysql.IsDuplicateEntry(err) {
			return apperrors.NewPersistenceError("inserting order", err)
		}

		s.logger.Warn("order number taken, regenerating", zap.String("orderNumber", order.OrderNumber), zap.Int("attempt", attempt))
		order.OrderNumber = s.numbers.Next()
	}
	return apperrors.NewPersistenceError("allocating order number", err)
}

// wrapStorageError leaves domain errors untouched and wraps anything else
// coming from the transaction runner.
func wrapStorageError(op string, err error) error {
	if isDomainError(err) {
		return err
	}
	if _, ok := apperrors.IsPersistenceError(err); ok {
		return err
	}
	return apperrors.NewPersistenceError(op, err)
}

func isDomainError(err error) bool {
	if _, ok := apperrors.IsEmptyCartError(err); ok {
		return true
	}
	if _, ok := apperrors.IsMissingDeliveryTargetError(err); ok {
		return true
	}
	if _, ok := apperrors.IsProductNotFoundError(err); ok {
		return true
	}
	if _, ok := apperrors.IsProductInactiveError(err); ok {
		return true
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		return true
	}
	if _, ok := apperrors.IsConflictError(err); ok {
		return true
	}
	if _, ok := apperrors.IsForbiddenError(err); ok {
		return true
	}
	_, ok := apperrors.IsValidationError(err)
	return ok
}
