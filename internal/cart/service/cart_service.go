package service

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"dekorhouse/internal/domain"
	apperrors "dekorhouse/internal/errors"
	"dekorhouse/internal/pricing"
)

const MaxLineQuantity = 1000

type TxRunner interface {
	InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type CartRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.CartItem, error)
	FindLineForUpdate(ctx context.Context, tx *sqlx.Tx, userID, productID int64, colorID *int64) (*domain.CartItem, error)
	Insert(ctx context.Context, tx *sqlx.Tx, item domain.CartItem) (int64, error)
	SetQuantity(ctx context.Context, tx *sqlx.Tx, userID, itemID int64, quantity int) error
	UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) error
	Delete(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

type ProductRepository interface {
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
}

// CartView is the priced cart. Unavailable holds the cart items that
// reference missing or deactivated products; they are not part of the totals.
type CartView struct {
	Summary     pricing.CartSummary
	Unavailable []domain.CartItem
}

type CartService struct {
	db          TxRunner
	cartRepo    CartRepository
	productRepo ProductRepository
	logger      *zap.Logger
}

func NewCartService(db TxRunner, cartRepo CartRepository, productRepo ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

func (s *CartService) View(ctx context.Context, userID int64) (*CartView, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Summary: pricing.AggregateCart(nil)}
	if len(items) == 0 {
		return view, nil
	}

	products, err := s.productRepo.FindByIDs(ctx, domain.ProductIDs(items))
	if err != nil {
		return nil, err
	}

	lines, missing, inactive := domain.ResolveCartLines(items, products)
	view.Summary = pricing.AggregateCart(lines)

	if len(missing)+len(inactive) > 0 {
		resolved := make(map[int64]struct{}, len(lines))
		for _, l := range lines {
			resolved[l.ItemID] = struct{}{}
		}
		for _, item := range items {
			if _, ok := resolved[item.ID]; !ok {
				view.Unavailable = append(view.Unavailable, item)
			}
		}
		s.logger.Debug("cart has unavailable lines", zap.Int64("userId", userID), zap.Int64s("missing", missing), zap.Int64s("inactive", inactive))
	}

	return view, nil
}

// AddItem puts a product into the cart. A line with the same product and
// color is merged by adding quantities.
func (s *CartService) AddItem(ctx context.Context, userID, productID int64, colorID *int64, quantity int) (int64, error) {
	if err := validateQuantity(quantity); err != nil {
		return 0, err
	}

	products, err := s.productRepo.FindByIDs(ctx, []int64{productID})
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		return 0, apperrors.NewProductNotFoundError(productID)
	}
	product := products[0]
	if !product.IsActive {
		return 0, apperrors.NewProductInactiveError(productID)
	}
	if colorID != nil {
		if _, ok := product.Color(*colorID); !ok {
			return 0, apperrors.NewValidationError("color does not belong to product", apperrors.ValidationDetail{
				Field:   "colorId",
				Message: "colorId must reference a color of the product",
			})
		}
	}

	var itemID int64
	err = s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		existing, err := s.cartRepo.FindLineForUpdate(ctx, tx, userID, productID, colorID)
		if err != nil {
			return err
		}

		if existing != nil {
			merged := existing.Quantity + quantity
			if err := validateQuantity(merged); err != nil {
				return err
			}
			itemID = existing.ID
			return s.cartRepo.SetQuantity(ctx, tx, userID, existing.ID, merged)
		}

		itemID, err = s.cartRepo.Insert(ctx, tx, domain.CartItem{
			UserID:    userID,
			ProductID: productID,
			ColorID:   colorID,
			Quantity:  quantity,
		})
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("cart item added", zap.Int64("userId", userID), zap.Int64("productId", productID), zap.Int("quantity", quantity))
	return itemID, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	return s.cartRepo.UpdateQuantity(ctx, userID, itemID, quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int64) error {
	return s.cartRepo.Delete(ctx, userID, itemID)
}

func (s *CartService) Clear(ctx context.Context, userID int64) error {
	return s.cartRepo.Clear(ctx, userID)
}

func validateQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxLineQuantity {
		return apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be between 1 and 1000",
		})
	}
	return nil
}
