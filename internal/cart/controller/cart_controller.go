package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"dekorhouse/internal/auth"
	"dekorhouse/internal/cart/service"
	"dekorhouse/internal/domain"
	"dekorhouse/internal/dto"
	apperrors "dekorhouse/internal/errors"
	"dekorhouse/internal/pricing"
	"dekorhouse/internal/server/response"
)

type CartService interface {
	View(ctx context.Context, userID int64) (*service.CartView, error)
	AddItem(ctx context.Context, userID, productID int64, colorID *int64, quantity int) (int64, error)
	UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

type CartController struct {
	service CartService
	fees    pricing.FeePolicy
	logger  *zap.Logger
}

func NewCartController(service CartService, fees pricing.FeePolicy, logger *zap.Logger) *CartController {
	return &CartController{
		service: service,
		fees:    fees,
		logger:  logger,
	}
}

func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	traceID, user, logger, ok := c.begin(w, r)
	if !ok {
		return
	}

	view, err := c.service.View(r.Context(), user.ID)
	if err != nil {
		response.WriteError(w, traceID, err, logger)
		return
	}

	response.WriteJSON(w, http.StatusOK, c.toCartResponse(view, langOf(user)), logger)
}

func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	traceID, user, logger, ok := c.begin(w, r)
	if !ok {
		return
	}

	var req dto.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteValidationError(w, traceID, "invalid JSON body", logger, apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.ProductID <= 0 {
		response.WriteValidationError(w, traceID, "validation failed", logger, apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		})
		return
	}

	itemID, err := c.service.AddItem(r.Context(), user.ID, req.ProductID, req.ColorID, req.Quantity)
	if err != nil {
		response.WriteError(w, traceID, err, logger)
		return
	}

	response.WriteJSON(w, http.StatusCreated, dto.AddCartItemResponse{ItemID: itemID}, logger)
}

func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	traceID, user, logger, ok := c.begin(w, r)
	if !ok {
		return
	}

	itemID, ok := parseItemID(w, r, traceID, logger)
	if !ok {
		return
	}

	var req dto.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteValidationError(w, traceID, "invalid JSON body", logger, apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.service.UpdateQuantity(r.Context(), user.ID, itemID, req.Quantity); err != nil {
		response.WriteError(w, traceID, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	traceID, user, logger, ok := c.begin(w, r)
	if !ok {
		return
	}

	itemID, ok := parseItemID(w, r, traceID, logger)
	if !ok {
		return
	}

	if err := c.service.RemoveItem(r.Context(), user.ID, itemID); err != nil {
		response.WriteError(w, traceID, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	traceID, user, logger, ok := c.begin(w, r)
	if !ok {
		return
	}

	if err := c.service.Clear(r.Context(), user.ID); err != nil {
		response.WriteError(w, traceID, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *CartController) begin(w http.ResponseWriter, r *http.Request) (string, auth.User, *zap.Logger, bool) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, traceID, apperrors.NewForbiddenError("not authenticated"), logger)
		return traceID, auth.User{}, logger, false
	}
	return traceID, user, logger.With(zap.Int64("userId", user.ID)), true
}

func (c *CartController) toCartResponse(view *service.CartView, lang string) dto.CartResponse {
	items := make([]dto.CartLineDTO, 0, len(view.Summary.Items))
	for _, item := range view.Summary.Items {
		line := dto.CartLineDTO{
			ItemID:      item.Line.ItemID,
			ProductID:   item.Line.Product.ID,
			ProductName: item.Line.Product.Name(lang),
			ProductCode: item.Line.Product.Code,
			Image:       item.Line.Product.MainImage,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Line.Quantity,
			Total:       item.Total,
		}
		if item.Line.Color != nil {
			colorID := item.Line.Color.ID
			colorName := item.Line.Color.Name(lang)
			line.ColorID = &colorID
			line.ColorName = &colorName
		}
		items = append(items, line)
	}

	unavailable := make([]int64, 0, len(view.Unavailable))
	for _, item := range view.Unavailable {
		unavailable = append(unavailable, item.ID)
	}

	var deliveryFee int64
	if len(items) > 0 {
		deliveryFee = c.fees.Fee(view.Summary.Subtotal, domain.DeliveryTypeDelivery)
	}

	return dto.CartResponse{
		Items:                 items,
		ItemCount:             view.Summary.ItemCount,
		Subtotal:              view.Summary.Subtotal,
		DeliveryFee:           deliveryFee,
		FreeDeliveryThreshold: c.fees.FreeThreshold,
		UnavailableItemIDs:    unavailable,
	}
}

func parseItemID(w http.ResponseWriter, r *http.Request, traceID string, logger *zap.Logger) (int64, bool) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)
	if err != nil || itemID <= 0 {
		response.WriteValidationError(w, traceID, "invalid itemId", logger, apperrors.ValidationDetail{
			Field:   "itemId",
			Message: "itemId must be a positive integer",
		})
		return 0, false
	}
	return itemID, true
}

func langOf(user auth.User) string {
	if user.LanguageCode == domain.LangUz {
		return domain.LangUz
	}
	return domain.LangRu
}
