package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"dekorhouse/internal/auth"
	"dekorhouse/internal/domain"
	"dekorhouse/internal/dto"
	apperrors "dekorhouse/internal/errors"
	"dekorhouse/internal/order/service"
	"dekorhouse/internal/order/usecase"
	"dekorhouse/internal/server/response"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	maxIdempotencyKeyLen = 64
	maxCustomerNameLen   = 255
	maxNoteLen           = 1000
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

type CheckoutUseCase interface {
	Checkout(ctx context.Context, req service.CheckoutRequest, idempotencyKey string) (*usecase.CheckoutResult, error)
}

type OrderService interface {
	GetForUser(ctx context.Context, userID, orderID int64) (*domain.Order, error)
	ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error)
	CancelByCustomer(ctx context.Context, userID, orderID int64) (*domain.Order, error)
	ChangeStatus(ctx context.Context, orderID int64, next domain.OrderStatus) (*domain.Order, error)
}

type OrderController struct {
	checkout CheckoutUseCase
	orders   OrderService
	logger   *zap.Logger
}

func NewOrderController(checkout CheckoutUseCase, orders OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{
		checkout: checkout,
		orders:   orders,
		logger:   logger,
	}
}

func (c *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	traceID, user, logger, ok := c.begin(w, r)
	if !ok {
		return
	}

	var body dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.WriteValidationError(w, traceID, "invalid JSON body", logger, apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
	details := validateCheckout(body)
	if len(key) > maxIdempotencyKeyLen {
		details = append(details, apperrors.ValidationDetail{
			Field:   IdempotencyKeyHeader,
			Message: "idempotency key must be at most 64 characters",
		})
	}
	if len(details) > 0 {
		logger.Warn("checkout validation failed", zap.Int("detailCount", len(details)))
		response.WriteValidationError(w, traceID, "validation failed", logger, details...)
		return
	}

	req := service.CheckoutRequest{
		UserID: user.ID,
		Selection: service.DeliverySelection{
			Type:      domain.DeliveryType(body.DeliveryType),
			Address:   body.Address,
			Latitude:  body.Latitude,
			Longitude: body.Longitude,
		},
		Customer: service.CustomerInfo{
			Name:          body.CustomerName,
			Phone:         normalizePhone(body.CustomerPhone),
			Note:          body.Note,
			PaymentMethod: domain.PaymentMethod(body.PaymentMethod),
			Lang:          langOf(user),
		},
	}

	result, err := c.checkout.Checkout(r.Context(), req, key)
	if err != nil {
		response.WriteError(w, traceID, err, logger)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	response.WriteJSON(w, status, toOrderResponse(result.Order), logger)
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	traceID, user, logger, ok := c.begin(w, r)
	if !ok {
		return
	}

	limit, okLimit := queryInt(r, "limit", service.DefaultPageSize)
	offset, okOffset := queryInt(r, "offset", 0)
	if !okLimit || !okOffset {
		response.WriteValidationError(w, traceID, "invalid paging", logger, apperrors.ValidationDetail{
			Field:   "limit/offset",
			Message: "limit and offset must be non-negative integers",
		})
		return
	}

	orders, err := c.orders.ListForUser(r.Context(), user.ID, limit, offset)
	if err != nil {
		response.WriteError(w, traceID, err, logger)
		return
	}

	resp := dto.OrderListResponse{
		Orders: make([]dto.OrderResponse, 0, len(orders)),
		Limit:  limit,
		Offset: offset,
	}
	for i := range orders {
		resp.Orders = append(resp.Orders, toOrderResponse(&orders[i]))
	}
	response.WriteJSON(w, http.StatusOK, resp, logger)
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	traceID, user, logger, ok := c.begin(w, r)
	if !ok {
		return
	}

	orderID, ok := parseOrderID(w, r, traceID, logger)
	if !ok {
		return
	}

	order, err := c.orders.GetForUser(r.Context(), user.ID, orderID)
	if err != nil {
		response.WriteError(w, traceID, err, logger)
		return
	}

	response.WriteJSON(w, http.StatusOK, toOrderResponse(order), logger)
}

func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	traceID, user, logger, ok := c.begin(w, r)
	if !ok {
		return
	}

	orderID, ok := parseOrderID(w, r, traceID, logger)
	if !ok {
		return
	}

	order, err := c.orders.CancelByCustomer(r.Context(), user.ID, orderID)
	if err != nil {
		response.WriteError(w, traceID, err, logger)
		return
	}

	response.WriteJSON(w, http.StatusOK, toOrderResponse(order), logger)
}

// ChangeStatus is the admin endpoint. The router puts it behind the admin
// middleware.
func (c *OrderController) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	traceID, user, logger, ok := c.begin(w, r)
	if !ok {
		return
	}

	orderID, ok := parseOrderID(w, r, traceID, logger)
	if !ok {
		return
	}

	var body dto.ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.WriteValidationError(w, traceID, "invalid JSON body", logger, apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, err := c.orders.ChangeStatus(r.Context(), orderID, domain.OrderStatus(strings.ToUpper(strings.TrimSpace(body.Status))))
	if err != nil {
		response.WriteError(w, traceID, err, logger)
		return
	}

	logger.Info("admin changed order status", zap.Int64("adminId", user.ID), zap.Int64("orderId", orderID), zap.String("status", string(order.Status)))
	response.WriteJSON(w, http.StatusOK, toOrderResponse(order), logger)
}

func (c *OrderController) begin(w http.ResponseWriter, r *http.Request) (string, auth.User, *zap.Logger, bool) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, traceID, apperrors.NewForbiddenError("not authenticated"), logger)
		return traceID, auth.User{}, logger, false
	}
	return traceID, user, logger.With(zap.Int64("userId", user.ID)), true
}

func validateCheckout(body dto.CheckoutRequest) []apperrors.ValidationDetail {
	var details []apperrors.ValidationDetail

	name := strings.TrimSpace(body.CustomerName)
	if name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "customerName", Message: "customerName is required"})
	} else if len(name) > maxCustomerNameLen {
		details = append(details, apperrors.ValidationDetail{Field: "customerName", Message: "customerName must be at most 255 characters"})
	}

	if !phonePattern.MatchString(normalizePhone(body.CustomerPhone)) {
		details = append(details, apperrors.ValidationDetail{Field: "customerPhone", Message: "customerPhone must contain 7 to 15 digits"})
	}

	if body.Note != nil && len(*body.Note) > maxNoteLen {
		details = append(details, apperrors.ValidationDetail{Field: "note", Message: "note must be at most 1000 characters"})
	}

	if !domain.PaymentMethod(body.PaymentMethod).Valid() {
		details = append(details, apperrors.ValidationDetail{Field: "paymentMethod", Message: "paymentMethod must be one of CASH, CARD, PAYME, CLICK, UZUM"})
	}

	if !domain.DeliveryType(body.DeliveryType).Valid() {
		details = append(details, apperrors.ValidationDetail{Field: "deliveryType", Message: "deliveryType must be PICKUP or DELIVERY"})
	}

	if (body.Latitude == nil) != (body.Longitude == nil) {
		details = append(details, apperrors.ValidationDetail{Field: "latitude/longitude", Message: "latitude and longitude must be sent together"})
	}
	if body.Latitude != nil && (*body.Latitude < -90 || *body.Latitude > 90) {
		details = append(details, apperrors.ValidationDetail{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if body.Longitude != nil && (*body.Longitude < -180 || *body.Longitude > 180) {
		details = append(details, apperrors.ValidationDetail{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}

	return details
}

// normalizePhone drops the separators people type into phone numbers.
func normalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
}

func parseOrderID(w http.ResponseWriter, r *http.Request, traceID string, logger *zap.Logger) (int64, bool) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil || orderID <= 0 {
		response.WriteValidationError(w, traceID, "invalid orderId", logger, apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a positive integer",
		})
		return 0, false
	}
	return orderID, true
}

func queryInt(r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func langOf(user auth.User) string {
	if user.LanguageCode == domain.LangUz {
		return domain.LangUz
	}
	return domain.LangRu
}
