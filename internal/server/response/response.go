// Package response writes JSON bodies and maps application errors to HTTP
// status codes for every controller.
package response

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"dekorhouse/internal/dto"
	apperrors "dekorhouse/internal/errors"
)

func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func WriteValidationError(w http.ResponseWriter, traceID, message string, logger *zap.Logger, details ...apperrors.ValidationDetail) {
	WriteJSON(w, http.StatusBadRequest, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    http.StatusBadRequest,
		Code:      "VALIDATION_ERROR",
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}, logger)
}

// WriteError maps err to a status code. Unknown errors are logged and
// reported as a generic internal error.
func WriteError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	resp := dto.ErrorResponse{
		TraceID:   traceID,
		Message:   err.Error(),
		Timestamp: time.Now().UTC(),
	}

	if ve, ok := apperrors.IsValidationError(err); ok {
		resp.Status, resp.Code, resp.Details = http.StatusBadRequest, "VALIDATION_ERROR", ve.Details
	} else if _, ok := apperrors.IsEmptyCartError(err); ok {
		resp.Status, resp.Code = http.StatusUnprocessableEntity, "EMPTY_CART"
	} else if _, ok := apperrors.IsMissingDeliveryTargetError(err); ok {
		resp.Status, resp.Code = http.StatusUnprocessableEntity, "MISSING_DELIVERY_TARGET"
	} else if pnf, ok := apperrors.IsProductNotFoundError(err); ok {
		resp.Status, resp.Code, resp.ProductIDs = http.StatusUnprocessableEntity, "PRODUCT_NOT_FOUND", pnf.ProductIDs
	} else if pie, ok := apperrors.IsProductInactiveError(err); ok {
		resp.Status, resp.Code, resp.ProductIDs = http.StatusUnprocessableEntity, "PRODUCT_INACTIVE", pie.ProductIDs
	} else if _, ok := apperrors.IsNotFoundError(err); ok {
		resp.Status, resp.Code = http.StatusNotFound, "NOT_FOUND"
	} else if _, ok := apperrors.IsConflictError(err); ok {
		resp.Status, resp.Code = http.StatusConflict, "CONFLICT"
	} else if _, ok := apperrors.IsForbiddenError(err); ok {
		resp.Status, resp.Code = http.StatusForbidden, "FORBIDDEN"
	} else if _, ok := apperrors.IsDeadlockError(err); ok {
		resp.Status, resp.Code = http.StatusConflict, "DEADLOCK"
	} else {
		logger.Error("unexpected error", zap.String("traceId", traceID), zap.Error(err))
		resp.Status, resp.Code, resp.Message = http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred"
	}

	WriteJSON(w, resp.Status, resp, logger)
}
