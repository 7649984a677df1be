package dto

import (
	"time"

	apperrors "dekorhouse/internal/errors"
)

type ErrorResponse struct {
	TraceID    string                       `json:"traceId"`
	Status     int                          `json:"status"`
	Code       string                       `json:"code"`
	Message    string                       `json:"message"`
	Details    []apperrors.ValidationDetail `json:"details,omitempty"`
	ProductIDs []int64                      `json:"productIds,omitempty"`
	Timestamp  time.Time                    `json:"timestamp"`
}
