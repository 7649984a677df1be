package errors

import (
	"errors"
	"fmt"
	"strings"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nfe *NotFoundError
	if errors.As(err, &nfe) {
		return nfe, true
	}
	return nil, false
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func IsForbiddenError(err error) (*ForbiddenError, bool) {
	var fe *ForbiddenError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

type DeadlockError struct {
	Message string
}

func (e *DeadlockError) Error() string {
	return e.Message
}

func NewDeadlockError(message string) *DeadlockError {
	return &DeadlockError{Message: message}
}

func IsDeadlockError(err error) (*DeadlockError, bool) {
	var de *DeadlockError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}

// Checkout errors. All of them except PersistenceError and
// NotificationError can be fixed by the customer.

type EmptyCartError struct{}

func (e *EmptyCartError) Error() string {
	return "cart is empty"
}

func NewEmptyCartError() *EmptyCartError {
	return &EmptyCartError{}
}

func IsEmptyCartError(err error) (*EmptyCartError, bool) {
	var ece *EmptyCartError
	if errors.As(err, &ece) {
		return ece, true
	}
	return nil, false
}

type ProductNotFoundError struct {
	ProductIDs []int64
}

func (e *ProductNotFoundError) Error() string {
	return "products not found: " + joinIDs(e.ProductIDs)
}

func NewProductNotFoundError(ids ...int64) *ProductNotFoundError {
	return &ProductNotFoundError{ProductIDs: ids}
}

func IsProductNotFoundError(err error) (*ProductNotFoundError, bool) {
	var pnf *ProductNotFoundError
	if errors.As(err, &pnf) {
		return pnf, true
	}
	return nil, false
}

type ProductInactiveError struct {
	ProductIDs []int64
}

func (e *ProductInactiveError) Error() string {
	return "products no longer available: " + joinIDs(e.ProductIDs)
}

func NewProductInactiveError(ids ...int64) *ProductInactiveError {
	return &ProductInactiveError{ProductIDs: ids}
}

func IsProductInactiveError(err error) (*ProductInactiveError, bool) {
	var pie *ProductInactiveError
	if errors.As(err, &pie) {
		return pie, true
	}
	return nil, false
}

type MissingDeliveryTargetError struct{}

func (e *MissingDeliveryTargetError) Error() string {
	return "delivery requires an address or a location"
}

func NewMissingDeliveryTargetError() *MissingDeliveryTargetError {
	return &MissingDeliveryTargetError{}
}

func IsMissingDeliveryTargetError(err error) (*MissingDeliveryTargetError, bool) {
	var mdt *MissingDeliveryTargetError
	if errors.As(err, &mdt) {
		return mdt, true
	}
	return nil, false
}

type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

func NewPersistenceError(op string, cause error) *PersistenceError {
	return &PersistenceError{Op: op, Cause: cause}
}

func IsPersistenceError(err error) (*PersistenceError, bool) {
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

type NotificationError struct {
	OrderNumber string
	Cause       error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notifying about order %s: %v", e.OrderNumber, e.Cause)
}

func (e *NotificationError) Unwrap() error {
	return e.Cause
}

func NewNotificationError(orderNumber string, cause error) *NotificationError {
	return &NotificationError{OrderNumber: orderNumber, Cause: cause}
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}
