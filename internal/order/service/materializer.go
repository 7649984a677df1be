package service

import (
	"strings"
	"time"

	"dekorhouse/internal/domain"
	apperrors "dekorhouse/internal/errors"
	"dekorhouse/internal/pricing"
)

type DeliverySelection struct {
	Type      domain.DeliveryType
	Address   *string
	Latitude  *float64
	Longitude *float64
}

type CustomerInfo struct {
	Name          string
	Phone         string
	Note          *string
	PaymentMethod domain.PaymentMethod
	Lang          string
}

// ValidateSelection rejects a DELIVERY selection that has neither a
// non-blank address nor a full coordinate pair.
func ValidateSelection(sel DeliverySelection) error {
	if sel.Type != domain.DeliveryTypeDelivery {
		return nil
	}
	if sel.Address != nil && strings.TrimSpace(*sel.Address) != "" {
		return nil
	}
	if sel.Latitude != nil && sel.Longitude != nil {
		return nil
	}
	return apperrors.NewMissingDeliveryTargetError()
}

// Materializer turns a cart snapshot into an unsaved PENDING order.
type Materializer struct {
	fees pricing.FeePolicy
}

func NewMaterializer(fees pricing.FeePolicy) *Materializer {
	return &Materializer{fees: fees}
}

func (m *Materializer) Materialize(
	userID int64,
	items []domain.CartItem,
	products []domain.Product,
	sel DeliverySelection,
	customer CustomerInfo,
	orderNumber string,
	now time.Time,
) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, apperrors.NewEmptyCartError()
	}

	if err := ValidateSelection(sel); err != nil {
		return nil, err
	}

	lines, missing, inactive := domain.ResolveCartLines(items, products)
	if len(missing) > 0 {
		return nil, apperrors.NewProductNotFoundError(missing...)
	}
	if len(inactive) > 0 {
		return nil, apperrors.NewProductInactiveError(inactive...)
	}

	summary := pricing.AggregateCart(lines)
	deliveryFee := m.fees.Fee(summary.Subtotal, sel.Type)
	var discount int64

	order := &domain.Order{
		OrderNumber:   orderNumber,
		UserID:        userID,
		Status:        domain.OrderStatusPending,
		Subtotal:      summary.Subtotal,
		DeliveryFee:   deliveryFee,
		Discount:      discount,
		Total:         summary.Subtotal + deliveryFee - discount,
		DeliveryType:  sel.Type,
		Address:       trimmed(sel.Address),
		Latitude:      copyPtr(sel.Latitude),
		Longitude:     copyPtr(sel.Longitude),
		CustomerName:  strings.TrimSpace(customer.Name),
		CustomerPhone: strings.TrimSpace(customer.Phone),
		Note:          trimmed(customer.Note),
		PaymentMethod: customer.PaymentMethod,
		CreatedAt:     now,
		Items:         make([]domain.OrderItem, 0, len(summary.Items)),
	}

	for _, line := range summary.Items {
		order.Items = append(order.Items, freeze(line, customer.Lang))
	}

	return order, nil
}

// freeze copies everything the order needs to display a line so later
// catalog edits cannot reach it.
func freeze(line pricing.LineSummary, lang string) domain.OrderItem {
	productID := line.Line.Product.ID

	item := domain.OrderItem{
		ProductID:    &productID,
		ProductName:  line.Line.Product.Name(lang),
		ProductCode:  line.Line.Product.Code,
		ProductImage: copyPtr(line.Line.Product.MainImage),
		UnitPrice:    line.UnitPrice,
		Quantity:     line.Line.Quantity,
		Total:        line.Total,
	}
	if line.Line.Color != nil {
		colorName := line.Line.Color.Name(lang)
		item.ColorName = &colorName
	}
	return item
}

func copyPtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
