// Package pricing holds the money arithmetic shared by the cart view and
// checkout. Amounts are whole currency units; there is no minor unit.
package pricing

import "dekorhouse/internal/domain"

const (
	DefaultFreeDeliveryThreshold int64 = 500000
	DefaultDeliveryFee           int64 = 25000
)

type LineSummary struct {
	Line      domain.CartLine
	UnitPrice int64
	Total     int64
}

type CartSummary struct {
	Items     []LineSummary
	ItemCount int
	Subtotal  int64
}

func UnitPrice(basePrice, colorPriceModifier int64) int64 {
	return basePrice + colorPriceModifier
}

func LineTotal(unitPrice int64, quantity int) int64 {
	return unitPrice * int64(quantity)
}

// AggregateCart prices every line and sums the cart. An empty cart yields
// a zero summary.
func AggregateCart(lines []domain.CartLine) CartSummary {
	summary := CartSummary{Items: make([]LineSummary, 0, len(lines))}

	for _, line := range lines {
		var modifier int64
		if line.Color != nil {
			modifier = line.Color.PriceModifier
		}

		unit := UnitPrice(line.Product.Price, modifier)
		total := LineTotal(unit, line.Quantity)

		summary.Items = append(summary.Items, LineSummary{
			Line:      line,
			UnitPrice: unit,
			Total:     total,
		})
		summary.ItemCount += line.Quantity
		summary.Subtotal += total
	}

	return summary
}

func DeliveryFee(subtotal int64, deliveryType domain.DeliveryType, freeThreshold, flatFee int64) int64 {
	if deliveryType != domain.DeliveryTypeDelivery {
		return 0
	}
	if subtotal >= freeThreshold {
		return 0
	}
	return flatFee
}

// FeePolicy carries the configured delivery fee rule.
type FeePolicy struct {
	FreeThreshold int64
	FlatFee       int64
}

func DefaultFeePolicy() FeePolicy {
	return FeePolicy{
		FreeThreshold: DefaultFreeDeliveryThreshold,
		FlatFee:       DefaultDeliveryFee,
	}
}

func (p FeePolicy) Fee(subtotal int64, deliveryType domain.DeliveryType) int64 {
	return DeliveryFee(subtotal, deliveryType, p.FreeThreshold, p.FlatFee)
}
