package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dekorhouse/internal/domain"
)

func line(price int64, modifier *int64, qty int) domain.CartLine {
	l := domain.CartLine{
		Product:  domain.Product{ID: price, Price: price},
		Quantity: qty,
	}
	if modifier != nil {
		l.Color = &domain.Color{ID: 1, PriceModifier: *modifier}
	}
	return l
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestUnitPriceAndLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		base     int64
		modifier int64
		qty      int
		unit     int64
		total    int64
	}{
		{"no modifier", 100000, 0, 1, 100000, 100000},
		{"positive modifier", 100000, 5000, 2, 105000, 210000},
		{"negative modifier", 100000, -20000, 3, 80000, 240000},
		{"free item", 0, 0, 4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := UnitPrice(tt.base, tt.modifier)
			assert.Equal(t, tt.unit, unit)
			assert.Equal(t, tt.total, LineTotal(unit, tt.qty))
		})
	}
}

func TestAggregateCart_SingleLineWithColor(t *testing.T) {
	summary := AggregateCart([]domain.CartLine{line(100000, int64Ptr(5000), 2)})

	assert.Len(t, summary.Items, 1)
	assert.Equal(t, int64(105000), summary.Items[0].UnitPrice)
	assert.Equal(t, int64(210000), summary.Items[0].Total)
	assert.Equal(t, int64(210000), summary.Subtotal)
	assert.Equal(t, 2, summary.ItemCount)
}

func TestAggregateCart_SumsLines(t *testing.T) {
	lines := []domain.CartLine{
		line(100000, nil, 1),
		line(45000, int64Ptr(-5000), 3),
		line(12000, int64Ptr(0), 2),
	}

	summary := AggregateCart(lines)

	var wantSubtotal int64
	wantCount := 0
	for _, item := range summary.Items {
		wantSubtotal += item.Total
		wantCount += item.Line.Quantity
	}
	assert.Equal(t, wantSubtotal, summary.Subtotal)
	assert.Equal(t, int64(100000+120000+24000), summary.Subtotal)
	assert.Equal(t, wantCount, summary.ItemCount)
	assert.Equal(t, 6, summary.ItemCount)
}

func TestAggregateCart_Empty(t *testing.T) {
	summary := AggregateCart(nil)

	assert.Equal(t, int64(0), summary.Subtotal)
	assert.Equal(t, 0, summary.ItemCount)
	assert.NotNil(t, summary.Items)
	assert.Empty(t, summary.Items)
}

func TestAggregateCart_Repeatable(t *testing.T) {
	lines := []domain.CartLine{line(30000, int64Ptr(2500), 4), line(9900, nil, 1)}

	first := AggregateCart(lines)
	second := AggregateCart(lines)

	assert.Equal(t, first.Subtotal, second.Subtotal)
	assert.Equal(t, first.ItemCount, second.ItemCount)
}

func TestDeliveryFee(t *testing.T) {
	tests := []struct {
		name         string
		subtotal     int64
		deliveryType domain.DeliveryType
		want         int64
	}{
		{"pickup below threshold", 1000, domain.DeliveryTypePickup, 0},
		{"pickup above threshold", 900000, domain.DeliveryTypePickup, 0},
		{"delivery below threshold", 210000, domain.DeliveryTypeDelivery, 25000},
		{"delivery at threshold", 500000, domain.DeliveryTypeDelivery, 0},
		{"delivery above threshold", 1050000, domain.DeliveryTypeDelivery, 0},
		{"delivery just below threshold", 499999, domain.DeliveryTypeDelivery, 25000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeliveryFee(tt.subtotal, tt.deliveryType, 500000, 25000))
		})
	}
}

func TestFeePolicy_UsesConfiguredValues(t *testing.T) {
	policy := FeePolicy{FreeThreshold: 100, FlatFee: 7}

	assert.Equal(t, int64(7), policy.Fee(99, domain.DeliveryTypeDelivery))
	assert.Equal(t, int64(0), policy.Fee(100, domain.DeliveryTypeDelivery))
	assert.Equal(t, DefaultFeePolicy().Fee(210000, domain.DeliveryTypeDelivery), int64(25000))
}
