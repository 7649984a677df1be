package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dekorhouse/internal/domain"
	apperrors "dekorhouse/internal/errors"
	"dekorhouse/internal/pricing"
)

var placedAt = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func int64Ptr(v int64) *int64 {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func float64Ptr(v float64) *float64 {
	return &v
}

func sofa() domain.Product {
	return domain.Product{
		ID:        1,
		NameRu:    "Диван Милан",
		NameUz:    "Milan divani",
		Code:      "SF-001",
		Price:     100000,
		MainImage: strPtr("https://cdn.example.com/sf-001.jpg"),
		IsActive:  true,
		Colors: []domain.Color{
			{ID: 10, ProductID: 1, NameRu: "Серый", NameUz: "Kulrang", PriceModifier: 5000},
		},
	}
}

func pickup() DeliverySelection {
	return DeliverySelection{Type: domain.DeliveryTypePickup}
}

func customer() CustomerInfo {
	return CustomerInfo{
		Name:          "Aziz",
		Phone:         "+998901234567",
		PaymentMethod: domain.PaymentCash,
		Lang:          domain.LangRu,
	}
}

func materialize(t *testing.T, items []domain.CartItem, products []domain.Product, sel DeliverySelection) (*domain.Order, error) {
	t.Helper()
	m := NewMaterializer(pricing.DefaultFeePolicy())
	return m.Materialize(42, items, products, sel, customer(), "DH-2025-13370042", placedAt)
}

func TestMaterialize_DeliveryBelowThreshold(t *testing.T) {
	items := []domain.CartItem{{ID: 1, ProductID: 1, ColorID: int64Ptr(10), Quantity: 2}}
	sel := DeliverySelection{Type: domain.DeliveryTypeDelivery, Address: strPtr("Tashkent, Amir Temur 1")}

	order, err := materialize(t, items, []domain.Product{sofa()}, sel)
	require.NoError(t, err)

	assert.Equal(t, int64(210000), order.Subtotal)
	assert.Equal(t, int64(25000), order.DeliveryFee)
	assert.Equal(t, int64(0), order.Discount)
	assert.Equal(t, int64(235000), order.Total)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, "DH-2025-13370042", order.OrderNumber)
	assert.Equal(t, int64(42), order.UserID)
	assert.Equal(t, placedAt, order.CreatedAt)

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, "Диван Милан", item.ProductName)
	assert.Equal(t, "SF-001", item.ProductCode)
	require.NotNil(t, item.ColorName)
	assert.Equal(t, "Серый", *item.ColorName)
	assert.Equal(t, int64(105000), item.UnitPrice)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, int64(210000), item.Total)
}

func TestMaterialize_DeliveryAboveThresholdIsFree(t *testing.T) {
	items := []domain.CartItem{{ID: 1, ProductID: 1, ColorID: int64Ptr(10), Quantity: 5}}
	sel := DeliverySelection{Type: domain.DeliveryTypeDelivery, Latitude: float64Ptr(41.31), Longitude: float64Ptr(69.28)}

	order, err := materialize(t, items, []domain.Product{sofa()}, sel)
	require.NoError(t, err)

	assert.Equal(t, int64(1050000), order.Subtotal)
	assert.Equal(t, int64(0), order.DeliveryFee)
	assert.Equal(t, int64(1050000), order.Total)
}

func TestMaterialize_TotalIsSubtotalPlusFeeMinusDiscount(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		sel      DeliverySelection
	}{
		{"pickup", 1, pickup()},
		{"delivery with fee", 3, DeliverySelection{Type: domain.DeliveryTypeDelivery, Address: strPtr("Chilonzor 5")}},
		{"delivery free", 10, DeliverySelection{Type: domain.DeliveryTypeDelivery, Address: strPtr("Chilonzor 5")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := []domain.CartItem{{ID: 1, ProductID: 1, Quantity: tc.quantity}}

			order, err := materialize(t, items, []domain.Product{sofa()}, tc.sel)
			require.NoError(t, err)

			assert.Equal(t, int64(0), order.Discount)
			assert.Equal(t, order.Subtotal+order.DeliveryFee-order.Discount, order.Total)
		})
	}
}

func TestMaterialize_EmptyCart(t *testing.T) {
	_, err := materialize(t, nil, []domain.Product{sofa()}, pickup())

	_, ok := apperrors.IsEmptyCartError(err)
	assert.True(t, ok)
}

func TestMaterialize_DeliveryWithoutTarget(t *testing.T) {
	items := []domain.CartItem{{ID: 1, ProductID: 1, Quantity: 1}}

	cases := []struct {
		name string
		sel  DeliverySelection
	}{
		{"nothing", DeliverySelection{Type: domain.DeliveryTypeDelivery}},
		{"blank address", DeliverySelection{Type: domain.DeliveryTypeDelivery, Address: strPtr("   ")}},
		{"latitude only", DeliverySelection{Type: domain.DeliveryTypeDelivery, Latitude: float64Ptr(41.31)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := materialize(t, items, []domain.Product{sofa()}, tc.sel)

			_, ok := apperrors.IsMissingDeliveryTargetError(err)
			assert.True(t, ok)
		})
	}
}

func TestMaterialize_PickupNeedsNoTarget(t *testing.T) {
	items := []domain.CartItem{{ID: 1, ProductID: 1, Quantity: 1}}

	order, err := materialize(t, items, []domain.Product{sofa()}, pickup())
	require.NoError(t, err)

	assert.Nil(t, order.Address)
	assert.Equal(t, int64(0), order.DeliveryFee)
}

func TestMaterialize_MissingProducts(t *testing.T) {
	items := []domain.CartItem{
		{ID: 1, ProductID: 1, Quantity: 1},
		{ID: 2, ProductID: 7, Quantity: 1},
		{ID: 3, ProductID: 1, ColorID: int64Ptr(99), Quantity: 1},
	}

	_, err := materialize(t, items, []domain.Product{sofa()}, pickup())

	pnf, ok := apperrors.IsProductNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, []int64{7, 1}, pnf.ProductIDs)
}

func TestMaterialize_InactiveProduct(t *testing.T) {
	retired := sofa()
	retired.IsActive = false
	items := []domain.CartItem{{ID: 1, ProductID: 1, Quantity: 1}}

	_, err := materialize(t, items, []domain.Product{retired}, pickup())

	pie, ok := apperrors.IsProductInactiveError(err)
	require.True(t, ok)
	assert.Equal(t, []int64{1}, pie.ProductIDs)
}

func TestMaterialize_ItemsDoNotFollowCatalogChanges(t *testing.T) {
	product := sofa()
	products := []domain.Product{product}
	items := []domain.CartItem{{ID: 1, ProductID: 1, ColorID: int64Ptr(10), Quantity: 1}}

	order, err := materialize(t, items, products, pickup())
	require.NoError(t, err)

	products[0].Price = 1
	products[0].NameRu = "Переименован"
	*products[0].MainImage = "https://cdn.example.com/other.jpg"
	products[0].Colors[0].NameRu = "Синий"
	products[0].Colors[0].PriceModifier = 0

	item := order.Items[0]
	assert.Equal(t, "Диван Милан", item.ProductName)
	assert.Equal(t, "https://cdn.example.com/sf-001.jpg", *item.ProductImage)
	assert.Equal(t, "Серый", *item.ColorName)
	assert.Equal(t, int64(105000), item.UnitPrice)
	assert.Equal(t, int64(105000), order.Subtotal)
}

func TestMaterialize_UsesCustomerLanguage(t *testing.T) {
	items := []domain.CartItem{{ID: 1, ProductID: 1, ColorID: int64Ptr(10), Quantity: 1}}
	info := customer()
	info.Lang = domain.LangUz

	order, err := NewMaterializer(pricing.DefaultFeePolicy()).
		Materialize(42, items, []domain.Product{sofa()}, pickup(), info, "DH-2025-00000001", placedAt)
	require.NoError(t, err)

	assert.Equal(t, "Milan divani", order.Items[0].ProductName)
	assert.Equal(t, "Kulrang", *order.Items[0].ColorName)
}

func TestMaterialize_TrimsCustomerFields(t *testing.T) {
	items := []domain.CartItem{{ID: 1, ProductID: 1, Quantity: 1}}
	info := customer()
	info.Name = "  Aziz "
	info.Note = strPtr("   ")

	order, err := NewMaterializer(pricing.DefaultFeePolicy()).
		Materialize(42, items, []domain.Product{sofa()}, pickup(), info, "DH-2025-00000001", placedAt)
	require.NoError(t, err)

	assert.Equal(t, "Aziz", order.CustomerName)
	assert.Nil(t, order.Note)
}
