package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dekorhouse/internal/domain"
)

func sampleOrder() *domain.Order {
	productID := int64(1)
	color := "Серый"
	address := "Yunusobod 4"
	return &domain.Order{
		OrderNumber:   "DH-2025-44440001",
		CustomerName:  "Aziz",
		CustomerPhone: "+998901234567",
		PaymentMethod: domain.PaymentClick,
		DeliveryType:  domain.DeliveryTypeDelivery,
		Address:       &address,
		Subtotal:      210000,
		DeliveryFee:   25000,
		Total:         235000,
		Items: []domain.OrderItem{
			{ProductID: &productID, ProductName: "Диван Милан", ProductCode: "SF-001", ColorName: &color, UnitPrice: 105000, Quantity: 2, Total: 210000},
		},
	}
}

func TestNotifyOrderPlaced_PostsToAdminChat(t *testing.T) {
	var gotPath string
	var got sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"ok": true, "result": {}}`))
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL+"/", "123:ABC", -100500)
	err := n.NotifyOrderPlaced(context.Background(), sampleOrder())
	require.NoError(t, err)

	assert.Equal(t, "/bot123:ABC/sendMessage", gotPath)
	assert.Equal(t, int64(-100500), got.ChatID)
	assert.Contains(t, got.Text, "DH-2025-44440001")
	assert.Contains(t, got.Text, "Диван Милан (Серый) [SF-001] × 2 = 210 000 сум")
	assert.Contains(t, got.Text, "Итого: 235 000 сум")
}

func TestNotifyOrderPlaced_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok": false, "description": "Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	err := NewNotifier(srv.URL, "123:ABC", 1).NotifyOrderPlaced(context.Background(), sampleOrder())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestNotifyOrderPlaced_OKFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": false, "description": "Forbidden: bot was blocked"}`))
	}))
	defer srv.Close()

	err := NewNotifier(srv.URL, "123:ABC", 1).NotifyOrderPlaced(context.Background(), sampleOrder())
	assert.Error(t, err)
}

func TestNotifyOrderPlaced_TransportErrorHidesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := NewNotifier(srv.URL, "secret-token", 1).NotifyOrderPlaced(context.Background(), sampleOrder())

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-token")
}

func TestNopNotifier(t *testing.T) {
	assert.NoError(t, NopNotifier{}.NotifyOrderPlaced(context.Background(), sampleOrder()))
}

func TestFormatOrder_PickupAndLocation(t *testing.T) {
	order := sampleOrder()
	order.DeliveryType = domain.DeliveryTypePickup
	assert.Contains(t, FormatOrder(order), "самовывоз")

	lat, lng := 41.311081, 69.240562
	order.DeliveryType = domain.DeliveryTypeDelivery
	order.Address = nil
	order.Latitude, order.Longitude = &lat, &lng
	assert.Contains(t, FormatOrder(order), "q=41.311081,69.240562")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0 сум", formatAmount(0))
	assert.Equal(t, "25 000 сум", formatAmount(25000))
	assert.Equal(t, "1 050 000 сум", formatAmount(1050000))
	assert.Equal(t, "-5 000 сум", formatAmount(-5000))
}
