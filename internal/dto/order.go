package dto

import "time"

type CheckoutRequest struct {
	CustomerName  string   `json:"customerName"`
	CustomerPhone string   `json:"customerPhone"`
	Note          *string  `json:"note"`
	PaymentMethod string   `json:"paymentMethod"`
	DeliveryType  string   `json:"deliveryType"`
	Address       *string  `json:"address"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

type OrderResponse struct {
	ID            int64          `json:"id"`
	OrderNumber   string         `json:"orderNumber"`
	Status        string         `json:"status"`
	Subtotal      int64          `json:"subtotal"`
	DeliveryFee   int64          `json:"deliveryFee"`
	Discount      int64          `json:"discount"`
	Total         int64          `json:"total"`
	ItemCount     int            `json:"itemCount"`
	DeliveryType  string         `json:"deliveryType"`
	Address       *string        `json:"address"`
	Latitude      *float64       `json:"latitude"`
	Longitude     *float64       `json:"longitude"`
	CustomerName  string         `json:"customerName"`
	CustomerPhone string         `json:"customerPhone"`
	Note          *string        `json:"note"`
	PaymentMethod string         `json:"paymentMethod"`
	CreatedAt     time.Time      `json:"createdAt"`
	ConfirmedAt   *time.Time     `json:"confirmedAt"`
	ShippedAt     *time.Time     `json:"shippedAt"`
	DeliveredAt   *time.Time     `json:"deliveredAt"`
	CancelledAt   *time.Time     `json:"cancelledAt"`
	Items         []OrderItemDTO `json:"items"`
}

type OrderItemDTO struct {
	ProductID    *int64  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductCode  string  `json:"productCode"`
	ProductImage *string `json:"productImage"`
	ColorName    *string `json:"colorName"`
	UnitPrice    int64   `json:"unitPrice"`
	Quantity     int     `json:"quantity"`
	Total        int64   `json:"total"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}
