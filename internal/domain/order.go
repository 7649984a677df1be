package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type DeliveryType string

const (
	DeliveryTypePickup   DeliveryType = "PICKUP"
	DeliveryTypeDelivery DeliveryType = "DELIVERY"
)

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "CASH"
	PaymentCard  PaymentMethod = "CARD"
	PaymentPayme PaymentMethod = "PAYME"
	PaymentClick PaymentMethod = "CLICK"
	PaymentUzum  PaymentMethod = "UZUM"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentPayme, PaymentClick, PaymentUzum:
		return true
	}
	return false
}

func (t DeliveryType) Valid() bool {
	return t == DeliveryTypePickup || t == DeliveryTypeDelivery
}

type Order struct {
	ID            int64         `db:"id"`
	OrderNumber   string        `db:"order_number"`
	UserID        int64         `db:"user_id"`
	Status        OrderStatus   `db:"status"`
	Subtotal      int64         `db:"subtotal"`
	DeliveryFee   int64         `db:"delivery_fee"`
	Discount      int64         `db:"discount"`
	Total         int64         `db:"total"`
	DeliveryType  DeliveryType  `db:"delivery_type"`
	Address       *string       `db:"address"`
	Latitude      *float64      `db:"latitude"`
	Longitude     *float64      `db:"longitude"`
	CustomerName  string        `db:"customer_name"`
	CustomerPhone string        `db:"customer_phone"`
	Note          *string       `db:"note"`
	PaymentMethod PaymentMethod `db:"payment_method"`
	CreatedAt     time.Time     `db:"created_at"`
	ConfirmedAt   *time.Time    `db:"confirmed_at"`
	ShippedAt     *time.Time    `db:"shipped_at"`
	DeliveredAt   *time.Time    `db:"delivered_at"`
	CancelledAt   *time.Time    `db:"cancelled_at"`

	Items []OrderItem `db:"-"`
}

// OrderItem is a frozen copy of a cart line taken at checkout. It never
// reads product or color data again.
type OrderItem struct {
	ID           int64   `db:"id"`
	OrderID      int64   `db:"order_id"`
	ProductID    *int64  `db:"product_id"`
	ProductName  string  `db:"product_name"`
	ProductCode  string  `db:"product_code"`
	ProductImage *string `db:"product_image"`
	ColorName    *string `db:"color_name"`
	UnitPrice    int64   `db:"unit_price"`
	Quantity     int     `db:"quantity"`
	Total        int64   `db:"total"`
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the order to next and stamps the matching timestamp.
func (o *Order) TransitionTo(next OrderStatus, at time.Time) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("cannot change order status from %s to %s", o.Status, next)
	}

	switch next {
	case OrderStatusConfirmed:
		o.ConfirmedAt = &at
	case OrderStatusShipped:
		o.ShippedAt = &at
	case OrderStatusDelivered:
		o.DeliveredAt = &at
	case OrderStatusCancelled:
		o.CancelledAt = &at
	}
	o.Status = next
	return nil
}

func (o Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}
