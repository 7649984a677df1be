package controller

import (
	"dekorhouse/internal/domain"
	"dekorhouse/internal/dto"
)

func toOrderResponse(order *domain.Order) dto.OrderResponse {
	items := make([]dto.OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemDTO{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductCode:  item.ProductCode,
			ProductImage: item.ProductImage,
			ColorName:    item.ColorName,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			Total:        item.Total,
		})
	}

	return dto.OrderResponse{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		Status:        string(order.Status),
		Subtotal:      order.Subtotal,
		DeliveryFee:   order.DeliveryFee,
		Discount:      order.Discount,
		Total:         order.Total,
		ItemCount:     order.ItemCount(),
		DeliveryType:  string(order.DeliveryType),
		Address:       order.Address,
		Latitude:      order.Latitude,
		Longitude:     order.Longitude,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Note:          order.Note,
		PaymentMethod: string(order.PaymentMethod),
		CreatedAt:     order.CreatedAt,
		ConfirmedAt:   order.ConfirmedAt,
		ShippedAt:     order.ShippedAt,
		DeliveredAt:   order.DeliveredAt,
		CancelledAt:   order.CancelledAt,
		Items:         items,
	}
}
