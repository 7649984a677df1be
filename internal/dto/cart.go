package dto

type AddCartItemRequest struct {
	ProductID int64  `json:"productId"`
	ColorID   *int64 `json:"colorId"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type AddCartItemResponse struct {
	ItemID int64 `json:"itemId"`
}

type CartResponse struct {
	Items                 []CartLineDTO `json:"items"`
	ItemCount             int           `json:"itemCount"`
	Subtotal              int64         `json:"subtotal"`
	DeliveryFee           int64         `json:"deliveryFee"`
	FreeDeliveryThreshold int64         `json:"freeDeliveryThreshold"`
	UnavailableItemIDs    []int64       `json:"unavailableItemIds"`
}

type CartLineDTO struct {
	ItemID      int64   `json:"itemId"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	ProductCode string  `json:"productCode"`
	Image       *string `json:"image"`
	ColorID     *int64  `json:"colorId"`
	ColorName   *string `json:"colorName"`
	UnitPrice   int64   `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	Total       int64   `json:"total"`
}
