package dto

type SearchProductsRequest struct {
	ProductIDs []int64 `json:"productIds"`
	Lang       string  `json:"lang"`
}

type SearchProductsResponse struct {
	Products []ProductDTO `json:"products"`
	NotFound []int64      `json:"notFound"`
}

type ProductDTO struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	Price     int64      `json:"price"`
	OldPrice  *int64     `json:"oldPrice"`
	MainImage *string    `json:"mainImage"`
	IsActive  bool       `json:"isActive"`
	Colors    []ColorDTO `json:"colors"`
}

type ColorDTO struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	HexCode       string `json:"hexCode"`
	PriceModifier int64  `json:"priceModifier"`
	UnitPrice     int64  `json:"unitPrice"`
	InStock       bool   `json:"inStock"`
}
