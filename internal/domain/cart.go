package domain

import "time"

// CartItem is one persisted line of a user's cart. Quantity is always >= 1.
type CartItem struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	ProductID int64     `db:"product_id"`
	ColorID   *int64    `db:"color_id"`
	Quantity  int       `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CartLine is a cart item resolved against current catalog data.
type CartLine struct {
	ItemID   int64
	Product  Product
	Color    *Color
	Quantity int
}

// ResolveCartLines matches cart items with current catalog data. Items whose
// product is gone, or whose selected color no longer belongs to the product,
// are reported in missing; items of deactivated products in inactive. Both
// hold product ids without duplicates.
func ResolveCartLines(items []CartItem, products []Product) (lines []CartLine, missing []int64, inactive []int64) {
	byID := make(map[int64]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	reported := make(map[int64]struct{})
	report := func(dst *[]int64, id int64) {
		if _, ok := reported[id]; ok {
			return
		}
		reported[id] = struct{}{}
		*dst = append(*dst, id)
	}

	lines = make([]CartLine, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			report(&missing, item.ProductID)
			continue
		}

		var color *Color
		if item.ColorID != nil {
			c, ok := product.Color(*item.ColorID)
			if !ok {
				report(&missing, item.ProductID)
				continue
			}
			color = &c
		}

		if !product.IsActive {
			report(&inactive, item.ProductID)
			continue
		}

		lines = append(lines, CartLine{
			ItemID:   item.ID,
			Product:  product,
			Color:    color,
			Quantity: item.Quantity,
		})
	}

	return lines, missing, inactive
}

// ProductIDs returns the distinct product ids referenced by items.
func ProductIDs(items []CartItem) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}
