package domain

import "time"

const (
	LangRu = "ru"
	LangUz = "uz"
)

type Product struct {
	ID        int64     `db:"id"`
	NameRu    string    `db:"name_ru"`
	NameUz    string    `db:"name_uz"`
	Code      string    `db:"code"`
	Price     int64     `db:"price"`
	OldPrice  *int64    `db:"old_price"`
	MainImage *string   `db:"main_image"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	Colors []Color `db:"-"`
}

// Name returns the product name in lang, falling back to Russian.
func (p Product) Name(lang string) string {
	return localized(p.NameRu, p.NameUz, lang)
}

// Color looks up a color variant attached to the product.
func (p Product) Color(colorID int64) (Color, bool) {
	for _, c := range p.Colors {
		if c.ID == colorID {
			return c, true
		}
	}
	return Color{}, false
}

type Color struct {
	ID            int64  `db:"id"`
	ProductID     int64  `db:"product_id"`
	NameRu        string `db:"name_ru"`
	NameUz        string `db:"name_uz"`
	HexCode       string `db:"hex_code"`
	PriceModifier int64  `db:"price_modifier"`
	InStock       bool   `db:"in_stock"`
}

func (c Color) Name(lang string) string {
	return localized(c.NameRu, c.NameUz, lang)
}

func localized(ru, uz, lang string) string {
	if lang == LangUz && uz != "" {
		return uz
	}
	return ru
}
