package usecase

import (
	"context"

	"dekorhouse/internal/domain"
	"dekorhouse/internal/dto"
	"dekorhouse/internal/pricing"
)

type Service interface {
	GetProductsByIDs(ctx context.Context, ids []int64) (found []domain.Product, notFoundIDs []int64, err error)
}

type SearchUseCase struct {
	service Service
}

func NewSearchUseCase(service Service) *SearchUseCase {
	return &SearchUseCase{service: service}
}

func (uc *SearchUseCase) SearchProducts(ctx context.Context, req dto.SearchProductsRequest) (*dto.SearchProductsResponse, error) {
	found, notFoundIDs, err := uc.service.GetProductsByIDs(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	lang := req.Lang
	if lang == "" {
		lang = domain.LangRu
	}

	products := make([]dto.ProductDTO, 0, len(found))
	for _, p := range found {
		colors := make([]dto.ColorDTO, 0, len(p.Colors))
		for _, c := range p.Colors {
			colors = append(colors, dto.ColorDTO{
				ID:            c.ID,
				Name:          c.Name(lang),
				HexCode:       c.HexCode,
				PriceModifier: c.PriceModifier,
				UnitPrice:     pricing.UnitPrice(p.Price, c.PriceModifier),
				InStock:       c.InStock,
			})
		}

		products = append(products, dto.ProductDTO{
			ID:        p.ID,
			Name:      p.Name(lang),
			Code:      p.Code,
			Price:     p.Price,
			OldPrice:  p.OldPrice,
			MainImage: p.MainImage,
			IsActive:  p.IsActive,
			Colors:    colors,
		})
	}

	if notFoundIDs == nil {
		notFoundIDs = []int64{}
	}

	return &dto.SearchProductsResponse{
		Products: products,
		NotFound: notFoundIDs,
	}, nil
}
