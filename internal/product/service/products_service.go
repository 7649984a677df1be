package service

import (
	"context"

	"dekorhouse/internal/domain"
)

type Repository interface {
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
}

type ProductService struct {
	repo Repository
}

func NewService(repo Repository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) GetProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, []int64, error) {
	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	found, notFoundIDs := SplitFound(found, ids)
	return found, notFoundIDs, nil
}

// SplitFound returns the products in requested order together with the
// requested ids that have no product.
func SplitFound(found []domain.Product, ids []int64) ([]domain.Product, []int64) {
	byID := make(map[int64]domain.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	ordered := make([]domain.Product, 0, len(found))
	seen := make(map[int64]struct{}, len(ids))
	var notFoundIDs []int64
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		p, ok := byID[id]
		if !ok {
			notFoundIDs = append(notFoundIDs, id)
			continue
		}
		ordered = append(ordered, p)
	}

	return ordered, notFoundIDs
}
