package services

import (
	"context"
	"errors"

	"github.com/payflow/checkout-backend/internal/models"
	repo "github.com/payflow/checkout-backend/internal/repository"
)

// CatalogService is a read-only view over products; management lives in the
// catalog subsystem, not here.
type CatalogService struct {
	products repo.Products
}

func NewCatalogService(p repo.Products) *CatalogService {
	return &CatalogService{products: p}
}

func (s *CatalogService) Get(ctx context.Context, id string) (models.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNoRows) {
		return models.Product{}, ErrNotFound
	}
	return p, err
}

func (s *CatalogService) List(ctx context.Context, limit, offset int) ([]models.Product, error) {
	return s.products.List(ctx, limit, offset)
}
