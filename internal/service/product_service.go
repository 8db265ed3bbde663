package service

import (
	"context"
	"errors"

	"github.com/worlddist/ordering-backend/internal/domain"
	"github.com/worlddist/ordering-backend/internal/repository"
	"gorm.io/gorm"
)

type ProductService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.GetAll(ctx)
}

func (s *ProductService) Get(ctx context.Context, id uint) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundf("product %d not found", id)
		}
		return nil, err
	}
	return product, nil
}
