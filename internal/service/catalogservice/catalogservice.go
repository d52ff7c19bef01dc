package catalogservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
)

type ProductRepo interface {
	FindActiveCategories(ctx context.Context) ([]domain.ProductCategory, error)
	FindActiveProducts(ctx context.Context, categoryID *int) ([]domain.DigitalProduct, error)
}

type Service struct {
	productRepo ProductRepo
}

func New(productRepo ProductRepo) *Service {
	return &Service{
		productRepo: productRepo,
	}
}

func (s *Service) GetCategories(ctx context.Context) ([]domain.ProductCategory, error) {
	categories, err := s.productRepo.FindActiveCategories(ctx)
	if err != nil {
		zap.L().Error("failed to get categories", zap.Error(err))
		return nil, err
	}
	return categories, nil
}

func (s *Service) GetProducts(ctx context.Context, categoryID *int) ([]domain.DigitalProduct, error) {
	products, err := s.productRepo.FindActiveProducts(ctx, categoryID)
	if err != nil {
		zap.L().Error("failed to get products", zap.Error(err))
		return nil, err
	}
	return products, nil
}
