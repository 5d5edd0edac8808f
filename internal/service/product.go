package service

import (
	"context"
	"fmt"

	"github.com/kmalyshev/webshop/internal/domain"
	"github.com/kmalyshev/webshop/internal/models"
	"github.com/kmalyshev/webshop/internal/repo"
	"github.com/kmalyshev/webshop/internal/transport"
)

type ProductService struct {
	Repo *repo.GormRepo
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *ProductService) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *ProductService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", domain.ErrValidation)
	}

	prod := models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
	}
	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, err
	}
	return &prod, nil
}

func (s *ProductService) PatchProduct(ctx context.Context, req transport.UpdateProductRequest, id uint) (*models.Product, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", domain.ErrValidation)
	}
	if req.Name != nil && *req.Name == "" {
		return nil, fmt.Errorf("name cannot be empty: %w", domain.ErrValidation)
	}

	return s.Repo.PatchProduct(ctx, req, id)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	return s.Repo.DeleteProduct(ctx, id)
}
