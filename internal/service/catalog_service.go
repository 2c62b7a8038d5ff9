package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

// CatalogService reads the product catalog for shoppers and writes it for admins.
type CatalogService struct {
	products port.ProductRepository
}

func NewCatalog(products port.ProductRepository) (*CatalogService, error) {
	if products == nil {
		return nil, fmt.Errorf("products repository is nil")
	}

	return &CatalogService{products: products}, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("products.ListProducts: %w", err)
	}

	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	if id == uuid.Nil {
		return domain.Product{}, fmt.Errorf("%w: product id is empty", domain.ErrInvalidRequest)
	}

	product, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.GetProduct: %w", err)
	}

	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := product.Validate(); err != nil {
		return domain.Product{}, err
	}

	created, err := s.products.CreateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.CreateProduct: %w", err)
	}

	return created, nil
}

// UpdateProduct replaces every writable field of an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == uuid.Nil {
		return domain.Product{}, fmt.Errorf("%w: product id is empty", domain.ErrInvalidRequest)
	}
	if err := product.Validate(); err != nil {
		return domain.Product{}, err
	}

	updated, err := s.products.UpdateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.UpdateProduct: %w", err)
	}

	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: product id is empty", domain.ErrInvalidRequest)
	}

	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("products.DeleteProduct: %w", err)
	}

	return nil
}
