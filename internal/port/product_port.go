package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
)

type ProductRepository interface {
	GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error)
	GetProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
