package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-cart/internal/db"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"golang.org/x/text/currency"
)

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) (port.ProductRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &productRepository{q: db.New(pool)}, nil
}

func (r *productRepository) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	row, err := r.q.GetProduct(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("%w: product[%s]", domain.ErrNotFound, id)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: q.GetProduct: %w", domain.ErrPersistence, err)
	}

	product, err := mapProductToDomain(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapProductToDomain: %w", err)
	}

	return product, nil
}

func (r *productRepository) GetProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Product, error) {
	result := make(map[uuid.UUID]domain.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.q.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: q.GetProductsByIDs: %w", domain.ErrPersistence, err)
	}

	for _, row := range rows {
		product, err := mapProductToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}
		result[product.ID] = product
	}

	return result, nil
}

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: q.ListProducts: %w", domain.ErrPersistence, err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		product, err := mapProductToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}
		products = append(products, product)
	}

	return products, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := product.Validate(); err != nil {
		return domain.Product{}, err
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	row, err := r.q.InsertProduct(ctx, db.InsertProductParams{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		Stock:         pgtype.Int4{Int32: int32(product.Stock), Valid: true},
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: q.InsertProduct: %w", domain.ErrPersistence, err)
	}

	created, err := mapProductToDomain(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapProductToDomain: %w", err)
	}

	return created, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == uuid.Nil {
		return domain.Product{}, fmt.Errorf("%w: product id is empty", domain.ErrInvalidRequest)
	}
	if err := product.Validate(); err != nil {
		return domain.Product{}, err
	}

	row, err := r.q.UpdateProduct(ctx, db.UpdateProductParams{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		Stock:         pgtype.Int4{Int32: int32(product.Stock), Valid: true},
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("%w: product[%s]", domain.ErrNotFound, product.ID)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: q.UpdateProduct: %w", domain.ErrPersistence, err)
	}

	updated, err := mapProductToDomain(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapProductToDomain: %w", err)
	}

	return updated, nil
}

// DeleteProduct removes the product from the catalog. Cart lines pointing at it stay and
// show up unresolved in cart views.
func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	deleted, err := r.q.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: q.DeleteProduct: %w", domain.ErrPersistence, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: product[%s]", domain.ErrNotFound, id)
	}

	return nil
}

func mapProductToDomain(row db.Product) (domain.Product, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	var stock int
	if row.Stock.Valid && row.Stock.Int32 > 0 {
		stock = int(row.Stock.Int32)
	}

	return domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Price:       domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Stock:       stock,
		CreatedAt:   row.CreatedAt,
	}, nil
}
