package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

var _ port.ProductRepository = (*ProductStore)(nil)

type ProductStore struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
	order    []uuid.UUID
}

func NewProductStore(products ...domain.Product) *ProductStore {
	s := &ProductStore{products: make(map[uuid.UUID]domain.Product)}
	for _, product := range products {
		s.put(product)
	}

	return s
}

func (s *ProductStore) GetProduct(_ context.Context, id uuid.UUID) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: product[%s]", domain.ErrNotFound, id)
	}

	return product, nil
}

func (s *ProductStore) GetProducts(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[uuid.UUID]domain.Product, len(ids))
	for _, id := range ids {
		if product, ok := s.products[id]; ok {
			result[id] = product
		}
	}

	return result, nil
}

func (s *ProductStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, 0, len(s.order))
	for _, id := range s.order {
		products = append(products, s.products[id])
	}

	return products, nil
}

func (s *ProductStore) CreateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	if err := product.Validate(); err != nil {
		return domain.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID]; exists {
		return domain.Product{}, fmt.Errorf("%w: product[%s] already exists", domain.ErrInvalidRequest, product.ID)
	}

	return s.put(product), nil
}

func (s *ProductStore) UpdateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	if err := product.Validate(); err != nil {
		return domain.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[product.ID]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: product[%s]", domain.ErrNotFound, product.ID)
	}

	product.CreatedAt = existing.CreatedAt

	return s.put(product), nil
}

func (s *ProductStore) DeleteProduct(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return fmt.Errorf("%w: product[%s]", domain.ErrNotFound, id)
	}

	delete(s.products, id)
	s.order = slices.DeleteFunc(s.order, func(other uuid.UUID) bool {
		return other == id
	})

	return nil
}

// SetStock replaces the stock of an existing product.
func (s *ProductStore) SetStock(id uuid.UUID, stock int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return fmt.Errorf("%w: product[%s]", domain.ErrNotFound, id)
	}

	product.Stock = max(0, stock)
	s.products[id] = product

	return nil
}

func (s *ProductStore) put(product domain.Product) domain.Product {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	if !slices.Contains(s.order, product.ID) {
		s.order = append(s.order, product.ID)
	}
	s.products[product.ID] = product

	return product
}
