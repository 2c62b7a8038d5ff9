// Package memory keeps carts and products in process memory.
// It honours the same contracts as the Postgres repositories, including version checks.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

var _ port.CartRepository = (*CartStore)(nil)

type CartStore struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
	now   func() time.Time
}

func NewCartStore() *CartStore {
	return &CartStore{
		carts: make(map[string]domain.Cart),
		now:   time.Now,
	}
}

func (s *CartStore) FindCart(ctx context.Context, userID string) (domain.CartState, error) {
	if userID == "" {
		return domain.AbsentCart(), fmt.Errorf("%w: userID is empty", domain.ErrInvalidRequest)
	}
	if err := ctx.Err(); err != nil {
		return domain.AbsentCart(), fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[userID]
	if !ok {
		return domain.AbsentCart(), nil
	}

	return domain.PresentCart(cloneCart(cart)), nil
}

func (s *CartStore) SaveCart(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	if cart.UserID == "" {
		return domain.Cart{}, fmt.Errorf("%w: userID is empty", domain.ErrInvalidRequest)
	}
	if err := cart.CheckQuantities(); err != nil {
		return domain.Cart{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stored, exists := s.carts[cart.UserID]

	switch {
	case !exists && cart.Version == 0:
		stored = domain.Cart{UserID: cart.UserID, CreatedAt: now}
	case exists && stored.Version == cart.Version:
	default:
		return domain.Cart{}, fmt.Errorf("%w: cart[%s] is not at version %d",
			domain.ErrConcurrentModification, cart.UserID, cart.Version)
	}

	stored.Lines = slices.Clone(cart.Lines)
	if stored.Lines == nil {
		stored.Lines = []domain.CartLine{}
	}
	stored.Version++
	stored.UpdatedAt = now

	s.carts[cart.UserID] = stored

	return cloneCart(stored), nil
}

func cloneCart(cart domain.Cart) domain.Cart {
	cart.Lines = slices.Clone(cart.Lines)
	return cart
}
