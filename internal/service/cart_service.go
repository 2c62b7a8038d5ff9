package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"go.uber.org/zap"
)

type CartService struct {
	carts    port.CartRepository
	products port.ProductRepository
	log      *zap.Logger

	enforceStock bool
}

type Option func(*CartService)

func WithLogger(log *zap.Logger) Option {
	return func(s *CartService) {
		if log != nil {
			s.log = log
		}
	}
}

// WithStockEnforcement makes AddItem reject positive deltas exceeding the product's availability.
func WithStockEnforcement(enabled bool) Option {
	return func(s *CartService) {
		s.enforceStock = enabled
	}
}

func NewCart(carts port.CartRepository, products port.ProductRepository, opts ...Option) (*CartService, error) {
	if carts == nil {
		return nil, fmt.Errorf("carts repository is nil")
	}
	if products == nil {
		return nil, fmt.Errorf("products repository is nil")
	}

	s := &CartService{
		carts:        carts,
		products:     products,
		log:          zap.NewNop(),
		enforceStock: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// AddItem applies a signed quantity delta to the user's line of productID and persists the cart.
func (s *CartService) AddItem(ctx context.Context, userID string, productID uuid.UUID, delta int) (domain.Cart, error) {
	log := s.log.With(zap.String("user_id", userID), zap.Stringer("product_id", productID), zap.Int("delta", delta))

	if err := validateIdentifiers(userID, productID); err != nil {
		return domain.Cart{}, err
	}

	state, err := s.carts.FindCart(ctx, userID)
	if err != nil {
		return domain.Cart{}, s.fail(log, "carts.FindCart", err)
	}

	updated, err := domain.ApplyDelta(state, userID, productID, delta)
	if err != nil {
		return domain.Cart{}, s.fail(log, "domain.ApplyDelta", err)
	}

	current := state.OrEmpty(userID).Quantity(productID)

	if delta > 0 && s.enforceStock {
		if err := s.checkStock(ctx, productID, current, delta); err != nil {
			return domain.Cart{}, s.fail(log, "checkStock", err)
		}
	}

	if delta > 0 && current == 0 && len(updated.Lines) > 1 {
		if err := s.checkCurrency(ctx, updated, productID); err != nil {
			return domain.Cart{}, s.fail(log, "checkCurrency", err)
		}
	}

	saved, err := s.carts.SaveCart(ctx, updated)
	if err != nil {
		return domain.Cart{}, s.fail(log, "carts.SaveCart", err)
	}

	log.Debug("cart updated",
		zap.Int("quantity", saved.Quantity(productID)),
		zap.Int("lines", len(saved.Lines)),
		zap.Int64("version", saved.Version))

	return saved, nil
}

// RemoveItem deletes the user's line of productID whatever its quantity.
func (s *CartService) RemoveItem(ctx context.Context, userID string, productID uuid.UUID) (domain.Cart, error) {
	log := s.log.With(zap.String("user_id", userID), zap.Stringer("product_id", productID))

	if err := validateIdentifiers(userID, productID); err != nil {
		return domain.Cart{}, err
	}

	state, err := s.carts.FindCart(ctx, userID)
	if err != nil {
		return domain.Cart{}, s.fail(log, "carts.FindCart", err)
	}

	updated, err := domain.RemoveLine(state, productID)
	if err != nil {
		return domain.Cart{}, s.fail(log, "domain.RemoveLine", err)
	}

	saved, err := s.carts.SaveCart(ctx, updated)
	if err != nil {
		return domain.Cart{}, s.fail(log, "carts.SaveCart", err)
	}

	log.Debug("cart line removed", zap.Int("lines", len(saved.Lines)), zap.Int64("version", saved.Version))

	return saved, nil
}

// View returns the user's cart resolved against the catalog. A user without a cart gets an empty one.
func (s *CartService) View(ctx context.Context, userID string) (domain.CartView, error) {
	log := s.log.With(zap.String("user_id", userID))

	if userID == "" {
		return domain.CartView{}, fmt.Errorf("%w: userID is empty", domain.ErrInvalidRequest)
	}

	state, err := s.carts.FindCart(ctx, userID)
	if err != nil {
		return domain.CartView{}, s.fail(log, "carts.FindCart", err)
	}

	cart := state.OrEmpty(userID)

	ids := make([]uuid.UUID, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		ids = append(ids, line.ProductID)
	}

	products, err := s.products.GetProducts(ctx, ids)
	if err != nil {
		return domain.CartView{}, s.fail(log, "products.GetProducts", err)
	}

	view := domain.NewCartView(cart, products)
	if len(view.Totals) > 1 {
		log.Warn("cart holds more than one currency", zap.Int("currencies", len(view.Totals)))
	}

	return view, nil
}

// Availability re-reads the cart and the product stock and reports how many more units fit.
func (s *CartService) Availability(ctx context.Context, userID string, productID uuid.UUID) (int, error) {
	log := s.log.With(zap.String("user_id", userID), zap.Stringer("product_id", productID))

	if err := validateIdentifiers(userID, productID); err != nil {
		return 0, err
	}

	state, err := s.carts.FindCart(ctx, userID)
	if err != nil {
		return 0, s.fail(log, "carts.FindCart", err)
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return 0, s.fail(log, "products.GetProduct", err)
	}

	return domain.Availability(state.OrEmpty(userID).Quantity(productID), product.Stock), nil
}

func (s *CartService) checkStock(ctx context.Context, productID uuid.UUID, current, delta int) error {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("products.GetProduct: %w", err)
	}

	available := domain.Availability(current, product.Stock)
	if delta > available {
		return fmt.Errorf("%w: product[%s] has %d available, requested %d",
			domain.ErrInsufficientStock, productID, available, delta)
	}

	return nil
}

// checkCurrency rejects a new line whose product is priced in another currency than the
// products already in the cart. Products missing from the catalog carry no price and are skipped.
func (s *CartService) checkCurrency(ctx context.Context, cart domain.Cart, productID uuid.UUID) error {
	ids := make([]uuid.UUID, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		ids = append(ids, line.ProductID)
	}

	products, err := s.products.GetProducts(ctx, ids)
	if err != nil {
		return fmt.Errorf("products.GetProducts: %w", err)
	}

	added, ok := products[productID]
	if !ok {
		return nil
	}

	for _, line := range cart.Lines {
		if line.ProductID == productID {
			continue
		}

		existing, ok := products[line.ProductID]
		if !ok {
			continue
		}

		if existing.Price.Currency != added.Price.Currency {
			return fmt.Errorf("%w: product[%s] is priced in %s, cart holds %s",
				domain.ErrCurrencyMismatch, productID, added.Price.Currency, existing.Price.Currency)
		}
	}

	return nil
}

func (s *CartService) fail(log *zap.Logger, op string, err error) error {
	err = fmt.Errorf("%s: %w", op, err)

	switch {
	case errors.Is(err, domain.ErrPersistence), !isDomainError(err):
		log.Error("cart operation failed", zap.String("op", op), zap.Error(err))
	default:
		log.Debug("cart operation rejected", zap.String("op", op), zap.Error(err))
	}

	return err
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrInvalidRequest) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConcurrentModification) ||
		errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrCurrencyMismatch)
}

func validateIdentifiers(userID string, productID uuid.UUID) error {
	if userID == "" {
		return fmt.Errorf("%w: userID is empty", domain.ErrInvalidRequest)
	}
	if productID == uuid.Nil {
		return fmt.Errorf("%w: productID is empty", domain.ErrInvalidRequest)
	}

	return nil
}
