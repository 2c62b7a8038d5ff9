package port

import (
	"context"

	"github.com/nikolayk812/storefront-cart/internal/domain"
)

type CartRepository interface {
	FindCart(ctx context.Context, userID string) (domain.CartState, error)
	// SaveCart fails with domain.ErrConcurrentModification when the stored version
	// differs from cart.Version.
	SaveCart(ctx context.Context, cart domain.Cart) (domain.Cart, error)
}
