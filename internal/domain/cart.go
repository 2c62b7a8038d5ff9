package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	UserID string
	Lines  []CartLine

	// Version is 0 for a cart that was never persisted.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// Quantity returns the quantity of productID in the cart, 0 when there is no such line.
func (c Cart) Quantity(productID uuid.UUID) int {
	for _, line := range c.Lines {
		if line.ProductID == productID {
			return line.Quantity
		}
	}

	return 0
}

// CheckQuantities rejects lines that could not have come out of ApplyDelta.
func (c Cart) CheckQuantities() error {
	for _, line := range c.Lines {
		if line.Quantity < 1 || line.Quantity > MaxQuantity {
			return fmt.Errorf("%w: product[%s] quantity %d is out of range", ErrInvalidRequest, line.ProductID, line.Quantity)
		}
	}

	return nil
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// CartState tells a persisted cart apart from a user who never had one.
// An empty but persisted cart is Present with zero lines.
type CartState struct {
	cart    Cart
	present bool
}

func AbsentCart() CartState {
	return CartState{}
}

func PresentCart(cart Cart) CartState {
	return CartState{cart: cart, present: true}
}

func (s CartState) Get() (Cart, bool) {
	return s.cart, s.present
}

func (s CartState) IsPresent() bool {
	return s.present
}

// OrEmpty returns the persisted cart or a synthesized empty one for userID.
func (s CartState) OrEmpty(userID string) Cart {
	if s.present {
		return s.cart
	}

	return Cart{UserID: userID, Lines: []CartLine{}}
}
