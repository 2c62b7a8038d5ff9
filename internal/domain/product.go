package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       Money
	// Stock is never negative, a product without a recorded stock has 0.
	Stock int

	CreatedAt time.Time
}

// Validate checks the fields a catalog write must carry.
func (p Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name is empty", ErrInvalidRequest)
	}
	if p.Price.Amount.IsNegative() {
		return fmt.Errorf("%w: product price is negative", ErrInvalidRequest)
	}
	if p.Stock < 0 || p.Stock > MaxQuantity {
		return fmt.Errorf("%w: product stock %d is out of range", ErrInvalidRequest, p.Stock)
	}

	return nil
}
