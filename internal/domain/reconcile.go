package domain

import (
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"
)

// MaxQuantity bounds a single delta and a stored line quantity, both are persisted as INTEGER.
const MaxQuantity = math.MaxInt32

// ApplyDelta adds delta to the quantity of productID in the cart held by state.
//
// A line whose quantity drops to zero or below is removed. Reducing a product that is
// not in an existing cart is a no-op, while reducing anything when no cart exists at all
// is rejected with ErrInvalidRequest. The cart inside state is never modified.
func ApplyDelta(state CartState, userID string, productID uuid.UUID, delta int) (Cart, error) {
	if delta == 0 {
		return Cart{}, fmt.Errorf("%w: quantity delta is zero", ErrInvalidRequest)
	}

	if delta > MaxQuantity || delta < -MaxQuantity {
		return Cart{}, fmt.Errorf("%w: quantity delta %d is out of range", ErrInvalidRequest, delta)
	}

	cart, ok := state.Get()
	if !ok {
		if delta < 0 {
			return Cart{}, fmt.Errorf("%w: cannot reduce a non-existing cart item", ErrInvalidRequest)
		}

		return Cart{
			UserID: userID,
			Lines:  []CartLine{{ProductID: productID, Quantity: delta}},
		}, nil
	}

	lines := slices.Clone(cart.Lines)

	idx := slices.IndexFunc(lines, func(line CartLine) bool {
		return line.ProductID == productID
	})

	switch {
	case idx >= 0:
		newQuantity := int64(lines[idx].Quantity) + int64(delta)
		if newQuantity > MaxQuantity {
			return Cart{}, fmt.Errorf("%w: product[%s] quantity would exceed %d", ErrInvalidRequest, productID, MaxQuantity)
		}

		if newQuantity <= 0 {
			lines = slices.Delete(lines, idx, idx+1)
		} else {
			lines[idx].Quantity = int(newQuantity)
		}
	case delta > 0:
		lines = append(lines, CartLine{ProductID: productID, Quantity: delta})
	}

	cart.Lines = lines

	return cart, nil
}

// RemoveLine drops every line of productID regardless of quantity.
func RemoveLine(state CartState, productID uuid.UUID) (Cart, error) {
	cart, ok := state.Get()
	if !ok {
		return Cart{}, fmt.Errorf("%w: cart", ErrNotFound)
	}

	lines := make([]CartLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		if line.ProductID != productID {
			lines = append(lines, line)
		}
	}

	cart.Lines = lines

	return cart, nil
}

// Availability is how many more units of a product may be added on top of cartQuantity.
func Availability(cartQuantity, productStock int) int {
	return max(0, max(0, productStock)-cartQuantity)
}
