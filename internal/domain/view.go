package domain

import (
	"github.com/google/uuid"
)

// CartView is a cart resolved against the catalog for a single request.
type CartView struct {
	UserID string
	Lines  []CartViewLine
	Total  Money
	// Totals has one entry per currency present in the cart, Total is Totals[0].
	Totals []Money
}

type CartViewLine struct {
	ProductID uuid.UUID
	Quantity  int
	// Product is nil when the product was removed from the catalog.
	Product   *Product
	LineTotal Money
	Available int
}

// NewCartView resolves cart lines against products. Products missing from the map are
// kept as unresolved lines that contribute nothing to the total.
func NewCartView(cart Cart, products map[uuid.UUID]Product) CartView {
	view := CartView{
		UserID: cart.UserID,
		Lines:  make([]CartViewLine, 0, len(cart.Lines)),
	}

	priced := make([]PricedLine, 0, len(cart.Lines))

	for _, line := range cart.Lines {
		viewLine := CartViewLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}

		var price *Money
		if product, ok := products[line.ProductID]; ok {
			viewLine.Product = &product
			viewLine.Available = Availability(line.Quantity, product.Stock)
			price = &product.Price
		}
		viewLine.LineTotal = LineTotal(price, line.Quantity)

		view.Lines = append(view.Lines, viewLine)
		priced = append(priced, PricedLine{ProductID: line.ProductID, Quantity: line.Quantity, Price: price})
	}

	view.Totals = CartTotals(priced)
	view.Total = CartTotal(priced)

	return view
}
