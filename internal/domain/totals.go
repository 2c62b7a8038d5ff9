package domain

import (
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PricedLine struct {
	ProductID uuid.UUID
	Quantity  int
	// Price is nil when the product is no longer in the catalog.
	Price *Money
}

// LineTotal is price * quantity, zero for a missing price or a non-positive quantity.
func LineTotal(price *Money, quantity int) Money {
	if price == nil {
		return Money{Amount: decimal.Zero}
	}

	if quantity <= 0 {
		return Money{Amount: decimal.Zero, Currency: price.Currency}
	}

	return price.Mul(quantity)
}

// CartTotals sums the line totals per currency, in the order each currency first appears.
// Lines without a price contribute nothing.
func CartTotals(lines []PricedLine) []Money {
	totals := make([]Money, 0, 1)

	for _, line := range lines {
		if line.Price == nil {
			continue
		}

		idx := slices.IndexFunc(totals, func(m Money) bool {
			return m.Currency == line.Price.Currency
		})
		if idx < 0 {
			totals = append(totals, Money{Amount: decimal.Zero, Currency: line.Price.Currency})
			idx = len(totals) - 1
		}

		totals[idx].Amount = totals[idx].Amount.Add(LineTotal(line.Price, line.Quantity).Amount)
	}

	return totals
}

// CartTotal is the total in the currency of the first priced line. Lines priced in any
// other currency are left out of it and only show up in CartTotals.
func CartTotal(lines []PricedLine) Money {
	totals := CartTotals(lines)
	if len(totals) == 0 {
		return Money{Amount: decimal.Zero}
	}

	return totals[0]
}
