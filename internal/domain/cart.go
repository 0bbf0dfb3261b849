package domain

import "github.com/shopspring/decimal"

// CartLine is one product plus quantity in an in-progress sale. Cart contents
// are never persisted; they only exist in the checkout request.
type CartLine struct {
	Product  Product
	Quantity int
}

// LineTotal is quantity times current catalog price.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartTotal sums line totals.
func CartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal())
	}
	return total
}
