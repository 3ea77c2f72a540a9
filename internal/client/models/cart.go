package models

import (
	"sort"
	"strings"
)

// CartLine is one position of the in-progress order: a product plus a fixed
// customization set. Quantity is always >= 1 while the line exists.
type CartLine struct {
	Key            string
	ProductID      string
	Name           string
	UnitPrice      float64
	ImageURL       string
	Customizations []Customization
	Quantity       int
}

// LineKey derives the cart line identity from the product id and the set of
// customization ids. The derivation is order independent: the same product
// with the same customizations always maps to the same key, so repeated
// additions collapse into one line.
func LineKey(productID string, customizations []Customization) string {
	if len(customizations) == 0 {
		return productID
	}
	ids := make([]string, 0, len(customizations))
	for _, c := range customizations {
		ids = append(ids, c.ID)
	}
	sort.Strings(ids)
	return productID + "|" + strings.Join(ids, ",")
}

// UnitTotal is the price of a single unit including customizations.
func (l CartLine) UnitTotal() float64 {
	total := l.UnitPrice
	for _, c := range l.Customizations {
		total += c.Price
	}
	return total
}

// Total is the billable amount for the whole line.
func (l CartLine) Total() float64 {
	return float64(l.Quantity) * l.UnitTotal()
}
