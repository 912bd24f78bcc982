// Package stats produces the weekly sales report: per-product quantity totals
// and revenue for one ISO week of orders.
package stats

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db/models"
)

// ProductTotal is one row of the weekly report. Unit and icon are display
// hints copied from the first cart line seen for the product.
type ProductTotal struct {
	Name     string `json:"name"`
	Unit     string `json:"unit,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Quantity int    `json:"quantity"`
}

// Summary is the aggregate for one week's orders.
type Summary struct {
	Products     []ProductTotal  `json:"products"`
	OrderCount   int             `json:"orderCount"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

// productCollator sorts report rows the way the storefront displays names.
var productCollator = collate.New(language.Spanish)

// Aggregate reduces the given orders into a Summary. It is a pure function:
// callers pass exactly the orders stored under one week id, and the
// aggregator neither filters by date nor re-derives week membership.
//
// Totals are keyed by product name. Historical orders may reference products
// whose ids changed since, so name is the stable join key for reporting;
// distinct products sharing a name merge into one row.
func Aggregate(orders []models.Order) Summary {
	byName := make(map[string]*ProductTotal)
	revenue := decimal.Zero

	for _, order := range orders {
		revenue = revenue.Add(order.Subtotal).Add(order.Shipping)
		// A nil cart is a tolerated legacy shape, not an error.
		for _, line := range order.Cart {
			total, ok := byName[line.Name]
			if !ok {
				total = &ProductTotal{Name: line.Name, Unit: line.Unit, Icon: line.Icon}
				byName[line.Name] = total
			}
			total.Quantity += line.Qty.Int()
		}
	}

	products := make([]ProductTotal, 0, len(byName))
	for _, total := range byName {
		products = append(products, *total)
	}
	sort.Slice(products, func(i, j int) bool {
		return productCollator.CompareString(products[i].Name, products[j].Name) < 0
	})

	return Summary{
		Products:     products,
		OrderCount:   len(orders),
		TotalRevenue: revenue,
	}
}
