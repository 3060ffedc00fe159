package cart

import "voltcare/models"

// EffectiveUnitPrice returns the price one unit of the entry contributes to
// the total. A service entry is covered (priced at zero) when an active
// subscription includes it, or when the catalog flagged it as already
// included. A package prefers its discounted total price over its base price.
// Packages are never covered by a subscription.
func EffectiveUnitPrice(item models.CartItem, subs []models.Subscription) int64 {
	if item.IsPackage {
		if item.DiscountedPrice > 0 {
			return item.DiscountedPrice
		}
		return item.UnitPrice
	}
	if item.AlreadyIncluded {
		return 0
	}
	for _, sub := range subs {
		if sub.Covers(item.ID) {
			return 0
		}
	}
	return item.UnitPrice
}

// TotalPrice sums the coverage-aware price of every entry. Package quantity is
// informational: a package contributes its unit price exactly once.
func TotalPrice(c *models.Cart, subs []models.Subscription) int64 {
	var total int64
	for _, item := range c.Items {
		price := EffectiveUnitPrice(item, subs)
		if item.IsPackage {
			total += price
		} else {
			total += price * int64(item.Quantity)
		}
	}
	return total
}

// PricedItem is a cart entry annotated with its coverage-aware price.
type PricedItem struct {
	models.CartItem
	EffectivePrice int64 `json:"effectivePrice"`
	Covered        bool  `json:"covered"`
}

// Summary is the priced view of a cart returned to the client.
type Summary struct {
	Items          []PricedItem `json:"items"`
	TotalItemCount int          `json:"totalItemCount"`
	TotalPrice     int64        `json:"totalPrice"`
}

// Summarize prices every entry against the customer's active subscriptions.
func Summarize(c *models.Cart, subs []models.Subscription) Summary {
	s := Summary{TotalItemCount: c.TotalItemCount()}
	for _, item := range c.Items {
		price := EffectiveUnitPrice(item, subs)
		s.Items = append(s.Items, PricedItem{
			CartItem:       item,
			EffectivePrice: price,
			Covered:        !item.IsPackage && price == 0 && item.UnitPrice > 0,
		})
		if item.IsPackage {
			s.TotalPrice += price
		} else {
			s.TotalPrice += price * int64(item.Quantity)
		}
	}
	return s
}
