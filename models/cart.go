package models

import "time"

// CartItem is one selected purchasable unit. Identity is the (ID, IsPackage)
// pair: adding an existing item bumps its quantity instead of duplicating it.
type CartItem struct {
	ID              int64  `json:"id"`
	DisplayName     string `json:"displayName"`
	UnitPrice       int64  `json:"unitPrice"` // minor currency units
	DiscountedPrice int64  `json:"discountedPrice,omitempty"`
	Quantity        int    `json:"quantity"`
	IsPackage       bool   `json:"isPackage"`
	AlreadyIncluded bool   `json:"alreadyIncluded,omitempty"` // flagged covered by the catalog
}

// Cart holds the shopping selection for one customer session.
type Cart struct {
	CustomerID string     `json:"customerId"`
	Items      []CartItem `json:"items"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (c *Cart) find(id int64, isPackage bool) int {
	for i := range c.Items {
		if c.Items[i].ID == id && c.Items[i].IsPackage == isPackage {
			return i
		}
	}
	return -1
}

// AddService adds a service to the cart, or bumps its quantity when already present.
func (c *Cart) AddService(svc Service) {
	if i := c.find(svc.ID, false); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	c.Items = append(c.Items, CartItem{
		ID:          svc.ID,
		DisplayName: svc.Name,
		UnitPrice:   svc.Price,
		Quantity:    1,
	})
}

// AddPackage adds a package to the cart. Re-adding an existing package bumps the
// internal quantity counter, but package quantity never affects the subtotal.
func (c *Cart) AddPackage(pkg Package) {
	if i := c.find(pkg.ID, true); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	c.Items = append(c.Items, CartItem{
		ID:              pkg.ID,
		DisplayName:     pkg.Name,
		UnitPrice:       pkg.Price,
		DiscountedPrice: pkg.DiscountedPrice,
		Quantity:        1,
		IsPackage:       true,
	})
}

// MarkAlreadyIncluded flags a service entry as covered by the catalog.
func (c *Cart) MarkAlreadyIncluded(serviceID int64) {
	if i := c.find(serviceID, false); i >= 0 {
		c.Items[i].AlreadyIncluded = true
	}
}

// RemoveItem deletes the entry matching (id, isPackage). No-op if absent.
func (c *Cart) RemoveItem(id int64, isPackage bool) {
	if i := c.find(id, isPackage); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// SetQuantity overwrites the stored quantity for a service entry. A quantity of
// zero or less removes the entry regardless of kind. Package quantities are
// informational and cannot be changed through this path.
func (c *Cart) SetQuantity(id int64, quantity int, isPackage bool) {
	if quantity <= 0 {
		c.RemoveItem(id, isPackage)
		return
	}
	if i := c.find(id, isPackage); i >= 0 && !c.Items[i].IsPackage {
		c.Items[i].Quantity = quantity
	}
}

// TotalItemCount sums quantities across all entries.
func (c *Cart) TotalItemCount() int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}

// IsEmpty reports whether the cart holds no entries.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ServiceIDs returns the ids of all service entries.
func (c *Cart) ServiceIDs() []int64 {
	var ids []int64
	for _, it := range c.Items {
		if !it.IsPackage {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// PackageID returns the single package entry's id, if one is present.
func (c *Cart) PackageID() (int64, bool) {
	for _, it := range c.Items {
		if it.IsPackage {
			return it.ID, true
		}
	}
	return 0, false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}
