package cart

import (
	"context"

	"voltcare/models"
)

// CartStore persists one cart per customer session.
type CartStore interface {
	// Get returns the customer's cart, or an empty cart if none exists yet.
	Get(ctx context.Context, customerID string) (*models.Cart, error)
	// Save overwrites the stored cart.
	Save(ctx context.Context, c *models.Cart) error
	// Clear discards the stored cart.
	Clear(ctx context.Context, customerID string) error
}
