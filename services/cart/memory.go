package cart

import (
	"context"
	"sync"

	"voltcare/models"
)

// MemoryCartStore is an in-process CartStore used in tests and local
// development without Redis.
type MemoryCartStore struct {
	mu    sync.Mutex
	carts map[string]models.Cart
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string]models.Cart)}
}

func (s *MemoryCartStore) Get(ctx context.Context, customerID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[customerID]; ok {
		copied := c
		copied.Items = append([]models.CartItem(nil), c.Items...)
		return &copied, nil
	}
	return &models.Cart{CustomerID: customerID}, nil
}

func (s *MemoryCartStore) Save(ctx context.Context, c *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *c
	stored.Items = append([]models.CartItem(nil), c.Items...)
	s.carts[c.CustomerID] = stored
	return nil
}

func (s *MemoryCartStore) Clear(ctx context.Context, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, customerID)
	return nil
}
