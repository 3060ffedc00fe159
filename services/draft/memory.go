package draft

import (
	"context"
	"sync"

	"voltcare/models"
)

// MemoryDraftStore is an in-process DraftStore used in tests and local
// development without Redis.
type MemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string]models.BookingDraft
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string]models.BookingDraft)}
}

func (s *MemoryDraftStore) Save(ctx context.Context, customerID string, d models.BookingDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[customerID] = d
	return nil
}

func (s *MemoryDraftStore) RestoreAndClear(ctx context.Context, customerID string) (*models.BookingDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[customerID]
	if !ok {
		return nil, nil
	}
	delete(s.drafts, customerID)
	return &d, nil
}

func (s *MemoryDraftStore) PeekHasDraft(ctx context.Context, customerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.drafts[customerID]
	return ok, nil
}

func (s *MemoryDraftStore) Clear(ctx context.Context, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, customerID)
	return nil
}
