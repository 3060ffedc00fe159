package draft

import (
	"context"
	"encoding/json"
	"fmt"

	"voltcare/models"
	"voltcare/utils"

	"github.com/go-redis/redis/v8"
)

// RedisDraftStore keeps booking drafts as JSON blobs in Redis with session TTL.
type RedisDraftStore struct {
	Cache *redis.Client
}

// NewRedisDraftStore returns a DraftStore backed by the session cache.
func NewRedisDraftStore(cache *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{Cache: cache}
}

func draftKey(customerID string) string {
	return utils.DraftKeyPrefix + customerID
}

// Save stores a timestamped snapshot, overwriting any existing draft.
func (s *RedisDraftStore) Save(ctx context.Context, customerID string, d models.BookingDraft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal booking draft: %w", err)
	}
	if err := s.Cache.Set(ctx, draftKey(customerID), data, utils.SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking draft: %w", err)
	}
	return nil
}

// RestoreAndClear returns the stored draft and clears the slot in one
// round-trip (GETDEL), so two concurrent restores cannot both see it.
func (s *RedisDraftStore) RestoreAndClear(ctx context.Context, customerID string) (*models.BookingDraft, error) {
	data, err := s.Cache.GetDel(ctx, draftKey(customerID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to restore booking draft: %w", err)
	}
	var d models.BookingDraft
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, fmt.Errorf("failed to parse booking draft: %w", err)
	}
	return &d, nil
}

// PeekHasDraft is a non-destructive existence check.
func (s *RedisDraftStore) PeekHasDraft(ctx context.Context, customerID string) (bool, error) {
	n, err := s.Cache.Exists(ctx, draftKey(customerID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check booking draft: %w", err)
	}
	return n > 0, nil
}

// Clear discards the draft without reading it.
func (s *RedisDraftStore) Clear(ctx context.Context, customerID string) error {
	if err := s.Cache.Del(ctx, draftKey(customerID)).Err(); err != nil {
		return fmt.Errorf("failed to clear booking draft: %w", err)
	}
	return nil
}
