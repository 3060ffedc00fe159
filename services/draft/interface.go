package draft

import (
	"context"

	"voltcare/models"
)

// DraftStore keeps at most one booking draft per customer. Saving overwrites
// any prior draft; restoring is destructive so a stale draft can never be
// re-applied on a later unrelated visit.
type DraftStore interface {
	// Save stores a timestamped snapshot, overwriting any existing draft.
	Save(ctx context.Context, customerID string, d models.BookingDraft) error
	// RestoreAndClear returns the stored draft and atomically clears the slot.
	// Returns nil when no draft exists.
	RestoreAndClear(ctx context.Context, customerID string) (*models.BookingDraft, error)
	// PeekHasDraft is a non-destructive existence check.
	PeekHasDraft(ctx context.Context, customerID string) (bool, error)
	// Clear discards the draft without reading it.
	Clear(ctx context.Context, customerID string) error
}
