package draft

import (
	"context"
	"testing"

	"voltcare/models"
)

func TestSaveOverwritesPriorDraft(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore()

	a := models.BookingDraft{CurrentStep: models.StepSelectCenterAndTime, SelectedVehicleID: 1}
	b := models.BookingDraft{CurrentStep: models.StepSelectServices, SelectedVehicleID: 2}

	if err := store.Save(ctx, "cust-1", a); err != nil {
		t.Fatalf("Save(a): %v", err)
	}
	if err := store.Save(ctx, "cust-1", b); err != nil {
		t.Fatalf("Save(b): %v", err)
	}

	got, err := store.RestoreAndClear(ctx, "cust-1")
	if err != nil {
		t.Fatalf("RestoreAndClear: %v", err)
	}
	if got == nil {
		t.Fatal("RestoreAndClear returned nil, want the latest draft")
	}
	if got.SelectedVehicleID != 2 || got.CurrentStep != models.StepSelectServices {
		t.Errorf("got draft %+v, want the later save", got)
	}
}

func TestRestoreIsReadOnce(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore()

	d := models.BookingDraft{CurrentStep: models.StepSelectServices, SelectedVehicleID: 42}
	if err := store.Save(ctx, "cust-1", d); err != nil {
		t.Fatalf("Save: %v", err)
	}

	first, err := store.RestoreAndClear(ctx, "cust-1")
	if err != nil || first == nil {
		t.Fatalf("first RestoreAndClear = %v, %v; want draft, nil", first, err)
	}
	second, err := store.RestoreAndClear(ctx, "cust-1")
	if err != nil {
		t.Fatalf("second RestoreAndClear: %v", err)
	}
	if second != nil {
		t.Errorf("second RestoreAndClear = %+v, want nil", second)
	}
}

func TestRestoreWithNoDraftReturnsNil(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore()

	got, err := store.RestoreAndClear(ctx, "nobody")
	if err != nil {
		t.Fatalf("RestoreAndClear: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore()

	if err := store.Save(ctx, "cust-1", models.BookingDraft{SelectedVehicleID: 7}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	for i := 0; i < 2; i++ {
		has, err := store.PeekHasDraft(ctx, "cust-1")
		if err != nil {
			t.Fatalf("PeekHasDraft: %v", err)
		}
		if !has {
			t.Fatalf("PeekHasDraft = false on check %d, want true", i+1)
		}
	}
}

func TestClearDiscardsDraft(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore()

	if err := store.Save(ctx, "cust-1", models.BookingDraft{SelectedVehicleID: 7}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(ctx, "cust-1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	has, err := store.PeekHasDraft(ctx, "cust-1")
	if err != nil {
		t.Fatalf("PeekHasDraft: %v", err)
	}
	if has {
		t.Error("draft still present after Clear")
	}
}
