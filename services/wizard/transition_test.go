package wizard

import (
	"testing"

	"voltcare/models"
)

func TestNextBlockedWithoutVehicle(t *testing.T) {
	s := models.WizardSession{Step: models.StepSelectVehicle}

	got, effects, err := Apply(s, Next{})
	if err == nil {
		t.Fatal("expected a validation error, got nil")
	}
	if !IsValidation(err) {
		t.Errorf("got %T, want *ValidationError", err)
	}
	if got.Step != models.StepSelectVehicle {
		t.Errorf("step advanced to %v despite failed guard", got.Step)
	}
	if len(effects) != 0 {
		t.Errorf("got %d effects, want 0", len(effects))
	}
}

func TestNextBlockedWithoutSlot(t *testing.T) {
	s := models.WizardSession{
		Step:            models.StepSelectCenterAndTime,
		VehicleID:       42,
		ServiceCenterID: 7,
		Date:            "2025-03-01",
	}

	got, _, err := Apply(s, Next{})
	if !IsValidation(err) {
		t.Fatalf("got err %v, want validation error on missing slot", err)
	}
	if got.Step != models.StepSelectCenterAndTime {
		t.Errorf("step = %v, want unchanged", got.Step)
	}
}

func TestSelectVehicleResetsSubscriptionAndLoads(t *testing.T) {
	s := models.WizardSession{Step: models.StepSelectVehicle, VehicleID: 1, SubscriptionID: 99}

	got, effects, err := Apply(s, SelectVehicle{VehicleID: 2})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.VehicleID != 2 || got.SubscriptionID != 0 {
		t.Errorf("got vehicle=%d sub=%d, want 2 and 0", got.VehicleID, got.SubscriptionID)
	}
	if len(effects) != 1 {
		t.Fatalf("got %d effects, want 1", len(effects))
	}
	if _, ok := effects[0].(LoadSubscriptions); !ok {
		t.Errorf("got effect %T, want LoadSubscriptions", effects[0])
	}
}

func TestReselectingSameVehicleIsNoOp(t *testing.T) {
	s := models.WizardSession{VehicleID: 2, SubscriptionID: 99}

	got, effects, err := Apply(s, SelectVehicle{VehicleID: 2})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.SubscriptionID != 99 {
		t.Errorf("subscription reset to %d on a no-op reselect", got.SubscriptionID)
	}
	if len(effects) != 0 {
		t.Errorf("got %d effects, want 0", len(effects))
	}
}

func TestDateChangeInvalidatesSlotSelection(t *testing.T) {
	s := models.WizardSession{
		Step:            models.StepSelectCenterAndTime,
		ServiceCenterID: 7,
		Date:            "2025-03-01",
		TimeSlotID:      101,
		Slots:           []models.TimeSlot{{ID: 101}},
		SlotGeneration:  3,
	}

	got, effects, err := Apply(s, SelectDate{Date: "2025-03-02"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.TimeSlotID != 0 {
		t.Errorf("TimeSlotID = %d, want 0 after date change", got.TimeSlotID)
	}
	if got.Slots != nil {
		t.Error("cached slot list survived a date change")
	}
	if got.SlotGeneration != 4 {
		t.Errorf("SlotGeneration = %d, want 4", got.SlotGeneration)
	}
	if len(effects) != 1 {
		t.Fatalf("got %d effects, want 1", len(effects))
	}
	fetch, ok := effects[0].(FetchSlots)
	if !ok {
		t.Fatalf("got effect %T, want FetchSlots", effects[0])
	}
	if fetch.Generation != 4 || fetch.CenterID != 7 || fetch.Date != "2025-03-02" {
		t.Errorf("FetchSlots = %+v, want gen 4 for center 7 on 2025-03-02", fetch)
	}
}

func TestCenterChangeFetchCarriesNewGeneration(t *testing.T) {
	s := models.WizardSession{
		Step:            models.StepSelectCenterAndTime,
		ServiceCenterID: 7,
		Date:            "2025-03-01",
		TimeSlotID:      101,
		SlotGeneration:  2,
	}

	got, effects, err := Apply(s, SelectCenter{CenterID: 8})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(effects) != 1 {
		t.Fatalf("got %d effects, want 1", len(effects))
	}
	fetch, ok := effects[0].(FetchSlots)
	if !ok {
		t.Fatalf("got effect %T, want FetchSlots", effects[0])
	}
	// A fetch tagged with a superseded generation would have its response
	// discarded on arrival, so the effect must carry the bumped generation.
	if fetch.Generation != got.SlotGeneration {
		t.Fatalf("fetch generation = %d, session generation = %d; want equal", fetch.Generation, got.SlotGeneration)
	}

	next, _, err := Apply(got, SlotsLoaded{Generation: fetch.Generation, Slots: []models.TimeSlot{{ID: 300}}})
	if err != nil {
		t.Fatalf("Apply(SlotsLoaded): %v", err)
	}
	if len(next.Slots) != 1 || next.Slots[0].ID != 300 {
		t.Errorf("slots = %+v, want the freshly fetched list applied", next.Slots)
	}
}

func TestCenterChangeWithoutDateSkipsFetch(t *testing.T) {
	s := models.WizardSession{Step: models.StepSelectCenterAndTime}

	got, effects, err := Apply(s, SelectCenter{CenterID: 7})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.ServiceCenterID != 7 {
		t.Errorf("ServiceCenterID = %d, want 7", got.ServiceCenterID)
	}
	if len(effects) != 0 {
		t.Errorf("got %d effects, want 0 until a date is chosen", len(effects))
	}
}

func TestStaleSlotsLoadedIsDiscarded(t *testing.T) {
	s := models.WizardSession{SlotGeneration: 5, Slots: []models.TimeSlot{{ID: 200}}}

	got, _, err := Apply(s, SlotsLoaded{Generation: 4, Slots: []models.TimeSlot{{ID: 101}}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(got.Slots) != 1 || got.Slots[0].ID != 200 {
		t.Errorf("stale response overwrote slots: %+v", got.Slots)
	}
}

func TestCurrentSlotsLoadedIsApplied(t *testing.T) {
	s := models.WizardSession{SlotGeneration: 5}

	got, _, err := Apply(s, SlotsLoaded{Generation: 5, Slots: []models.TimeSlot{{ID: 101}}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(got.Slots) != 1 || got.Slots[0].ID != 101 {
		t.Errorf("got slots %+v, want [101]", got.Slots)
	}
}

func TestEmptyCartDivertsToCatalog(t *testing.T) {
	s := models.WizardSession{Step: models.StepSelectServices, VehicleID: 42}

	got, effects, err := Apply(s, Next{CartEmpty: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.Step != models.StepSelectServices {
		t.Errorf("step = %v, want unchanged on side-exit", got.Step)
	}
	if len(effects) != 1 {
		t.Fatalf("got %d effects, want 1", len(effects))
	}
	if _, ok := effects[0].(SideExitToCatalog); !ok {
		t.Errorf("got effect %T, want SideExitToCatalog", effects[0])
	}
}

func TestNonEmptyCartAdvancesToReview(t *testing.T) {
	s := models.WizardSession{Step: models.StepSelectServices}

	got, effects, err := Apply(s, Next{CartEmpty: false})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.Step != models.StepReviewSummary {
		t.Errorf("step = %v, want %v", got.Step, models.StepReviewSummary)
	}
	if len(effects) != 0 {
		t.Errorf("got %d effects, want 0", len(effects))
	}
}

func TestBackStopsAtFirstStep(t *testing.T) {
	s := models.WizardSession{Step: models.StepSelectVehicle}

	got, _, err := Apply(s, Back{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.Step != models.StepSelectVehicle {
		t.Errorf("step = %v, want %v", got.Step, models.StepSelectVehicle)
	}
}

func TestBackBlockedAfterSettlement(t *testing.T) {
	s := models.WizardSession{
		Step:    models.StepPayment,
		Outcome: &models.AppointmentOutcome{Kind: models.OutcomeFree},
	}

	got, _, err := Apply(s, Back{})
	if !IsValidation(err) {
		t.Fatalf("got err %v, want validation error after settlement", err)
	}
	if got.Step != models.StepPayment {
		t.Errorf("step = %v, want unchanged", got.Step)
	}
}

func TestNextBeyondPaymentIsRejected(t *testing.T) {
	s := models.WizardSession{Step: models.StepPayment}

	if _, _, err := Apply(s, Next{}); !IsValidation(err) {
		t.Errorf("got err %v, want validation error past the last step", err)
	}
}
