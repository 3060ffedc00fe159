package models

// BookingDraft is a snapshot of wizard progress, saved when the user is
// diverted from the wizard to the product catalog. At most one draft exists per
// customer; saving overwrites any prior draft.
type BookingDraft struct {
	CurrentStep             WizardStep `json:"currentStep"`
	SelectedVehicleID       int64      `json:"selectedVehicleId"`
	SelectedServiceCenterID int64      `json:"selectedServiceCenterId"`
	SelectedDate            string     `json:"selectedDate"` // "YYYY-MM-DD"
	SelectedTimeSlotID      int64      `json:"selectedTimeSlotId"`
	Notes                   string     `json:"notes"`
	SavedAtEpochMillis      int64      `json:"savedAtEpochMillis"`
}
