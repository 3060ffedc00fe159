package models

import "time"

// WizardStep identifies one of the five ordered booking wizard steps.
type WizardStep int

const (
	StepSelectVehicle WizardStep = iota + 1
	StepSelectCenterAndTime
	StepSelectServices
	StepReviewSummary
	StepPayment
)

func (s WizardStep) String() string {
	switch s {
	case StepSelectVehicle:
		return "selectVehicle"
	case StepSelectCenterAndTime:
		return "selectCenterAndTime"
	case StepSelectServices:
		return "selectServices"
	case StepReviewSummary:
		return "reviewSummary"
	case StepPayment:
		return "payment"
	default:
		return "unknown"
	}
}

// WizardSession holds the booking wizard's progress between requests.
type WizardSession struct {
	SessionID       string     `json:"sessionId"`
	CustomerID      string     `json:"customerId"`
	Step            WizardStep `json:"step"`
	VehicleID       int64      `json:"vehicleId,omitempty"`
	ServiceCenterID int64      `json:"serviceCenterId,omitempty"`
	Date            string     `json:"date,omitempty"` // "YYYY-MM-DD"
	TimeSlotID      int64      `json:"timeSlotId,omitempty"`
	Notes           string     `json:"notes,omitempty"`

	// SlotGeneration is bumped whenever the (center, date) pair changes. Slot
	// fetch responses carry the generation they were requested under; a
	// response with a stale generation is discarded.
	SlotGeneration uint64     `json:"slotGeneration"`
	Slots          []TimeSlot `json:"slots,omitempty"`

	// SubscriptionID is the active subscription for the selected vehicle, if any.
	SubscriptionID int64 `json:"subscriptionId,omitempty"`

	// Submitting blocks a second submission while one is in flight.
	Submitting bool `json:"submitting"`

	Outcome   *AppointmentOutcome `json:"outcome,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
}

// Snapshot captures the session fields that survive a side-exit to the catalog.
func (s *WizardSession) Snapshot(now time.Time) BookingDraft {
	return BookingDraft{
		CurrentStep:             s.Step,
		SelectedVehicleID:       s.VehicleID,
		SelectedServiceCenterID: s.ServiceCenterID,
		SelectedDate:            s.Date,
		SelectedTimeSlotID:      s.TimeSlotID,
		Notes:                   s.Notes,
		SavedAtEpochMillis:      now.UnixMilli(),
	}
}

// ApplyDraft restores a saved snapshot into the session.
func (s *WizardSession) ApplyDraft(d BookingDraft) {
	s.Step = d.CurrentStep
	s.VehicleID = d.SelectedVehicleID
	s.ServiceCenterID = d.SelectedServiceCenterID
	s.Date = d.SelectedDate
	s.TimeSlotID = d.SelectedTimeSlotID
	s.Notes = d.Notes
}
