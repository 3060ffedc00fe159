package wizard

import (
	"voltcare/models"
)

// Event is an input to the wizard state machine.
type Event interface{ isEvent() }

// SelectVehicle picks the vehicle to be serviced.
type SelectVehicle struct{ VehicleID int64 }

// SelectCenter picks a service center. Changing the center invalidates any
// previously chosen time slot.
type SelectCenter struct{ CenterID int64 }

// SelectDate picks the appointment date ("YYYY-MM-DD"). Changing the date
// invalidates any previously chosen time slot.
type SelectDate struct{ Date string }

// SelectSlot picks a time slot for the current (center, date) pair.
type SelectSlot struct{ SlotID int64 }

// SetNotes attaches free-text notes to the booking.
type SetNotes struct{ Notes string }

// Next advances to the following step if the current step's guard passes.
// CartEmpty is supplied by the orchestrator so the transition stays pure.
type Next struct{ CartEmpty bool }

// Back returns to the previous step.
type Back struct{}

// SlotsLoaded delivers a slot fetch result. Responses carrying a generation
// older than the session's current one are discarded.
type SlotsLoaded struct {
	Generation uint64
	Slots      []models.TimeSlot
}

func (SelectVehicle) isEvent() {}
func (SelectCenter) isEvent()  {}
func (SelectDate) isEvent()    {}
func (SelectSlot) isEvent()    {}
func (SetNotes) isEvent()      {}
func (Next) isEvent()          {}
func (Back) isEvent()          {}
func (SlotsLoaded) isEvent()   {}

// Effect is a side effect requested by a transition, executed by the
// orchestrating service after the new state is accepted.
type Effect interface{ isEffect() }

// FetchSlots asks for the slot list of the given (center, date) pair. The
// generation tags the eventual SlotsLoaded response.
type FetchSlots struct {
	CenterID   int64
	Date       string
	Generation uint64
}

// LoadSubscriptions asks for the active subscriptions of the selected vehicle.
type LoadSubscriptions struct{ VehicleID int64 }

// SideExitToCatalog diverts the user to the product catalog, persisting the
// current wizard progress as a draft first.
type SideExitToCatalog struct{}

func (FetchSlots) isEffect()        {}
func (LoadSubscriptions) isEffect() {}
func (SideExitToCatalog) isEffect() {}

// Apply is the pure transition function of the booking wizard. It returns the
// updated session, the side effects to execute, and a ValidationError when a
// step guard rejects the event. The input session is not mutated.
func Apply(s models.WizardSession, ev Event) (models.WizardSession, []Effect, error) {
	switch e := ev.(type) {
	case SelectVehicle:
		if e.VehicleID <= 0 {
			return s, nil, NewValidationError("vehicle", "Please select a vehicle")
		}
		if e.VehicleID != s.VehicleID {
			s.VehicleID = e.VehicleID
			s.SubscriptionID = 0
			return s, []Effect{LoadSubscriptions{VehicleID: e.VehicleID}}, nil
		}
		return s, nil, nil

	case SelectCenter:
		if e.CenterID <= 0 {
			return s, nil, NewValidationError("serviceCenter", "Please select a service center")
		}
		if e.CenterID == s.ServiceCenterID {
			return s, nil, nil
		}
		s.ServiceCenterID = e.CenterID
		s = invalidateSlots(s)
		return s, slotFetch(s), nil

	case SelectDate:
		if e.Date == "" {
			return s, nil, NewValidationError("date", "Please select a date")
		}
		if e.Date == s.Date {
			return s, nil, nil
		}
		s.Date = e.Date
		s = invalidateSlots(s)
		return s, slotFetch(s), nil

	case SelectSlot:
		if e.SlotID <= 0 {
			return s, nil, NewValidationError("timeSlot", "Please select a time slot")
		}
		s.TimeSlotID = e.SlotID
		return s, nil, nil

	case SetNotes:
		s.Notes = e.Notes
		return s, nil, nil

	case SlotsLoaded:
		// A response for a superseded (center, date) pair must not overwrite
		// a newer selection.
		if e.Generation != s.SlotGeneration {
			return s, nil, nil
		}
		s.Slots = e.Slots
		return s, nil, nil

	case Next:
		return advance(s, e.CartEmpty)

	case Back:
		if s.Outcome != nil {
			return s, nil, NewValidationError("step", "Booking already settled")
		}
		if s.Step > models.StepSelectVehicle {
			s.Step--
		}
		return s, nil, nil

	default:
		return s, nil, NewValidationError("event", "Unknown wizard event")
	}
}

// invalidateSlots clears the chosen slot and cached slot list after the
// (center, date) pair changed, and bumps the fetch generation so in-flight
// responses for the old pair are discarded.
func invalidateSlots(s models.WizardSession) models.WizardSession {
	s.TimeSlotID = 0
	s.Slots = nil
	s.SlotGeneration++
	return s
}

func slotFetch(s models.WizardSession) []Effect {
	if s.ServiceCenterID == 0 || s.Date == "" {
		return nil
	}
	return []Effect{FetchSlots{CenterID: s.ServiceCenterID, Date: s.Date, Generation: s.SlotGeneration}}
}

func advance(s models.WizardSession, cartEmpty bool) (models.WizardSession, []Effect, error) {
	switch s.Step {
	case models.StepSelectVehicle:
		if s.VehicleID == 0 {
			return s, nil, NewValidationError("vehicle", "Please select a vehicle")
		}
		s.Step = models.StepSelectCenterAndTime
		return s, nil, nil

	case models.StepSelectCenterAndTime:
		if s.ServiceCenterID == 0 {
			return s, nil, NewValidationError("serviceCenter", "Please select a service center")
		}
		if s.Date == "" {
			return s, nil, NewValidationError("date", "Please select a date")
		}
		if s.TimeSlotID == 0 {
			return s, nil, NewValidationError("timeSlot", "Please select a time slot")
		}
		s.Step = models.StepSelectServices
		return s, nil, nil

	case models.StepSelectServices:
		if cartEmpty {
			// Not a failure: divert the user to the catalog and let the
			// wizard resume from a draft once an item has been added.
			return s, []Effect{SideExitToCatalog{}}, nil
		}
		s.Step = models.StepReviewSummary
		return s, nil, nil

	case models.StepReviewSummary:
		s.Step = models.StepPayment
		return s, nil, nil

	case models.StepPayment:
		return s, nil, NewValidationError("step", "No further step; submit the booking")

	default:
		return s, nil, NewValidationError("step", "Unknown wizard step")
	}
}
