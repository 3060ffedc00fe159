package wizard

import (
	"context"

	"voltcare/models"
	"voltcare/services/cart"
	"voltcare/services/draft"

	"go.uber.org/zap"
)

// SlotDirectory lists the bookable time slots for a center and date.
type SlotDirectory interface {
	ListAvailableSlots(ctx context.Context, token string, centerID int64, date string) ([]models.TimeSlot, error)
}

// SubscriptionDirectory lists a vehicle's active package subscriptions.
type SubscriptionDirectory interface {
	ListActiveSubscriptionsForVehicle(ctx context.Context, token string, vehicleID int64) ([]models.Subscription, error)
}

// AppointmentBooking creates appointments on the platform.
type AppointmentBooking interface {
	CreateAppointment(ctx context.Context, token string, req models.BookingRequest) (*models.Appointment, error)
}

// PaymentResolver settles a freshly created appointment into an outcome.
type PaymentResolver interface {
	Resolve(ctx context.Context, token, customerID string, appt *models.Appointment, total int64) *models.AppointmentOutcome
}

// EventResult is the orchestrator's answer to a wizard event.
type EventResult struct {
	Session *models.WizardSession
	// SideExit is set when the empty-cart guard diverted the user to the
	// catalog; the client should navigate there and return later.
	SideExit bool
}

// WizardService drives the five-step booking flow.
type WizardService interface {
	// StartSession opens a wizard session. A deep-linked vehicle starts the
	// wizard directly at step two and takes priority over any stored draft;
	// otherwise a pending draft is consumed and the saved step resumed.
	StartSession(ctx context.Context, token, customerID string, deepLinkVehicleID int64) (*models.WizardSession, error)
	GetSession(ctx context.Context, customerID, sessionID string) (*models.WizardSession, error)
	// HandleEvent applies a wizard event and executes its effects.
	HandleEvent(ctx context.Context, token, customerID, sessionID string, ev Event) (*EventResult, error)
	// Submit validates the session, books the appointment and resolves payment.
	Submit(ctx context.Context, token, customerID, sessionID string) (*models.AppointmentOutcome, error)
	// Cancel discards the session and any pending draft.
	Cancel(ctx context.Context, customerID, sessionID string) error
}

// DefaultWizardService implements WizardService.
type DefaultWizardService struct {
	Sessions      SessionStore
	Cart          cart.CartStore
	Drafts        draft.DraftStore
	Slots         SlotDirectory
	Subscriptions SubscriptionDirectory
	Appointments  AppointmentBooking
	Payments      PaymentResolver
	Logger        *zap.Logger
}
