package payment

import (
	"context"
	"time"

	"voltcare/models"
	outcomeRepo "voltcare/database/repository/outcome"
	"voltcare/services/cart"
	"voltcare/services/draft"

	"go.uber.org/zap"
)

// PaymentGateway creates and queries payment intents. The amount passed to
// CreateIntent is the client-side estimate; the gateway resolves the
// authoritative amount and may decide the appointment is free.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, token string, appointmentID, amount int64, method, returnURL string) (*models.PaymentIntent, error)
	GetByCode(ctx context.Context, token, code string) (*models.PaymentStatus, error)
}

// ConfirmationScheduler schedules the post-booking confirmation off the
// request path.
type ConfirmationScheduler interface {
	ScheduleConfirmation(payload models.ConfirmationPayload, delay time.Duration) error
}

// DefaultResolver settles a freshly created appointment into an
// AppointmentOutcome: Free, AwaitingPayment or Failed.
type DefaultResolver struct {
	Gateway   PaymentGateway
	Cart      cart.CartStore
	Drafts    draft.DraftStore
	Outcomes  outcomeRepo.OutcomeRepository
	Scheduler ConfirmationScheduler
	ReturnURL string
	Method    string // payment method hint, e.g. "card"
	Logger    *zap.Logger
}
