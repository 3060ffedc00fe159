package payment

import (
	"context"
	"time"

	"voltcare/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// confirmationDelay is the user-visible pause before the confirmation
// notification fires. It is cosmetic and scheduled off the request path, so it
// never blocks the outcome itself.
const confirmationDelay = 3 * time.Second

// Resolve decides the outcome of a freshly created appointment. A computed
// total of zero or less settles as Free without ever invoking the gateway.
// Otherwise a payment intent is requested: a resolved amount of zero or a
// recognized free-appointment rejection also settles as Free; a positive
// amount with a redirect URL settles as AwaitingPayment; anything else fails
// with the collected collaborator messages.
func (r *DefaultResolver) Resolve(ctx context.Context, token, customerID string, appt *models.Appointment, total int64) *models.AppointmentOutcome {
	if total <= 0 {
		return r.finalizeFree(ctx, customerID, appt)
	}

	intent, err := r.Gateway.CreateIntent(ctx, token, appt.AppointmentID, total, r.Method, r.ReturnURL)
	if err != nil {
		if IsFreeAppointmentRejection(err) {
			r.Logger.Info("payment intent rejected as free appointment",
				zap.Int64("appointmentID", appt.AppointmentID), zap.Error(err))
			return r.finalizeFree(ctx, customerID, appt)
		}
		r.Logger.Error("payment intent creation failed",
			zap.Int64("appointmentID", appt.AppointmentID), zap.Error(err))
		return &models.AppointmentOutcome{
			Kind:          models.OutcomeFailed,
			AppointmentID: appt.AppointmentID,
			Reasons:       failureMessages(err),
		}
	}

	// The backend may resolve the authoritative amount to zero even though
	// the client-side estimate was positive; treat that as Free and skip the
	// redirect entirely.
	if intent.Amount <= 0 {
		return r.finalizeFree(ctx, customerID, appt)
	}

	// A positive amount without a redirect URL leaves the user with nothing to
	// act on; surface it as a failure instead of a dead-end outcome.
	if intent.PaymentURL == "" {
		r.Logger.Error("payment intent carries no redirect URL",
			zap.Int64("appointmentID", appt.AppointmentID),
			zap.String("paymentCode", intent.PaymentCode))
		return &models.AppointmentOutcome{
			Kind:          models.OutcomeFailed,
			AppointmentID: appt.AppointmentID,
			Reasons:       []string{"Payment could not be prepared. Please try again."},
		}
	}

	outcome := &models.AppointmentOutcome{
		Kind:          models.OutcomeAwaitingPayment,
		AppointmentID: appt.AppointmentID,
		PaymentCode:   intent.PaymentCode,
		PaymentURL:    intent.PaymentURL,
		Amount:        intent.Amount,
	}
	r.record(ctx, customerID, outcome)
	return outcome
}

// finalizeFree settles a zero-cost appointment: the cart and draft are
// cleared, the outcome recorded, and the confirmation notification scheduled
// after a short cosmetic delay.
func (r *DefaultResolver) finalizeFree(ctx context.Context, customerID string, appt *models.Appointment) *models.AppointmentOutcome {
	outcome := &models.AppointmentOutcome{
		Kind:          models.OutcomeFree,
		AppointmentID: appt.AppointmentID,
	}

	if err := r.Cart.Clear(ctx, customerID); err != nil {
		r.Logger.Error("failed to clear cart after free booking", zap.Error(err))
	}
	if err := r.Drafts.Clear(ctx, customerID); err != nil {
		r.Logger.Error("failed to clear booking draft after free booking", zap.Error(err))
	}
	r.record(ctx, customerID, outcome)

	if r.Scheduler != nil {
		payload := models.ConfirmationPayload{
			CustomerID:    customerID,
			AppointmentID: appt.AppointmentID,
		}
		if err := r.Scheduler.ScheduleConfirmation(payload, confirmationDelay); err != nil {
			r.Logger.Error("failed to schedule booking confirmation", zap.Error(err))
		}
	}
	return outcome
}

func (r *DefaultResolver) record(ctx context.Context, customerID string, outcome *models.AppointmentOutcome) {
	if r.Outcomes == nil {
		return
	}
	rec := models.OutcomeRecord{
		ID:            uuid.New().String(),
		CustomerID:    customerID,
		AppointmentID: outcome.AppointmentID,
		PaymentCode:   outcome.PaymentCode,
		Kind:          outcome.Kind,
		Amount:        outcome.Amount,
		Status:        "settled",
		CreatedAt:     time.Now().UnixMilli(),
	}
	if _, err := r.Outcomes.Create(ctx, rec); err != nil {
		r.Logger.Error("failed to record appointment outcome",
			zap.Int64("appointmentID", outcome.AppointmentID), zap.Error(err))
	}
}
