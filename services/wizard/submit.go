package wizard

import (
	"context"

	"voltcare/models"
	cartsvc "voltcare/services/cart"

	"go.uber.org/zap"
)

// Submit validates the session's selections in order, books the appointment on
// the platform, and delegates to payment resolution. The first failing
// validation aborts before any collaborator is called. A Failed outcome leaves
// the wizard on its current step so the user can correct inputs and resubmit.
func (w *DefaultWizardService) Submit(ctx context.Context, token, customerID, sessionID string) (*models.AppointmentOutcome, error) {
	sess, err := w.GetSession(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Outcome != nil {
		return nil, NewValidationError("submit", "This booking has already been settled")
	}
	if sess.Submitting {
		return nil, NewValidationError("submit", "A submission is already in progress")
	}

	// Precondition order: customer, vehicle, center, slot, cart contents.
	if customerID == "" {
		return nil, NewValidationError("customer", "Missing customer identity")
	}
	if sess.VehicleID == 0 {
		return nil, NewValidationError("vehicle", "Please select a vehicle")
	}
	if sess.ServiceCenterID == 0 {
		return nil, NewValidationError("serviceCenter", "Please select a service center")
	}
	if sess.TimeSlotID == 0 {
		return nil, NewValidationError("timeSlot", "Please select a time slot")
	}

	c, err := w.Cart.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	serviceIDs := c.ServiceIDs()
	packageID, hasPackage := c.PackageID()
	if len(serviceIDs) == 0 && !hasPackage {
		return nil, NewValidationError("cart", "Your cart is empty; add a service or package first")
	}

	// Mark the submission in flight so a concurrent request is rejected.
	sess.Submitting = true
	if err := w.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	release := func() {
		sess.Submitting = false
		if err := w.Sessions.Save(ctx, sess); err != nil {
			w.Logger.Error("failed to release submission guard", zap.Error(err))
		}
	}

	subs, err := w.Subscriptions.ListActiveSubscriptionsForVehicle(ctx, token, sess.VehicleID)
	if err != nil {
		release()
		return nil, err
	}
	sess.SubscriptionID = 0
	for _, sub := range subs {
		if sub.IsActive() {
			sess.SubscriptionID = sub.ID
			break
		}
	}

	// Double-subscribing to a package the customer already holds is blocked
	// at the catalog layer; refuse it here as well rather than booking it.
	if hasPackage {
		for _, sub := range subs {
			if sub.IsActive() && sub.PackageID == packageID {
				release()
				return nil, NewValidationError("package", "You already have an active subscription for this package")
			}
		}
	}

	total := cartsvc.TotalPrice(c, subs)

	req := models.BookingRequest{
		VehicleID:       sess.VehicleID,
		ServiceCenterID: sess.ServiceCenterID,
		Date:            sess.Date,
		TimeSlotID:      sess.TimeSlotID,
		ServiceIDs:      serviceIDs,
		SubscriptionID:  sess.SubscriptionID,
		Notes:           sess.Notes,
	}
	if hasPackage {
		req.PackageID = packageID
	}

	appt, err := w.Appointments.CreateAppointment(ctx, token, req)
	if err != nil {
		release()
		return nil, err
	}
	w.Logger.Info("appointment created",
		zap.Int64("appointmentID", appt.AppointmentID),
		zap.String("customerID", customerID),
		zap.Int64("estimatedTotal", total),
	)

	outcome := w.Payments.Resolve(ctx, token, customerID, appt, total)

	if outcome.Kind == models.OutcomeFailed {
		// The appointment persists server-side; surface the failure and keep
		// the user on the current step for a manual retry.
		release()
		return outcome, nil
	}

	sess.Outcome = outcome
	sess.Step = models.StepPayment
	sess.Submitting = false
	if err := w.Sessions.Save(ctx, sess); err != nil {
		w.Logger.Error("failed to persist settled wizard session", zap.Error(err))
	}
	return outcome, nil
}
