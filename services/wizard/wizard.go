package wizard

import (
	"context"
	"fmt"
	"time"

	"voltcare/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartSession opens a new wizard session for the customer. A deep-linked
// vehicle short-circuits step one and takes priority over a stored draft; a
// pending draft is otherwise consumed (read-once) and the saved step resumed.
func (w *DefaultWizardService) StartSession(ctx context.Context, token, customerID string, deepLinkVehicleID int64) (*models.WizardSession, error) {
	sess := models.WizardSession{
		SessionID:  uuid.New().String(),
		CustomerID: customerID,
		Step:       models.StepSelectVehicle,
		CreatedAt:  time.Now(),
	}

	if deepLinkVehicleID > 0 {
		sess.VehicleID = deepLinkVehicleID
		sess.Step = models.StepSelectCenterAndTime
		if err := w.loadSubscriptions(ctx, token, &sess); err != nil {
			w.Logger.Warn("failed to load subscriptions for deep-linked vehicle",
				zap.Int64("vehicleID", deepLinkVehicleID), zap.Error(err))
		}
	} else {
		hasDraft, err := w.Drafts.PeekHasDraft(ctx, customerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check booking draft: %w", err)
		}
		if hasDraft {
			d, err := w.Drafts.RestoreAndClear(ctx, customerID)
			if err != nil {
				return nil, fmt.Errorf("failed to restore booking draft: %w", err)
			}
			if d != nil {
				sess.ApplyDraft(*d)
				if sess.VehicleID > 0 {
					if err := w.loadSubscriptions(ctx, token, &sess); err != nil {
						w.Logger.Warn("failed to load subscriptions on draft resume", zap.Error(err))
					}
				}
				if sess.ServiceCenterID > 0 && sess.Date != "" {
					// The draft's slot list is gone; refetch under a fresh
					// generation while keeping the saved slot selection.
					sess.SlotGeneration++
					if err := w.fetchSlots(ctx, token, &sess); err != nil {
						w.Logger.Warn("failed to refetch slots on draft resume", zap.Error(err))
					}
				}
			}
		}
	}

	if err := w.Sessions.Save(ctx, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// GetSession returns the customer's wizard session.
func (w *DefaultWizardService) GetSession(ctx context.Context, customerID, sessionID string) (*models.WizardSession, error) {
	sess, err := w.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.CustomerID != customerID {
		return nil, fmt.Errorf("wizard session does not belong to this customer")
	}
	return sess, nil
}

// HandleEvent applies a wizard event to the session and executes the effects
// the transition requested.
func (w *DefaultWizardService) HandleEvent(ctx context.Context, token, customerID, sessionID string, ev Event) (*EventResult, error) {
	sess, err := w.GetSession(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Submitting {
		return nil, NewValidationError("submit", "A submission is in progress; please wait")
	}

	// The empty-cart guard on step three needs the cart's state; supply it so
	// the transition itself stays pure.
	if next, ok := ev.(Next); ok {
		c, err := w.Cart.Get(ctx, customerID)
		if err != nil {
			return nil, err
		}
		next.CartEmpty = c.IsEmpty()
		ev = next
	}

	updated, effects, err := Apply(*sess, ev)
	if err != nil {
		return nil, err
	}

	result := &EventResult{}
	var effectErr error
	for _, eff := range effects {
		switch e := eff.(type) {
		case LoadSubscriptions:
			if err := w.loadSubscriptions(ctx, token, &updated); err != nil {
				effectErr = err
			}
		case FetchSlots:
			slots, err := w.Slots.ListAvailableSlots(ctx, token, e.CenterID, e.Date)
			if err != nil {
				effectErr = err
				break
			}
			// Route the result back through the machine so a response for a
			// superseded (center, date) pair is discarded.
			updated, _, _ = Apply(updated, SlotsLoaded{Generation: e.Generation, Slots: slots})
		case SideExitToCatalog:
			if err := w.Drafts.Save(ctx, customerID, updated.Snapshot(time.Now())); err != nil {
				return nil, err
			}
			result.SideExit = true
		}
	}

	if err := w.Sessions.Save(ctx, &updated); err != nil {
		return nil, err
	}
	result.Session = &updated

	// A failed effect (e.g. slot fetch) leaves the accepted selection in
	// place; the user retries by reselecting.
	if effectErr != nil {
		return result, effectErr
	}
	return result, nil
}

// Cancel discards the session and any pending draft.
func (w *DefaultWizardService) Cancel(ctx context.Context, customerID, sessionID string) error {
	if _, err := w.GetSession(ctx, customerID, sessionID); err != nil {
		return err
	}
	if err := w.Sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	return w.Drafts.Clear(ctx, customerID)
}

func (w *DefaultWizardService) loadSubscriptions(ctx context.Context, token string, sess *models.WizardSession) error {
	subs, err := w.Subscriptions.ListActiveSubscriptionsForVehicle(ctx, token, sess.VehicleID)
	if err != nil {
		return err
	}
	sess.SubscriptionID = 0
	for _, sub := range subs {
		if sub.IsActive() {
			sess.SubscriptionID = sub.ID
			break
		}
	}
	return nil
}

func (w *DefaultWizardService) fetchSlots(ctx context.Context, token string, sess *models.WizardSession) error {
	slots, err := w.Slots.ListAvailableSlots(ctx, token, sess.ServiceCenterID, sess.Date)
	if err != nil {
		return err
	}
	updated, _, _ := Apply(*sess, SlotsLoaded{Generation: sess.SlotGeneration, Slots: slots})
	*sess = updated
	return nil
}
