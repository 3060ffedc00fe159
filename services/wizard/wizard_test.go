package wizard

import (
	"context"
	"testing"

	"voltcare/models"
	cartsvc "voltcare/services/cart"
	"voltcare/services/draft"
	"voltcare/services/payment"

	"go.uber.org/zap"
)

type fakeSlotDirectory struct {
	slots []models.TimeSlot
	calls int
}

func (f *fakeSlotDirectory) ListAvailableSlots(ctx context.Context, token string, centerID int64, date string) ([]models.TimeSlot, error) {
	f.calls++
	return f.slots, nil
}

type fakeSubscriptionDirectory struct {
	subs []models.Subscription
}

func (f *fakeSubscriptionDirectory) ListActiveSubscriptionsForVehicle(ctx context.Context, token string, vehicleID int64) ([]models.Subscription, error) {
	return f.subs, nil
}

type fakeAppointmentBooking struct {
	created []models.BookingRequest
}

func (f *fakeAppointmentBooking) CreateAppointment(ctx context.Context, token string, req models.BookingRequest) (*models.Appointment, error) {
	f.created = append(f.created, req)
	return &models.Appointment{AppointmentID: 555, AppointmentCode: "APT-555", InvoiceID: 900}, nil
}

type fakeGateway struct {
	calls int
}

func (f *fakeGateway) CreateIntent(ctx context.Context, token string, appointmentID, amount int64, method, returnURL string) (*models.PaymentIntent, error) {
	f.calls++
	return &models.PaymentIntent{
		PaymentIntentID: "pi_1",
		PaymentCode:     "PC-1",
		PaymentURL:      "https://pay.example/PC-1",
		Amount:          amount,
	}, nil
}

func (f *fakeGateway) GetByCode(ctx context.Context, token, code string) (*models.PaymentStatus, error) {
	return &models.PaymentStatus{Status: "pending"}, nil
}

type testFixture struct {
	svc     *DefaultWizardService
	carts   *cartsvc.MemoryCartStore
	drafts  *draft.MemoryDraftStore
	slots   *fakeSlotDirectory
	subs    *fakeSubscriptionDirectory
	appts   *fakeAppointmentBooking
	gateway *fakeGateway
}

func newFixture() *testFixture {
	carts := cartsvc.NewMemoryCartStore()
	drafts := draft.NewMemoryDraftStore()
	slots := &fakeSlotDirectory{slots: []models.TimeSlot{{ID: 101, StartTime: "09:00", EndTime: "10:00"}}}
	subs := &fakeSubscriptionDirectory{}
	appts := &fakeAppointmentBooking{}
	gateway := &fakeGateway{}

	resolver := &payment.DefaultResolver{
		Gateway:   gateway,
		Cart:      carts,
		Drafts:    drafts,
		ReturnURL: "https://app.example/payment/return",
		Method:    "card",
		Logger:    zap.NewNop(),
	}

	svc := &DefaultWizardService{
		Sessions:      NewMemorySessionStore(),
		Cart:          carts,
		Drafts:        drafts,
		Slots:         slots,
		Subscriptions: subs,
		Appointments:  appts,
		Payments:      resolver,
		Logger:        zap.NewNop(),
	}
	return &testFixture{svc: svc, carts: carts, drafts: drafts, slots: slots, subs: subs, appts: appts, gateway: gateway}
}

func (f *testFixture) event(t *testing.T, sessionID string, ev Event) *EventResult {
	t.Helper()
	res, err := f.svc.HandleEvent(context.Background(), "tok", "cust-1", sessionID, ev)
	if err != nil {
		t.Fatalf("HandleEvent(%T): %v", ev, err)
	}
	return res
}

func (f *testFixture) addService(t *testing.T, svc models.Service) {
	t.Helper()
	ctx := context.Background()
	c, err := f.carts.Get(ctx, "cust-1")
	if err != nil {
		t.Fatalf("cart Get: %v", err)
	}
	c.AddService(svc)
	if err := f.carts.Save(ctx, c); err != nil {
		t.Fatalf("cart Save: %v", err)
	}
}

func TestWizardSideExitAndResumeToAwaitingPayment(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	sess, err := f.svc.StartSession(ctx, "tok", "cust-1", 0)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if sess.Step != models.StepSelectVehicle {
		t.Fatalf("initial step = %v, want %v", sess.Step, models.StepSelectVehicle)
	}
	id := sess.SessionID

	f.event(t, id, SelectVehicle{VehicleID: 42})
	f.event(t, id, Next{})
	f.event(t, id, SelectCenter{CenterID: 7})
	res := f.event(t, id, SelectDate{Date: "2025-03-01"})
	if len(res.Session.Slots) != 1 || res.Session.Slots[0].ID != 101 {
		t.Fatalf("slots after date selection = %+v, want [101]", res.Session.Slots)
	}
	f.event(t, id, SelectSlot{SlotID: 101})
	res = f.event(t, id, Next{})
	if res.Session.Step != models.StepSelectServices {
		t.Fatalf("step = %v, want %v", res.Session.Step, models.StepSelectServices)
	}

	// Empty cart: the wizard diverts to the catalog and saves a draft.
	res = f.event(t, id, Next{})
	if !res.SideExit {
		t.Fatal("expected a side-exit on empty cart")
	}
	if res.Session.Step != models.StepSelectServices {
		t.Errorf("step = %v, want unchanged during side-exit", res.Session.Step)
	}
	d, err := f.drafts.RestoreAndClear(ctx, "cust-1")
	if err != nil || d == nil {
		t.Fatalf("draft after side-exit = %v, %v; want saved draft", d, err)
	}
	if d.CurrentStep != models.StepSelectServices || d.SelectedVehicleID != 42 ||
		d.SelectedServiceCenterID != 7 || d.SelectedDate != "2025-03-01" || d.SelectedTimeSlotID != 101 {
		t.Fatalf("draft = %+v, want step 3 snapshot of the selections", d)
	}
	// Put it back for the resume below.
	if err := f.drafts.Save(ctx, "cust-1", *d); err != nil {
		t.Fatalf("draft Save: %v", err)
	}

	// The user adds a service from the catalog, then reopens the wizard.
	f.addService(t, models.Service{ID: 9, Name: "Tire rotation", Price: 300})

	resumed, err := f.svc.StartSession(ctx, "tok", "cust-1", 0)
	if err != nil {
		t.Fatalf("StartSession (resume): %v", err)
	}
	if resumed.Step != models.StepSelectServices || resumed.VehicleID != 42 ||
		resumed.ServiceCenterID != 7 || resumed.TimeSlotID != 101 {
		t.Fatalf("resumed session = %+v, want the drafted selections", resumed)
	}
	has, err := f.drafts.PeekHasDraft(ctx, "cust-1")
	if err != nil {
		t.Fatalf("PeekHasDraft: %v", err)
	}
	if has {
		t.Error("draft survived the resume; restore must be read-once")
	}

	f.event(t, resumed.SessionID, Next{})
	f.event(t, resumed.SessionID, Next{})

	outcome, err := f.svc.Submit(ctx, "tok", "cust-1", resumed.SessionID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if outcome.Kind != models.OutcomeAwaitingPayment {
		t.Fatalf("outcome kind = %q, want %q", outcome.Kind, models.OutcomeAwaitingPayment)
	}
	if outcome.Amount != 300 {
		t.Errorf("outcome amount = %d, want 300", outcome.Amount)
	}
	if outcome.PaymentURL == "" || outcome.PaymentCode == "" {
		t.Errorf("outcome missing redirect details: %+v", outcome)
	}
	if f.gateway.calls != 1 {
		t.Errorf("gateway calls = %d, want 1", f.gateway.calls)
	}
	if len(f.appts.created) != 1 {
		t.Fatalf("appointments created = %d, want 1", len(f.appts.created))
	}
	req := f.appts.created[0]
	if req.VehicleID != 42 || req.ServiceCenterID != 7 || req.TimeSlotID != 101 {
		t.Errorf("booking request = %+v, want the wizard selections", req)
	}

	settled, err := f.svc.GetSession(ctx, "cust-1", resumed.SessionID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if settled.Outcome == nil || settled.Step != models.StepPayment {
		t.Errorf("settled session step=%v outcome=%v, want payment step with outcome", settled.Step, settled.Outcome)
	}
}

func TestWizardCoveredCartSettlesFreeWithoutGateway(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.subs.subs = []models.Subscription{
		{ID: 30, PackageID: 5, VehicleID: 42, Status: "active", IncludedServiceIDs: []int64{9}},
	}

	sess, err := f.svc.StartSession(ctx, "tok", "cust-1", 42)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if sess.Step != models.StepSelectCenterAndTime {
		t.Fatalf("deep-linked step = %v, want %v", sess.Step, models.StepSelectCenterAndTime)
	}
	if sess.SubscriptionID != 30 {
		t.Fatalf("SubscriptionID = %d, want 30 from the deep-linked vehicle", sess.SubscriptionID)
	}
	id := sess.SessionID

	f.event(t, id, SelectCenter{CenterID: 7})
	f.event(t, id, SelectDate{Date: "2025-03-01"})
	f.event(t, id, SelectSlot{SlotID: 101})
	f.addService(t, models.Service{ID: 9, Name: "Tire rotation", Price: 300})

	outcome, err := f.svc.Submit(ctx, "tok", "cust-1", id)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if outcome.Kind != models.OutcomeFree {
		t.Fatalf("outcome kind = %q, want %q", outcome.Kind, models.OutcomeFree)
	}
	if f.gateway.calls != 0 {
		t.Errorf("gateway calls = %d, want 0 for a fully covered cart", f.gateway.calls)
	}

	c, err := f.carts.Get(ctx, "cust-1")
	if err != nil {
		t.Fatalf("cart Get: %v", err)
	}
	if !c.IsEmpty() {
		t.Error("cart not cleared after free settlement")
	}
}

func TestDeepLinkTakesPriorityOverDraft(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	stale := models.BookingDraft{CurrentStep: models.StepSelectServices, SelectedVehicleID: 1}
	if err := f.drafts.Save(ctx, "cust-1", stale); err != nil {
		t.Fatalf("draft Save: %v", err)
	}

	sess, err := f.svc.StartSession(ctx, "tok", "cust-1", 42)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if sess.VehicleID != 42 || sess.Step != models.StepSelectCenterAndTime {
		t.Errorf("session = %+v, want deep-linked vehicle at step two", sess)
	}

	// The draft is untouched so a later plain visit can still resume it.
	has, err := f.drafts.PeekHasDraft(ctx, "cust-1")
	if err != nil {
		t.Fatalf("PeekHasDraft: %v", err)
	}
	if !has {
		t.Error("deep-linked start consumed the draft")
	}
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	sess, err := f.svc.StartSession(ctx, "tok", "cust-1", 42)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	f.event(t, sess.SessionID, SelectCenter{CenterID: 7})
	f.event(t, sess.SessionID, SelectDate{Date: "2025-03-01"})
	f.event(t, sess.SessionID, SelectSlot{SlotID: 101})

	_, err = f.svc.Submit(ctx, "tok", "cust-1", sess.SessionID)
	if !IsValidation(err) {
		t.Fatalf("got err %v, want validation error on empty cart", err)
	}
	if len(f.appts.created) != 0 {
		t.Errorf("appointments created = %d, want 0", len(f.appts.created))
	}
}

func TestSubmitBlocksHeldPackage(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.subs.subs = []models.Subscription{
		{ID: 30, PackageID: 5, VehicleID: 42, Status: "active"},
	}

	sess, err := f.svc.StartSession(ctx, "tok", "cust-1", 42)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	f.event(t, sess.SessionID, SelectCenter{CenterID: 7})
	f.event(t, sess.SessionID, SelectDate{Date: "2025-03-01"})
	f.event(t, sess.SessionID, SelectSlot{SlotID: 101})

	c, _ := f.carts.Get(ctx, "cust-1")
	c.AddPackage(models.Package{ID: 5, Name: "Care Plus", Price: 1200})
	if err := f.carts.Save(ctx, c); err != nil {
		t.Fatalf("cart Save: %v", err)
	}

	_, err = f.svc.Submit(ctx, "tok", "cust-1", sess.SessionID)
	if !IsValidation(err) {
		t.Fatalf("got err %v, want validation error for an already-held package", err)
	}
	if len(f.appts.created) != 0 {
		t.Errorf("appointments created = %d, want 0", len(f.appts.created))
	}
}

func TestEventsRejectedWhileSubmitting(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	sess, err := f.svc.StartSession(ctx, "tok", "cust-1", 0)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	sess.Submitting = true
	if err := f.svc.Sessions.Save(ctx, sess); err != nil {
		t.Fatalf("session Save: %v", err)
	}

	_, err = f.svc.HandleEvent(ctx, "tok", "cust-1", sess.SessionID, SelectVehicle{VehicleID: 42})
	if !IsValidation(err) {
		t.Errorf("got err %v, want validation error while submitting", err)
	}
	_, err = f.svc.Submit(ctx, "tok", "cust-1", sess.SessionID)
	if !IsValidation(err) {
		t.Errorf("Submit got err %v, want validation error while submitting", err)
	}
}

func TestGetSessionEnforcesOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	sess, err := f.svc.StartSession(ctx, "tok", "cust-1", 0)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if _, err := f.svc.GetSession(ctx, "cust-2", sess.SessionID); err == nil {
		t.Error("expected an error for a foreign customer, got nil")
	}
}

func TestCancelDiscardsSessionAndDraft(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	sess, err := f.svc.StartSession(ctx, "tok", "cust-1", 0)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if err := f.drafts.Save(ctx, "cust-1", models.BookingDraft{SelectedVehicleID: 1}); err != nil {
		t.Fatalf("draft Save: %v", err)
	}

	if err := f.svc.Cancel(ctx, "cust-1", sess.SessionID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := f.svc.GetSession(ctx, "cust-1", sess.SessionID); err == nil {
		t.Error("session still retrievable after Cancel")
	}
	has, err := f.drafts.PeekHasDraft(ctx, "cust-1")
	if err != nil {
		t.Fatalf("PeekHasDraft: %v", err)
	}
	if has {
		t.Error("draft survived Cancel")
	}
}
