package models

// BookingRequest is the appointment creation payload sent to the platform.
type BookingRequest struct {
	VehicleID       int64   `json:"vehicleId"`
	ServiceCenterID int64   `json:"serviceCenterId"`
	Date            string  `json:"date"`
	TimeSlotID      int64   `json:"timeSlotId"`
	ServiceIDs      []int64 `json:"serviceIds,omitempty"`
	PackageID       int64   `json:"packageId,omitempty"`
	SubscriptionID  int64   `json:"subscriptionId,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

// Appointment is the platform's record of a created booking.
type Appointment struct {
	AppointmentID   int64  `json:"appointmentId"`
	AppointmentCode string `json:"appointmentCode"`
	InvoiceID       int64  `json:"invoiceId"`
}

// PaymentIntent is the gateway's response to a payment intent request.
type PaymentIntent struct {
	PaymentIntentID string `json:"paymentIntentId"`
	PaymentCode     string `json:"paymentCode"`
	PaymentURL      string `json:"paymentUrl"`
	Amount          int64  `json:"amount"`
}

// PaymentStatus is the gateway's answer to a payment lookup by code.
type PaymentStatus struct {
	Status string `json:"status"`
	Amount int64  `json:"amount"`
}

// OutcomeKind discriminates the settled result of a submission attempt.
type OutcomeKind string

const (
	OutcomePaid            OutcomeKind = "paid"
	OutcomeFree            OutcomeKind = "free"
	OutcomeAwaitingPayment OutcomeKind = "awaitingPayment"
	OutcomeFailed          OutcomeKind = "failed"
)

// AppointmentOutcome is produced exactly once per submission attempt.
type AppointmentOutcome struct {
	Kind          OutcomeKind `json:"kind"`
	AppointmentID int64       `json:"appointmentId,omitempty"`
	PaymentCode   string      `json:"paymentCode,omitempty"`
	PaymentURL    string      `json:"paymentUrl,omitempty"`
	Amount        int64       `json:"amount,omitempty"`
	Reasons       []string    `json:"reasons,omitempty"`
}

// OutcomeRecord is the persisted form of a settled outcome, keyed by payment
// code so the payment callback page can re-associate the gateway result.
type OutcomeRecord struct {
	ID            string      `bson:"id" json:"id"`
	CustomerID    string      `bson:"customer_id" json:"customerId"`
	AppointmentID int64       `bson:"appointment_id" json:"appointmentId"`
	PaymentCode   string      `bson:"payment_code,omitempty" json:"paymentCode,omitempty"`
	Kind          OutcomeKind `bson:"kind" json:"kind"`
	Amount        int64       `bson:"amount" json:"amount"`
	Status        string      `bson:"status" json:"status"` // "settled", "confirmed"
	CreatedAt     int64       `bson:"created_at" json:"createdAt"`
}

// ConfirmationPayload is the asynq task payload for the post-booking
// confirmation notification.
type ConfirmationPayload struct {
	CustomerID    string `json:"customerId"`
	AppointmentID int64  `json:"appointmentId"`
}
