package outcomeRepo

import (
	"context"
	"errors"
	"time"

	"voltcare/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new outcome record and returns its ID.
func (r *mongoOutcomeRepo) Create(ctx context.Context, rec models.OutcomeRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().UnixMilli()
	}
	_, err := r.coll.InsertOne(ctx, rec)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// GetByPaymentCode returns the outcome record associated with a payment code.
func (r *mongoOutcomeRepo) GetByPaymentCode(ctx context.Context, code string) (*models.OutcomeRecord, error) {
	var rec models.OutcomeRecord
	err := r.coll.FindOne(ctx, bson.M{"payment_code": code}).Decode(&rec)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetByAppointmentID returns the outcome record for an appointment.
func (r *mongoOutcomeRepo) GetByAppointmentID(ctx context.Context, appointmentID int64) (*models.OutcomeRecord, error) {
	var rec models.OutcomeRecord
	err := r.coll.FindOne(ctx, bson.M{"appointment_id": appointmentID}).Decode(&rec)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByCustomer fetches all outcome records for a customer, newest first.
func (r *mongoOutcomeRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.OutcomeRecord, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.coll.Find(ctx, bson.M{"customer_id": customerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.OutcomeRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// MarkConfirmed flips an outcome record to confirmed.
func (r *mongoOutcomeRepo) MarkConfirmed(ctx context.Context, appointmentID int64) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"appointment_id": appointmentID},
		bson.M{"$set": bson.M{"status": "confirmed"}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("outcome record not found")
	}
	return nil
}
