package outcomeRepo

import (
	"context"

	"voltcare/database"
	"voltcare/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// OutcomeRepository persists settled appointment outcomes so the payment
// callback page can re-associate a gateway result by payment code.
type OutcomeRepository interface {
	Create(ctx context.Context, rec models.OutcomeRecord) (string, error)
	GetByPaymentCode(ctx context.Context, code string) (*models.OutcomeRecord, error)
	GetByAppointmentID(ctx context.Context, appointmentID int64) (*models.OutcomeRecord, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.OutcomeRecord, error)
	MarkConfirmed(ctx context.Context, appointmentID int64) error
}

type mongoOutcomeRepo struct {
	coll *mongo.Collection
}

// NewMongoOutcomeRepo returns a new OutcomeRepository instance using MongoDB.
func NewMongoOutcomeRepo() OutcomeRepository {
	db := database.MongoClient.Database("voltcare")
	return &mongoOutcomeRepo{
		coll: db.Collection("appointment_outcomes"),
	}
}
