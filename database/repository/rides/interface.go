package ridesRepo

import (
	"context"

	"farehub/database"
	"farehub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// RideRepository is the persistence collaborator for the decision flow. All
// writes are append-only and keyed by request id, except the single status
// update that marks a request terminal.
type RideRepository interface {
	CreateRequest(ctx context.Context, req models.RideRequest) error
	GetRequestByID(ctx context.Context, id string) (*models.RideRequest, error)
	UpdateRequestStatus(ctx context.Context, id string, status models.RequestStatus) error

	SaveProviderResponses(ctx context.Context, requestID string, offers map[string][]models.Offer) error
	GetProviderResponses(ctx context.Context, requestID string) ([]models.ProviderResponse, error)

	CreateBooking(ctx context.Context, rec models.BookingRecord) (string, error)
	GetBookingByRequestID(ctx context.Context, requestID string) (*models.BookingRecord, error)

	CreateAuditTrace(ctx context.Context, trace models.AuditTrace) (string, error)
	GetAuditTraceByRequestID(ctx context.Context, requestID string) (*models.AuditTrace, error)
}

type mongoRideRepo struct {
	requests  *mongo.Collection
	responses *mongo.Collection
	bookings  *mongo.Collection
	audits    *mongo.Collection
}

// NewMongoRideRepo returns a new RideRepository instance using MongoDB.
func NewMongoRideRepo() RideRepository {
	db := database.MongoClient.Database("farehub")
	return &mongoRideRepo{
		requests:  db.Collection("requests"),
		responses: db.Collection("provider_responses"),
		bookings:  db.Collection("bookings"),
		audits:    db.Collection("audit_traces"),
	}
}
