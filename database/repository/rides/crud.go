package ridesRepo

import (
	"context"
	"errors"
	"time"

	"farehub/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateRequest inserts a new ride request.
func (r *mongoRideRepo) CreateRequest(ctx context.Context, req models.RideRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	_, err := r.requests.InsertOne(ctx, req)
	return err
}

// GetRequestByID returns a ride request by its ID.
func (r *mongoRideRepo) GetRequestByID(ctx context.Context, id string) (*models.RideRequest, error) {
	var req models.RideRequest
	err := r.requests.FindOne(ctx, bson.M{"id": id}).Decode(&req)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateRequestStatus marks a request with its terminal status.
func (r *mongoRideRepo) UpdateRequestStatus(ctx context.Context, id string, status models.RequestStatus) error {
	res, err := r.requests.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("request not found")
	}
	return nil
}

// SaveProviderResponses persists every raw offer gathered for a request,
// one document per offer, before any booking attempt runs.
func (r *mongoRideRepo) SaveProviderResponses(ctx context.Context, requestID string, offers map[string][]models.Offer) error {
	var docs []interface{}
	for provider, provOffers := range offers {
		for _, offer := range provOffers {
			docs = append(docs, models.ProviderResponse{
				ID:          uuid.New().String(),
				RequestID:   requestID,
				Provider:    provider,
				VehicleType: offer.VehicleType,
				Price:       offer.Price,
				ETA:         offer.ETA,
				Available:   offer.Available,
				RawResponse: offer,
				CreatedAt:   time.Now(),
			})
		}
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := r.responses.InsertMany(ctx, docs)
	return err
}

// GetProviderResponses fetches all raw offers recorded for a request.
func (r *mongoRideRepo) GetProviderResponses(ctx context.Context, requestID string) ([]models.ProviderResponse, error) {
	cursor, err := r.responses.Find(ctx, bson.M{"request_id": requestID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []models.ProviderResponse
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

// CreateBooking inserts the winning booking record and returns its ID.
func (r *mongoRideRepo) CreateBooking(ctx context.Context, rec models.BookingRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = time.Now()

	_, err := r.bookings.InsertOne(ctx, rec)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// GetBookingByRequestID returns the booking recorded for a request, or nil
// if the request never produced one.
func (r *mongoRideRepo) GetBookingByRequestID(ctx context.Context, requestID string) (*models.BookingRecord, error) {
	var rec models.BookingRecord
	err := r.bookings.FindOne(ctx, bson.M{"request_id": requestID}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// CreateAuditTrace inserts the audit record for one orchestration run.
func (r *mongoRideRepo) CreateAuditTrace(ctx context.Context, trace models.AuditTrace) (string, error) {
	if trace.ID == "" {
		trace.ID = uuid.New().String()
	}
	trace.CreatedAt = time.Now()

	_, err := r.audits.InsertOne(ctx, trace)
	if err != nil {
		return "", err
	}
	return trace.ID, nil
}

// GetAuditTraceByRequestID returns the audit trace for a request, or nil if
// the run aborted before the audit write.
func (r *mongoRideRepo) GetAuditTraceByRequestID(ctx context.Context, requestID string) (*models.AuditTrace, error) {
	var trace models.AuditTrace
	err := r.audits.FindOne(ctx, bson.M{"request_id": requestID}).Decode(&trace)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &trace, nil
}
