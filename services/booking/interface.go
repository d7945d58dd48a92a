package booking

import (
	"context"
	"time"

	ridesRepo "farehub/database/repository/rides"
	"farehub/models"
	"farehub/providers"
)

// Explainer produces the human-readable decision summary for a winning
// booking. Its failure aborts the orchestration run.
type Explainer interface {
	Explain(ctx context.Context, provider, vehicleType string, price float64, eta int, attempts []models.Attempt) (string, error)
}

// DecisionService drives one ride request from gathered offers to a
// terminal, persisted decision.
type DecisionService interface {
	Orchestrate(ctx context.Context, req models.RideRequest)
	BookingView(ctx context.Context, requestID string) (*models.BookingResponse, error)
}

// DefaultDecisionService implements DecisionService.
type DefaultDecisionService struct {
	Registry    *providers.Registry
	Repo        ridesRepo.RideRepository
	Explainer   Explainer
	RaceTimeout time.Duration
}
