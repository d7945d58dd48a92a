package booking

import (
	"context"
	"errors"
	"fmt"

	"farehub/models"
	"farehub/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// NoRidesExplanation is the fixed summary used when every race failed. The
// explanation generator is not called on this path.
const NoRidesExplanation = "No rides found across providers."

// Orchestrate runs the full decision flow for one request. Any error during
// gathering or deciding forces the request's terminal status to failed
// without writing an audit record for the run.
func (s *DefaultDecisionService) Orchestrate(ctx context.Context, req models.RideRequest) {
	logger := utils.GetLogger()

	if err := s.run(ctx, req); err != nil {
		logger.Error("orchestration failed",
			zap.String("requestID", req.ID), zap.Error(err))
		if uerr := s.Repo.UpdateRequestStatus(ctx, req.ID, models.RequestFailed); uerr != nil {
			logger.Error("failed to mark request failed",
				zap.String("requestID", req.ID), zap.Error(uerr))
		}
	}
}

func (s *DefaultDecisionService) run(ctx context.Context, req models.RideRequest) error {
	logger := utils.GetLogger()

	// Gathering: one concurrent fan-out, raw offers persisted before any
	// booking attempt regardless of the eventual outcome.
	offersByProvider := GatherOffers(ctx, req.Pickup, req.Drop, s.Registry)
	if err := s.Repo.SaveProviderResponses(ctx, req.ID, offersByProvider); err != nil {
		return fmt.Errorf("failed to persist provider responses: %w", err)
	}

	timeout := s.RaceTimeout
	if timeout <= 0 {
		timeout = DefaultRaceTimeout
	}

	// Deciding: race each preferred vehicle type in order. Empty selections
	// are skipped without an attempt record.
	var (
		attempts []models.Attempt
		chosen   *models.BookingOutcome
	)
	for _, vehicle := range req.Priority {
		candidates := SelectCandidates(offersByProvider, vehicle)
		if len(candidates) == 0 {
			continue
		}
		logger.Info("racing candidates",
			zap.String("requestID", req.ID),
			zap.String("vehicle", vehicle),
			zap.Int("candidates", len(candidates)))

		outcome := RunRace(ctx, candidates, s.Registry, timeout)
		attempts = append(attempts, models.Attempt{
			Vehicle:    vehicle,
			Candidates: candidateProviders(candidates),
			Result:     outcome,
		})
		if outcome.Status.Final() {
			chosen = &outcome
			break
		}
	}

	// Fallback: one unrestricted cheapest-first race across every available
	// offer, run only when the whole preference list came up empty-handed.
	if chosen == nil {
		candidates := SelectCandidates(offersByProvider, models.VehicleAny)
		if len(candidates) > 0 {
			logger.Info("preference list exhausted, racing fallback",
				zap.String("requestID", req.ID),
				zap.Int("candidates", len(candidates)))

			outcome := RunRace(ctx, candidates, s.Registry, timeout)
			attempts = append(attempts, models.Attempt{
				Vehicle:    models.VehicleFallback,
				Candidates: candidateProviders(candidates),
				Result:     outcome,
			})
			if outcome.Status.Final() {
				chosen = &outcome
			}
		}
	}

	var (
		status      models.RequestStatus
		explanation string
	)
	if chosen != nil {
		status = models.RequestConfirmed
		if chosen.Status == models.StatusDeepLink {
			status = models.RequestDeepLink
		}

		bookingID := chosen.BookingID
		if bookingID == "" {
			bookingID = "n/a"
		}
		if _, err := s.Repo.CreateBooking(ctx, models.BookingRecord{
			RequestID:  req.ID,
			Provider:   chosen.Provider,
			BookingID:  bookingID,
			Status:     string(chosen.Status),
			DriverInfo: chosen.Driver,
			Price:      chosen.Price,
		}); err != nil {
			return fmt.Errorf("failed to persist booking: %w", err)
		}

		text, err := s.Explainer.Explain(ctx, chosen.Provider, chosen.VehicleType, chosen.Price, chosen.ETA, attempts)
		if err != nil {
			return fmt.Errorf("failed to generate explanation: %w", err)
		}
		explanation = text
	} else {
		status = models.RequestFailed
		explanation = NoRidesExplanation
	}

	// Audit first, terminal status last, so a terminal request always has
	// its trace in place.
	if _, err := s.Repo.CreateAuditTrace(ctx, models.AuditTrace{
		RequestID:       req.ID,
		DecisionSummary: explanation,
		Attempts:        attempts,
	}); err != nil {
		return fmt.Errorf("failed to persist audit trace: %w", err)
	}
	if err := s.Repo.UpdateRequestStatus(ctx, req.ID, status); err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}

	logger.Info("orchestration complete",
		zap.String("requestID", req.ID), zap.String("status", string(status)))
	return nil
}

// BookingView assembles the polling endpoint's view of one request from the
// persisted records.
func (s *DefaultDecisionService) BookingView(ctx context.Context, requestID string) (*models.BookingResponse, error) {
	req, err := s.Repo.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NewNotFoundError(fmt.Sprintf("request %s not found", requestID))
		}
		return nil, fmt.Errorf("failed to load request: %w", err)
	}

	if req.Status == models.RequestProcessing {
		return &models.BookingResponse{
			RequestID:         requestID,
			Status:            models.RequestProcessing,
			ProviderResponses: map[string][]models.Offer{},
		}, nil
	}

	responses, err := s.Repo.GetProviderResponses(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider responses: %w", err)
	}
	offersByProvider := make(map[string][]models.Offer, len(responses))
	for _, pr := range responses {
		offersByProvider[pr.Provider] = append(offersByProvider[pr.Provider], pr.RawResponse)
	}

	bookingRec, err := s.Repo.GetBookingByRequestID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	audit, err := s.Repo.GetAuditTraceByRequestID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load audit trace: %w", err)
	}

	resp := &models.BookingResponse{
		RequestID:         requestID,
		Status:            req.Status,
		Booking:           bookingRec,
		ProviderResponses: offersByProvider,
	}
	if audit != nil {
		resp.Explanation = audit.DecisionSummary
	}
	if bookingRec != nil {
		chosen := &models.ChosenRide{
			Provider: bookingRec.Provider,
			Price:    bookingRec.Price,
		}
		if bookingRec.DriverInfo != nil {
			chosen.VehicleType = bookingRec.DriverInfo.VehicleType
			chosen.ETA = bookingRec.DriverInfo.ETA
		}
		resp.Chosen = chosen
	}
	return resp, nil
}
