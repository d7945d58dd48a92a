package booking

import (
	"context"
	"time"

	"farehub/models"
	"farehub/providers"
	"farehub/utils"

	"go.uber.org/zap"
)

// DefaultRaceTimeout bounds how long a race waits for its first settlement.
const DefaultRaceTimeout = 12 * time.Second

// settledAttempt is one booking call that has returned, successfully or not.
type settledAttempt struct {
	candidate models.Candidate
	outcome   models.BookingOutcome
	err       error
}

// RunRace books every candidate concurrently and returns at most one winning
// outcome.
//
// The completion gate is first-to-settle, not first-to-confirm: the race
// proceeds as soon as any one attempt settles (or the deadline elapses),
// even when that settlement is a failure and a slower attempt would have
// confirmed. This is deliberate, observed behavior; do not change it to
// wait for a confirmation without a product decision.
//
// At the gate, every already-settled attempt is scanned in arrival order and
// the first confirmed or deep-link outcome wins. Attempts still in flight
// receive a cooperative cancellation signal and are not awaited. Every other
// settled attempt that confirmed is compensated with an awaited Cancel call;
// compensation failures are logged and swallowed.
func RunRace(ctx context.Context, candidates []models.Candidate, reg *providers.Registry, deadline time.Duration) models.BookingOutcome {
	logger := utils.GetLogger()

	if len(candidates) == 0 {
		return models.BookingOutcome{Status: models.StatusFailed}
	}
	if deadline <= 0 {
		deadline = DefaultRaceTimeout
	}

	raceCtx, cancelPending := context.WithCancel(ctx)
	defer cancelPending()

	// Buffered to the attempt count so abandoned attempts never block.
	results := make(chan settledAttempt, len(candidates))
	for _, cand := range candidates {
		prov := reg.Get(cand.Provider)
		if prov == nil {
			logger.Warn("candidate references unknown provider, skipping",
				zap.String("provider", cand.Provider))
			continue
		}
		go func(p providers.Provider, c models.Candidate) {
			outcome, err := p.Book(raceCtx, c.Offer)
			if err == nil {
				outcome.Provider = c.Provider
			}
			results <- settledAttempt{candidate: c, outcome: outcome, err: err}
		}(prov, cand)
	}

	timer := time.NewTimer(deadline)
	defer timer.Stop()

	var settled []settledAttempt
	select {
	case s := <-results:
		settled = append(settled, s)
	case <-timer.C:
	case <-ctx.Done():
	}
	// Anything else that settled by the time the gate opened counts too.
drain:
	for {
		select {
		case s := <-results:
			settled = append(settled, s)
		default:
			break drain
		}
	}

	// Fire-and-forget cancellation for every attempt still in flight.
	cancelPending()

	return resolveSettled(ctx, settled, reg)
}

// resolveSettled scans the attempts that made it through the gate, picks at
// most one winner and compensates every other settled confirmation.
func resolveSettled(ctx context.Context, settled []settledAttempt, reg *providers.Registry) models.BookingOutcome {
	logger := utils.GetLogger()

	winnerIdx := -1
	for i, s := range settled {
		if s.err != nil {
			// Transport failure: a non-winning settlement.
			logger.Warn("booking attempt failed",
				zap.String("provider", s.candidate.Provider), zap.Error(s.err))
			continue
		}
		if s.outcome.Status.Final() {
			winnerIdx = i
			break
		}
	}

	// Compensate every settled confirmation that did not win.
	for i, s := range settled {
		if i == winnerIdx || s.err != nil || s.outcome.Status != models.StatusConfirmed {
			continue
		}
		prov := reg.Get(s.candidate.Provider)
		if prov == nil {
			continue
		}
		if err := prov.Cancel(ctx, s.outcome.BookingID); err != nil {
			logger.Warn("compensating cancel failed",
				zap.String("provider", s.candidate.Provider),
				zap.String("bookingID", s.outcome.BookingID), zap.Error(err))
		}
	}

	if winnerIdx < 0 {
		return models.BookingOutcome{Status: models.StatusFailed}
	}
	return settled[winnerIdx].outcome
}
