package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"farehub/models"
	"farehub/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider scripts one provider's behavior and records every call.
type fakeProvider struct {
	name       string
	offers     []models.Offer
	searchErr  error
	searchWait time.Duration

	bookWait time.Duration
	outcome  models.BookingOutcome
	bookErr  error

	cancelErr error

	mu           sync.Mutex
	bookCalls    int
	cancelled    []string
	ctxCancelled bool
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(ctx context.Context, pickup, drop string) ([]models.Offer, error) {
	if f.searchWait > 0 {
		time.Sleep(f.searchWait)
	}
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.offers, nil
}

func (f *fakeProvider) Book(ctx context.Context, offer models.Offer) (models.BookingOutcome, error) {
	f.mu.Lock()
	f.bookCalls++
	f.mu.Unlock()

	if f.bookWait > 0 {
		select {
		case <-time.After(f.bookWait):
		case <-ctx.Done():
			f.mu.Lock()
			f.ctxCancelled = true
			f.mu.Unlock()
			return models.BookingOutcome{}, ctx.Err()
		}
	}
	if f.bookErr != nil {
		return models.BookingOutcome{}, f.bookErr
	}

	out := f.outcome
	out.Provider = f.name
	out.VehicleType = offer.VehicleType
	out.Price = offer.Price
	out.ETA = offer.ETA
	return out, nil
}

func (f *fakeProvider) Cancel(ctx context.Context, bookingID string) error {
	f.mu.Lock()
	f.cancelled = append(f.cancelled, bookingID)
	f.mu.Unlock()
	return f.cancelErr
}

func (f *fakeProvider) bookCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bookCalls
}

func (f *fakeProvider) cancelledIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cancelled...)
}

func (f *fakeProvider) sawCtxCancel() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ctxCancelled
}

func candidateFor(provider, vehicle string, price float64) models.Candidate {
	return models.Candidate{
		Offer: models.Offer{
			OfferID:     provider + "_" + vehicle,
			ProviderID:  provider,
			VehicleType: vehicle,
			Price:       price,
			ETA:         3,
			Available:   true,
		},
		Provider: provider,
	}
}

func TestRunRaceFirstConfirmationWins(t *testing.T) {
	fast := &fakeProvider{
		name:     "a",
		bookWait: 10 * time.Millisecond,
		outcome:  models.BookingOutcome{Status: models.StatusConfirmed, BookingID: "a_bk_1"},
	}
	slow := &fakeProvider{
		name:     "b",
		bookWait: time.Second,
		outcome:  models.BookingOutcome{Status: models.StatusConfirmed, BookingID: "b_bk_1"},
	}
	reg := providers.NewRegistry(fast, slow)

	candidates := []models.Candidate{
		candidateFor("a", "auto", 60),
		candidateFor("b", "auto", 80),
	}
	outcome := RunRace(context.Background(), candidates, reg, 5*time.Second)

	assert.Equal(t, models.StatusConfirmed, outcome.Status)
	assert.Equal(t, "a", outcome.Provider)
	assert.Equal(t, 60.0, outcome.Price)
	assert.Equal(t, "a_bk_1", outcome.BookingID)

	// Both attempts were launched in parallel, not probed sequentially.
	assert.Equal(t, 1, fast.bookCallCount())
	assert.Equal(t, 1, slow.bookCallCount())

	// The loser was still pending at the gate and gets a cooperative
	// cancellation signal, not a compensating cancel.
	require.Eventually(t, slow.sawCtxCancel, time.Second, 5*time.Millisecond)
	assert.Empty(t, slow.cancelledIDs())
}

// The completion gate is first-to-settle, not first-to-confirm: a fast
// failure resolves the race even though a slower attempt would have
// confirmed. This is intended behavior; do not "fix" the race to wait for a
// confirmation.
func TestRunRaceResolvesOnFirstSettlementEvenIfFailed(t *testing.T) {
	fastFail := &fakeProvider{
		name:     "a",
		bookWait: 10 * time.Millisecond,
		outcome:  models.BookingOutcome{Status: models.StatusFailed},
	}
	slowConfirm := &fakeProvider{
		name:     "b",
		bookWait: 500 * time.Millisecond,
		outcome:  models.BookingOutcome{Status: models.StatusConfirmed, BookingID: "b_bk_1"},
	}
	reg := providers.NewRegistry(fastFail, slowConfirm)

	candidates := []models.Candidate{
		candidateFor("a", "auto", 60),
		candidateFor("b", "auto", 80),
	}
	start := time.Now()
	outcome := RunRace(context.Background(), candidates, reg, 5*time.Second)

	assert.Equal(t, models.StatusFailed, outcome.Status)
	assert.Less(t, time.Since(start), 400*time.Millisecond,
		"race must resolve on the first settlement, not wait for the slow confirmation")

	// The would-be confirmation is cancelled in flight and its outcome lost.
	require.Eventually(t, slowConfirm.sawCtxCancel, time.Second, 5*time.Millisecond)
	assert.Empty(t, slowConfirm.cancelledIDs())
}

func TestRunRaceDeadlineCancelsEverything(t *testing.T) {
	a := &fakeProvider{
		name:     "a",
		bookWait: time.Second,
		outcome:  models.BookingOutcome{Status: models.StatusConfirmed, BookingID: "a_bk_1"},
	}
	b := &fakeProvider{
		name:     "b",
		bookWait: time.Second,
		outcome:  models.BookingOutcome{Status: models.StatusConfirmed, BookingID: "b_bk_1"},
	}
	reg := providers.NewRegistry(a, b)

	candidates := []models.Candidate{
		candidateFor("a", "auto", 60),
		candidateFor("b", "auto", 80),
	}
	start := time.Now()
	outcome := RunRace(context.Background(), candidates, reg, 30*time.Millisecond)

	assert.Equal(t, models.StatusFailed, outcome.Status)
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	require.Eventually(t, a.sawCtxCancel, time.Second, 5*time.Millisecond)
	require.Eventually(t, b.sawCtxCancel, time.Second, 5*time.Millisecond)
}

func TestRunRaceNoCandidates(t *testing.T) {
	reg := providers.NewRegistry()
	outcome := RunRace(context.Background(), nil, reg, time.Second)
	assert.Equal(t, models.StatusFailed, outcome.Status)
}

func TestRunRaceTransportErrorIsNonWinningSettlement(t *testing.T) {
	broken := &fakeProvider{
		name:     "a",
		bookWait: 5 * time.Millisecond,
		bookErr:  errors.New("connection reset"),
	}
	reg := providers.NewRegistry(broken)

	outcome := RunRace(context.Background(), []models.Candidate{candidateFor("a", "auto", 60)}, reg, time.Second)
	assert.Equal(t, models.StatusFailed, outcome.Status)
	assert.Empty(t, broken.cancelledIDs())
}

func TestResolveSettledCompensatesNonWinningConfirmations(t *testing.T) {
	a := &fakeProvider{name: "a"}
	b := &fakeProvider{name: "b"}
	c := &fakeProvider{name: "c"}
	reg := providers.NewRegistry(a, b, c)

	settled := []settledAttempt{
		{
			candidate: candidateFor("a", "auto", 60),
			outcome:   models.BookingOutcome{Status: models.StatusConfirmed, BookingID: "a_bk_1", Provider: "a"},
		},
		{
			candidate: candidateFor("b", "auto", 70),
			outcome:   models.BookingOutcome{Status: models.StatusConfirmed, BookingID: "b_bk_1", Provider: "b"},
		},
		{
			candidate: candidateFor("c", "auto", 80),
			outcome:   models.BookingOutcome{Status: models.StatusFailed, Provider: "c"},
		},
	}
	outcome := resolveSettled(context.Background(), settled, reg)

	assert.Equal(t, "a", outcome.Provider)
	assert.Equal(t, models.StatusConfirmed, outcome.Status)

	// Exactly the non-winning confirmation is compensated, with its own
	// booking id, and the cancel is awaited before the race returns.
	assert.Empty(t, a.cancelledIDs())
	assert.Equal(t, []string{"b_bk_1"}, b.cancelledIDs())
	assert.Empty(t, c.cancelledIDs())
}

func TestResolveSettledDeepLinkWinsButIsNotCompensated(t *testing.T) {
	a := &fakeProvider{name: "a"}
	b := &fakeProvider{name: "b"}
	reg := providers.NewRegistry(a, b)

	settled := []settledAttempt{
		{
			candidate: candidateFor("a", "auto", 60),
			outcome:   models.BookingOutcome{Status: models.StatusDeepLink, BookingID: "a_auto", Provider: "a"},
		},
		{
			candidate: candidateFor("b", "auto", 70),
			outcome:   models.BookingOutcome{Status: models.StatusConfirmed, BookingID: "b_bk_1", Provider: "b"},
		},
	}
	outcome := resolveSettled(context.Background(), settled, reg)

	assert.Equal(t, models.StatusDeepLink, outcome.Status)
	assert.Equal(t, "a", outcome.Provider)
	assert.Equal(t, []string{"b_bk_1"}, b.cancelledIDs())
}

func TestResolveSettledCompensationFailureIsSwallowed(t *testing.T) {
	a := &fakeProvider{name: "a"}
	b := &fakeProvider{name: "b", cancelErr: errors.New("cancel declined")}
	reg := providers.NewRegistry(a, b)

	settled := []settledAttempt{
		{
			candidate: candidateFor("a", "auto", 60),
			outcome:   models.BookingOutcome{Status: models.StatusConfirmed, BookingID: "a_bk_1", Provider: "a"},
		},
		{
			candidate: candidateFor("b", "auto", 70),
			outcome:   models.BookingOutcome{Status: models.StatusConfirmed, BookingID: "b_bk_1", Provider: "b"},
		},
	}
	outcome := resolveSettled(context.Background(), settled, reg)

	assert.Equal(t, "a", outcome.Provider)
	assert.Equal(t, []string{"b_bk_1"}, b.cancelledIDs())
}

func TestResolveSettledNoConfirmationIsSyntheticFailure(t *testing.T) {
	a := &fakeProvider{name: "a"}
	reg := providers.NewRegistry(a)

	settled := []settledAttempt{
		{
			candidate: candidateFor("a", "auto", 60),
			outcome:   models.BookingOutcome{Status: models.StatusFailed, Provider: "a"},
		},
		{
			candidate: candidateFor("a", "cab", 150),
			err:       errors.New("timeout"),
		},
	}
	outcome := resolveSettled(context.Background(), settled, reg)

	assert.Equal(t, models.StatusFailed, outcome.Status)
	assert.Empty(t, outcome.BookingID)
	assert.Empty(t, a.cancelledIDs())
}
