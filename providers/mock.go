package providers

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"farehub/models"
)

// MockProvider simulates a full-API ride provider with randomized offers,
// booking latency and confirmation rate. Used until real integrations land.
type MockProvider struct {
	name string
}

func NewMockProvider(name string) *MockProvider {
	return &MockProvider{name: name}
}

func (p *MockProvider) Name() string { return p.name }

// Search returns a randomized offer sheet; roughly one request in ten finds
// the provider with no supply at all.
func (p *MockProvider) Search(ctx context.Context, pickup, drop string) ([]models.Offer, error) {
	if rand.Float64() <= 0.1 {
		return nil, nil
	}
	offers := []models.Offer{
		{
			OfferID:     fmt.Sprintf("%s_auto_%d", p.name, rand.Intn(100)+1),
			VehicleType: "auto",
			Price:       50 + rand.Float64()*50,
			ETA:         2 + rand.Intn(4),
			Available:   true,
			Meta:        map[string]any{},
		},
		{
			OfferID:     fmt.Sprintf("%s_cab_%d", p.name, rand.Intn(100)+1),
			VehicleType: "cab",
			Price:       150 + rand.Float64()*100,
			ETA:         4 + rand.Intn(5),
			Available:   true,
			Meta:        map[string]any{},
		},
		{
			OfferID:     fmt.Sprintf("%s_bike_%d", p.name, rand.Intn(100)+1),
			VehicleType: "bike",
			Price:       30 + rand.Float64()*30,
			ETA:         1 + rand.Intn(3),
			Available:   rand.Intn(2) == 0,
			Meta:        map[string]any{},
		},
	}
	available := offers[:0]
	for _, o := range offers {
		if o.Available {
			available = append(available, o)
		}
	}
	return available, nil
}

// Book simulates a 1-5s booking call with an 80% confirmation rate.
func (p *MockProvider) Book(ctx context.Context, offer models.Offer) (models.BookingOutcome, error) {
	delay := time.Second + time.Duration(rand.Float64()*4*float64(time.Second))
	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return models.BookingOutcome{}, ctx.Err()
	}

	if rand.Float64() < 0.8 {
		return models.BookingOutcome{
			Status:    models.StatusConfirmed,
			BookingID: fmt.Sprintf("%s_bk_%d", p.name, rand.Intn(9000)+1000),
			Driver: &models.DriverInfo{
				Name:        fmt.Sprintf("Driver_%s", p.name),
				Phone:       "9999999999",
				VehicleType: offer.VehicleType,
				ETA:         offer.ETA,
			},
			Provider:    p.name,
			VehicleType: offer.VehicleType,
			Price:       offer.Price,
			ETA:         offer.ETA,
			Meta:        offer.Meta,
		}, nil
	}
	return models.BookingOutcome{
		Status:      models.StatusFailed,
		Provider:    p.name,
		VehicleType: offer.VehicleType,
		Price:       offer.Price,
		ETA:         offer.ETA,
		Meta:        offer.Meta,
	}, nil
}

// Cancel simulates a 90% cancellation success rate. The occasional failure
// is reported but callers treat it as best-effort either way.
func (p *MockProvider) Cancel(ctx context.Context, bookingID string) error {
	select {
	case <-time.After(500 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}
	if rand.Float64() < 0.9 {
		return nil
	}
	return fmt.Errorf("provider %s: cancel declined for booking %s", p.name, bookingID)
}
