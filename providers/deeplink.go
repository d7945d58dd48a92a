package providers

import (
	"context"
	"fmt"
	"net/url"

	"farehub/models"
)

// DeepLinkProvider models an aggregator-unfriendly provider that cannot be
// booked server-side: every booking attempt resolves to a deep link into the
// provider's own app instead.
type DeepLinkProvider struct {
	name string
}

func NewDeepLinkProvider(name string) *DeepLinkProvider {
	return &DeepLinkProvider{name: name}
}

func (p *DeepLinkProvider) Name() string { return p.name }

func (p *DeepLinkProvider) Search(ctx context.Context, pickup, drop string) ([]models.Offer, error) {
	return []models.Offer{
		{
			OfferID:     fmt.Sprintf("%s_auto", p.name),
			VehicleType: "auto",
			Price:       70.0,
			ETA:         4,
			Available:   true,
			Meta:        map[string]any{"pickup": pickup, "drop": drop},
		},
		{
			OfferID:     fmt.Sprintf("%s_cab", p.name),
			VehicleType: "cab",
			Price:       200.0,
			ETA:         7,
			Available:   true,
			Meta:        map[string]any{"pickup": pickup, "drop": drop},
		},
	}, nil
}

func (p *DeepLinkProvider) Book(ctx context.Context, offer models.Offer) (models.BookingOutcome, error) {
	link := url.URL{
		Scheme: "https",
		Host:   fmt.Sprintf("%s.com", p.name),
		Path:   "/deep-link",
	}
	q := link.Query()
	if pickup, ok := offer.Meta["pickup"].(string); ok {
		q.Set("pickup", pickup)
	}
	if drop, ok := offer.Meta["drop"].(string); ok {
		q.Set("drop", drop)
	}
	q.Set("vehicle", offer.VehicleType)
	link.RawQuery = q.Encode()

	return models.BookingOutcome{
		Status:      models.StatusDeepLink,
		BookingID:   offer.OfferID,
		DeepLinkURL: link.String(),
		Provider:    p.name,
		VehicleType: offer.VehicleType,
		Price:       offer.Price,
		ETA:         offer.ETA,
		Meta:        offer.Meta,
	}, nil
}

// Cancel is a no-op: nothing is booked server-side for a deep link.
func (p *DeepLinkProvider) Cancel(ctx context.Context, bookingID string) error {
	return nil
}
