package booking

import (
	"testing"

	"farehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offer(id, vehicle string, price float64, available bool) models.Offer {
	return models.Offer{
		OfferID:     id,
		VehicleType: vehicle,
		Price:       price,
		ETA:         3,
		Available:   available,
	}
}

func TestSelectCandidatesFiltersVehicleAndAvailability(t *testing.T) {
	offersByProvider := map[string][]models.Offer{
		"ola": {
			offer("ola_auto", "auto", 60, true),
			offer("ola_bike", "bike", 35, true),
			offer("ola_cab", "cab", 180, false),
		},
		"uber": {
			offer("uber_auto", "auto", 55, true),
			offer("uber_auto_2", "auto", 90, false),
		},
	}

	candidates := SelectCandidates(offersByProvider, "auto")
	require.Len(t, candidates, 2)
	for _, c := range candidates {
		assert.Equal(t, "auto", c.Offer.VehicleType)
		assert.True(t, c.Offer.Available)
		assert.Equal(t, c.Provider, c.Offer.ProviderID)
	}
}

func TestSelectCandidatesSortsByAscendingPrice(t *testing.T) {
	offersByProvider := map[string][]models.Offer{
		"ola":    {offer("ola_auto", "auto", 80, true)},
		"uber":   {offer("uber_auto", "auto", 60, true)},
		"rapido": {offer("rapido_auto", "auto", 70, true)},
	}

	candidates := SelectCandidates(offersByProvider, "auto")
	require.Len(t, candidates, 3)
	assert.Equal(t, "uber", candidates[0].Provider)
	assert.Equal(t, "rapido", candidates[1].Provider)
	assert.Equal(t, "ola", candidates[2].Provider)
	for i := 1; i < len(candidates); i++ {
		assert.LessOrEqual(t, candidates[i-1].Offer.Price, candidates[i].Offer.Price)
	}
}

func TestSelectCandidatesStableTieBreakByDiscoveryOrder(t *testing.T) {
	// Equal prices keep discovery order: provider id order, then each
	// provider's own offer order.
	offersByProvider := map[string][]models.Offer{
		"b": {offer("b_1", "auto", 60, true), offer("b_2", "auto", 60, true)},
		"a": {offer("a_1", "auto", 60, true)},
	}

	candidates := SelectCandidates(offersByProvider, "auto")
	require.Len(t, candidates, 3)
	assert.Equal(t, "a_1", candidates[0].Offer.OfferID)
	assert.Equal(t, "b_1", candidates[1].Offer.OfferID)
	assert.Equal(t, "b_2", candidates[2].Offer.OfferID)
}

func TestSelectCandidatesAnyIncludesAllVehicleTypes(t *testing.T) {
	offersByProvider := map[string][]models.Offer{
		"ola": {
			offer("ola_auto", "auto", 60, true),
			offer("ola_cab", "cab", 180, true),
			offer("ola_bike", "bike", 35, false),
		},
		"uber": {offer("uber_bike", "bike", 30, true)},
	}

	candidates := SelectCandidates(offersByProvider, models.VehicleAny)
	require.Len(t, candidates, 3)
	assert.Equal(t, "uber_bike", candidates[0].Offer.OfferID)
	assert.Equal(t, "ola_auto", candidates[1].Offer.OfferID)
	assert.Equal(t, "ola_cab", candidates[2].Offer.OfferID)
}

func TestSelectCandidatesUnknownVehicleIsEmpty(t *testing.T) {
	offersByProvider := map[string][]models.Offer{
		"ola": {offer("ola_auto", "auto", 60, true)},
	}
	assert.Empty(t, SelectCandidates(offersByProvider, "helicopter"))
	assert.Empty(t, SelectCandidates(nil, "auto"))
}

func TestSelectCandidatesDeterministic(t *testing.T) {
	offersByProvider := map[string][]models.Offer{
		"ola":    {offer("ola_auto", "auto", 60, true), offer("ola_cab", "cab", 60, true)},
		"uber":   {offer("uber_auto", "auto", 60, true)},
		"rapido": {offer("rapido_auto", "auto", 60, true)},
	}

	first := SelectCandidates(offersByProvider, models.VehicleAny)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, SelectCandidates(offersByProvider, models.VehicleAny))
	}
}
