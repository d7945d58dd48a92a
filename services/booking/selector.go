package booking

import (
	"sort"

	"farehub/models"
)

// SelectCandidates filters the gathered offer map down to the available
// offers for one vehicle type and orders them by ascending price. Passing
// models.VehicleAny selects every available offer regardless of vehicle
// type, which is the fallback pass.
//
// The sort is stable: equal prices keep discovery order, which for a map
// input is fixed as provider id order, then each provider's own offer
// order. Pure and deterministic given its input.
func SelectCandidates(offersByProvider map[string][]models.Offer, vehicleType string) []models.Candidate {
	providerIDs := make([]string, 0, len(offersByProvider))
	for id := range offersByProvider {
		providerIDs = append(providerIDs, id)
	}
	sort.Strings(providerIDs)

	var candidates []models.Candidate
	for _, id := range providerIDs {
		for _, offer := range offersByProvider[id] {
			if !offer.Available {
				continue
			}
			if vehicleType != models.VehicleAny && offer.VehicleType != vehicleType {
				continue
			}
			offer.ProviderID = id
			candidates = append(candidates, models.Candidate{Offer: offer, Provider: id})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Offer.Price < candidates[j].Offer.Price
	})
	return candidates
}

// candidateProviders returns the provider ids of a candidate list in order,
// for the attempt record.
func candidateProviders(candidates []models.Candidate) []string {
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.Provider
	}
	return ids
}
