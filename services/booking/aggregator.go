package booking

import (
	"context"
	"sync"

	"farehub/models"
	"farehub/providers"
	"farehub/utils"

	"go.uber.org/zap"
)

// GatherOffers fans one search call out to every registered provider and
// collects the results into a per-provider offer map. All calls run
// concurrently and every call is waited for; a provider whose search fails
// is dropped from the map, indistinguishable from one that returned zero
// offers. Calls are not retried.
func GatherOffers(ctx context.Context, pickup, drop string, reg *providers.Registry) map[string][]models.Offer {
	logger := utils.GetLogger()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	offersByProvider := make(map[string][]models.Offer)

	for _, prov := range reg.All() {
		wg.Add(1)
		go func(p providers.Provider) {
			defer wg.Done()
			offers, err := p.Search(ctx, pickup, drop)
			if err != nil {
				logger.Warn("provider search failed, dropping provider for this request",
					zap.String("provider", p.Name()), zap.Error(err))
				return
			}
			for i := range offers {
				offers[i].ProviderID = p.Name()
			}
			mu.Lock()
			offersByProvider[p.Name()] = offers
			mu.Unlock()
		}(prov)
	}
	wg.Wait()

	return offersByProvider
}
