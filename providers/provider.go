package providers

import (
	"context"

	"farehub/models"
)

// Provider is the capability set every ride-hailing integration exposes.
// Implementations must be safe for concurrent use: handles are shared
// read-only across attempts within and across requests.
type Provider interface {
	Name() string

	// Search returns the provider's offers for a trip. An error drops the
	// provider from the current request's offer set and is not retried.
	Search(ctx context.Context, pickup, drop string) ([]models.Offer, error)

	// Book attempts to book one offer. Expected business failures are
	// represented as StatusFailed on the outcome, not as errors; errors are
	// reserved for transport faults.
	Book(ctx context.Context, offer models.Offer) (models.BookingOutcome, error)

	// Cancel releases a booking by id. Idempotent and best-effort; failures
	// are swallowed by callers.
	Cancel(ctx context.Context, bookingID string) error
}

// Registry is an immutable set of provider handles, built once at process
// start and threaded explicitly into the orchestrator.
type Registry struct {
	byName []Provider
	index  map[string]Provider
}

// NewRegistry builds a registry from a provider slice. Order is preserved.
func NewRegistry(provs ...Provider) *Registry {
	index := make(map[string]Provider, len(provs))
	for _, p := range provs {
		index[p.Name()] = p
	}
	return &Registry{byName: provs, index: index}
}

// All returns the registered providers in registration order.
func (r *Registry) All() []Provider {
	return r.byName
}

// Get returns the provider with the given name, or nil.
func (r *Registry) Get(name string) Provider {
	return r.index[name]
}
