package models

// VehicleAny selects candidates regardless of vehicle type. It is used for
// the fallback pass after every preferred vehicle type has been tried.
const VehicleAny = "any"

// VehicleFallback is the vehicle label recorded on the fallback attempt.
const VehicleFallback = "fallback"

// Offer represents a priced, time-estimated proposal from one provider for
// one vehicle type. Offers are immutable once returned by a provider search.
type Offer struct {
	OfferID     string         `bson:"offer_id" json:"offer_id"`
	ProviderID  string         `bson:"provider_id" json:"provider_id"` // Owning provider; set by the aggregator
	VehicleType string         `bson:"vehicle_type" json:"vehicle_type"`
	Price       float64        `bson:"price" json:"price"`
	ETA         int            `bson:"eta" json:"eta"` // Minutes until pickup
	Available   bool           `bson:"available" json:"available"`
	Meta        map[string]any `bson:"meta,omitempty" json:"meta,omitempty"` // Opaque provider-specific payload
}

// Candidate is an offer under consideration for a booking race, annotated
// with its owning provider. Candidates only exist for available offers and
// live for a single selection+race cycle.
type Candidate struct {
	Offer    Offer  `json:"offer"`
	Provider string `json:"provider"`
}
