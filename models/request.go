package models

import "time"

// RequestStatus enumerates the lifecycle of one ride request.
type RequestStatus string

const (
	RequestProcessing RequestStatus = "processing"
	RequestConfirmed  RequestStatus = "confirmed"
	RequestDeepLink   RequestStatus = "deep_link"
	RequestFailed     RequestStatus = "failed"
)

// RideRequest is the persisted request record. Status moves from
// "processing" to exactly one terminal state.
type RideRequest struct {
	ID        string        `bson:"id" json:"id"`
	Pickup    string        `bson:"pickup" json:"pickup"`
	Drop      string        `bson:"drop" json:"drop"`
	Priority  []string      `bson:"priority" json:"priority"` // Vehicle type preference order
	RawText   string        `bson:"raw_text,omitempty" json:"raw_text,omitempty"`
	Status    RequestStatus `bson:"status" json:"status"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}

// ProviderResponse is one raw offer persisted during the gathering phase,
// written before any booking attempt regardless of later outcome.
type ProviderResponse struct {
	ID          string    `bson:"id" json:"id"`
	RequestID   string    `bson:"request_id" json:"request_id"`
	Provider    string    `bson:"provider" json:"provider"`
	VehicleType string    `bson:"vehicle_type" json:"vehicle_type"`
	Price       float64   `bson:"price" json:"price"`
	ETA         int       `bson:"eta" json:"eta"`
	Available   bool      `bson:"available" json:"available"`
	RawResponse Offer     `bson:"raw_response" json:"raw_response"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// AuditTrace pairs the human-readable explanation with the full attempt log
// for one orchestration run. Written only on the normal completion path.
type AuditTrace struct {
	ID              string    `bson:"id" json:"id"`
	RequestID       string    `bson:"request_id" json:"request_id"`
	DecisionSummary string    `bson:"decision_summary" json:"decision_summary"`
	Attempts        []Attempt `bson:"attempts" json:"attempts"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}

// StructuredRideRequest is the structured intake payload.
type StructuredRideRequest struct {
	Pickup        string   `json:"pickup" binding:"required"`
	Drop          string   `json:"drop" binding:"required"`
	Priority      []string `json:"priority" binding:"required"`
	PassengerName string   `json:"passenger_name"`
}

// ChosenRide summarizes the winning offer for the polling endpoint.
type ChosenRide struct {
	Provider    string  `json:"provider"`
	VehicleType string  `json:"vehicle_type"`
	Price       float64 `json:"price"`
	ETA         int     `json:"eta"`
}

// BookingResponse is the polling endpoint's view of one request.
type BookingResponse struct {
	RequestID         string             `json:"request_id"`
	Status            RequestStatus      `json:"status"`
	Chosen            *ChosenRide        `json:"chosen,omitempty"`
	Booking           *BookingRecord     `json:"booking,omitempty"`
	Explanation       string             `json:"explanation,omitempty"`
	ProviderResponses map[string][]Offer `json:"provider_responses"`
}
