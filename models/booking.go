package models

import "time"

// BookingStatus enumerates the terminal states of one booking attempt.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusDeepLink  BookingStatus = "deep_link"
	StatusFailed    BookingStatus = "failed"
	StatusCancelled BookingStatus = "cancelled"
)

// Final reports whether the status ends the decision flow. Both a confirmed
// booking and a deep-link handoff are treated as wins.
func (s BookingStatus) Final() bool {
	return s == StatusConfirmed || s == StatusDeepLink
}

// DriverInfo is the driver payload a provider returns on confirmation.
type DriverInfo struct {
	Name        string `bson:"name" json:"name"`
	Phone       string `bson:"phone" json:"phone"`
	VehicleType string `bson:"vehicle_type" json:"vehicle_type"`
	ETA         int    `bson:"eta" json:"eta"`
}

// BookingOutcome is the result of one booking attempt against one provider.
// Never mutated after creation; business failures are represented as
// StatusFailed rather than errors.
type BookingOutcome struct {
	Status      BookingStatus  `bson:"status" json:"status"`
	BookingID   string         `bson:"booking_id,omitempty" json:"booking_id,omitempty"` // Present iff Status is confirmed or deep_link
	DeepLinkURL string         `bson:"deep_link_url,omitempty" json:"deep_link_url,omitempty"`
	Driver      *DriverInfo    `bson:"driver,omitempty" json:"driver,omitempty"`
	Provider    string         `bson:"provider" json:"provider"`
	VehicleType string         `bson:"vehicle_type" json:"vehicle_type"`
	Price       float64        `bson:"price" json:"price"`
	ETA         int            `bson:"eta" json:"eta"`
	Meta        map[string]any `bson:"meta,omitempty" json:"meta,omitempty"`
}

// Attempt is one logged race in a request's decision log. The log is
// append-only: exactly one attempt per vehicle class actually raced,
// including the fallback pass.
type Attempt struct {
	Vehicle    string         `bson:"vehicle" json:"vehicle"`       // Vehicle type, or "fallback"
	Candidates []string       `bson:"candidates" json:"candidates"` // Provider ids considered, cheapest first
	Result     BookingOutcome `bson:"result" json:"result"`
}

// BookingRecord is the persisted record of the winning booking.
type BookingRecord struct {
	ID         string      `bson:"id" json:"id"`
	RequestID  string      `bson:"request_id" json:"request_id"`
	Provider   string      `bson:"provider" json:"provider"`
	BookingID  string      `bson:"booking_id" json:"booking_id"`
	Status     string      `bson:"status" json:"status"`
	DriverInfo *DriverInfo `bson:"driver_info,omitempty" json:"driver_info,omitempty"`
	Price      float64     `bson:"price" json:"price"`
	CreatedAt  time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time   `bson:"updated_at" json:"updated_at"`
}
