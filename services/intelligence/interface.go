package ai

import (
	"context"

	"farehub/models"
)

// RideParser extracts a structured ride request from a user's free-text
// message.
type RideParser interface {
	ParseRideRequest(ctx context.Context, text string) (*models.StructuredRideRequest, error)
}

// contentGenerator is the slice of GeminiClient the explainer and parser
// need; it keeps both testable without a live API key.
type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
