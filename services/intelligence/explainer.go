package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"farehub/models"
)

// GeminiExplainer generates the human-readable decision summary for a
// winning booking from the full attempt log.
type GeminiExplainer struct {
	client contentGenerator
}

func NewGeminiExplainer(apiKey string) *GeminiExplainer {
	return &GeminiExplainer{client: NewGeminiClient(apiKey)}
}

func (e *GeminiExplainer) Explain(ctx context.Context, provider, vehicleType string, price float64, eta int, attempts []models.Attempt) (string, error) {
	attemptLog, err := json.Marshal(attempts)
	if err != nil {
		return "", fmt.Errorf("failed to encode attempt log: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("You are a ride-booking assistant. In two or three sentences, explain to the rider why this booking was chosen.\n")
	fmt.Fprintf(&sb, "Chosen: provider=%s vehicle=%s price=%.2f eta=%d minutes.\n", provider, vehicleType, price, eta)
	fmt.Fprintf(&sb, "Decision log of every booking attempt: %s\n", attemptLog)
	sb.WriteString("Mention the price and pickup time. Do not mention internal identifiers.")

	text, err := e.client.GenerateContent(ctx, sb.String())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
