package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"farehub/models"
)

// GeminiRideParser turns a free-text ride request into the structured form.
type GeminiRideParser struct {
	client contentGenerator
}

func NewGeminiRideParser(apiKey string) *GeminiRideParser {
	return &GeminiRideParser{client: NewGeminiClient(apiKey)}
}

const parsePromptTemplate = `Extract pickup, drop, and vehicle priority order from the user's message.
Return JSON ONLY: {"pickup":"...","drop":"...","priority":["auto","cab","bike"]}
Example: "Pickup at MG Road, drop at Banjara Hills. Prefer Auto then Cab." -> {"pickup":"MG Road","drop":"Banjara Hills","priority":["auto","cab"]}
User: %q`

func (p *GeminiRideParser) ParseRideRequest(ctx context.Context, text string) (*models.StructuredRideRequest, error) {
	raw, err := p.client.GenerateContent(ctx, fmt.Sprintf(parsePromptTemplate, text))
	if err != nil {
		return nil, err
	}

	// The model occasionally wraps its JSON in a code fence.
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var parsed models.StructuredRideRequest
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("ride request parse failed, use the structured form: %w", err)
	}
	if parsed.Pickup == "" || parsed.Drop == "" {
		return nil, fmt.Errorf("ride request parse failed, use the structured form: missing pickup or drop")
	}
	return &parsed, nil
}
