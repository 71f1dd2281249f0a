// Package interfaces defines service contracts for MarketLens
package interfaces

import (
	"context"

	"github.com/bobmcallan/marketlens/internal/models"
)

// AIClient provides access to the generative text API.
type AIClient interface {
	// Generate sends one prompt to the model and returns the raw response
	// text plus grounding citations. enableSearch requests the search
	// augmentation tool. A single call — no retries; failures surface the
	// upstream message verbatim.
	Generate(ctx context.Context, systemInstruction, userPrompt string, enableSearch bool) (*models.RawModelResponse, error)
}
