package interfaces

import (
	"context"

	"github.com/bobmcallan/marketlens/internal/models"
)

// AnalysisService runs analysis requests end to end: prompt construction,
// generation, response parsing, and session merge.
type AnalysisService interface {
	// Analyze runs one request to completion and returns the merged result.
	// Empty/whitespace market queries are skipped: no upstream call is made
	// and ErrValidationSkip is returned. Only one analysis may be in flight
	// at a time; a second concurrent call returns ErrAnalysisInFlight.
	Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error)

	// State returns a snapshot of the current session.
	State() models.SessionState

	// Reset clears all analysis state back to idle (the retry action).
	Reset()
}

// PortfolioService manages the persisted holdings list and its derived
// aggregates.
type PortfolioService interface {
	List(ctx context.Context) ([]models.PortfolioItem, error)
	Add(ctx context.Context, item models.PortfolioItem) (*models.PortfolioItem, error)
	Update(ctx context.Context, item models.PortfolioItem) (*models.PortfolioItem, error)
	Delete(ctx context.Context, id string) error

	// Simulate replaces every item's current price with
	// buyPrice * (1 + r), r drawn uniformly from a fixed range. A stand-in
	// for real market data, not a statistically meaningful model.
	Simulate(ctx context.Context) ([]models.PortfolioItem, error)

	Summary(ctx context.Context) (*models.PortfolioSummary, error)
}
