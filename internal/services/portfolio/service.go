// Package portfolio manages the persisted holdings list and its derived
// aggregates.
package portfolio

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/models"
)

// Simulated market moves are drawn uniformly from this range. A stand-in
// for real market data, not a statistically meaningful model.
const (
	simulateMinReturn = -0.15
	simulateMaxReturn = 0.25
)

// Service implements interfaces.PortfolioService.
type Service struct {
	store     interfaces.PortfolioStore
	logger    *common.Logger
	randFloat func() float64 // uniform in [0,1); injectable for tests
}

// NewService creates the portfolio service.
func NewService(store interfaces.PortfolioStore, logger *common.Logger) *Service {
	return &Service{
		store:     store,
		logger:    logger,
		randFloat: rand.Float64,
	}
}

// List returns all holdings in insertion order.
func (s *Service) List(ctx context.Context) ([]models.PortfolioItem, error) {
	return s.store.List(ctx)
}

// validateItem enforces the holding invariants: positive quantity,
// non-negative prices, non-blank symbol.
func validateItem(item models.PortfolioItem) error {
	if strings.TrimSpace(item.Symbol) == "" {
		return fmt.Errorf("symbol is required")
	}
	if item.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if item.BuyPrice < 0 {
		return fmt.Errorf("buy price must not be negative")
	}
	if item.CurrentPrice < 0 {
		return fmt.Errorf("current price must not be negative")
	}
	return nil
}

// Add creates a new holding and persists it immediately.
func (s *Service) Add(ctx context.Context, item models.PortfolioItem) (*models.PortfolioItem, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}

	item.ID = uuid.New().String()
	item.Symbol = strings.ToUpper(strings.TrimSpace(item.Symbol))
	if item.Name == "" {
		item.Name = item.Symbol
	}
	if item.CurrentPrice == 0 {
		item.CurrentPrice = item.BuyPrice
	}

	if err := s.store.Put(ctx, &item); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("symbol", item.Symbol).Str("id", item.ID).Msg("Holding added")
	return &item, nil
}

// Update replaces an existing holding in place and persists it.
func (s *Service) Update(ctx context.Context, item models.PortfolioItem) (*models.PortfolioItem, error) {
	if item.ID == "" {
		return nil, fmt.Errorf("id is required")
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}

	if _, err := s.store.Get(ctx, item.ID); err != nil {
		return nil, err
	}

	item.Symbol = strings.ToUpper(strings.TrimSpace(item.Symbol))
	if err := s.store.Put(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes a holding by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("id is required")
	}
	return s.store.Delete(ctx, id)
}

// Simulate replaces every holding's current price with
// buyPrice * (1 + r), r drawn uniformly from the fixed range. Each updated
// item is persisted.
func (s *Service) Simulate(ctx context.Context) ([]models.PortfolioItem, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range items {
		r := simulateMinReturn + s.randFloat()*(simulateMaxReturn-simulateMinReturn)
		items[i].CurrentPrice = items[i].BuyPrice * (1 + r)
		if err := s.store.Put(ctx, &items[i]); err != nil {
			return nil, err
		}
	}

	s.logger.Debug().Int("holdings", len(items)).Msg("Simulated market data")
	return items, nil
}

// Summary computes the derived aggregates over the current holdings.
func (s *Service) Summary(ctx context.Context) (*models.PortfolioSummary, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	summary := models.Summarize(items)
	return &summary, nil
}

// Ensure Service implements PortfolioService
var _ interfaces.PortfolioService = (*Service)(nil)
