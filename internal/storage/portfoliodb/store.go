// Package portfoliodb implements PortfolioStore using BadgerHold.
package portfoliodb

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/models"
)

// Store implements interfaces.PortfolioStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore opens the portfolio store at the given path, creating it if
// needed.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create portfoliodb path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open portfoliodb at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("PortfolioDB opened")
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) List(_ context.Context) ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem
	if err := s.db.Find(&items, nil); err != nil {
		return nil, fmt.Errorf("failed to list portfolio items: %w", err)
	}
	// Stable order: oldest first, matching insertion order in the UI
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) Get(_ context.Context, id string) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	if err := s.db.Get(id, &item); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("portfolio item '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get portfolio item '%s': %w", id, err)
	}
	return &item, nil
}

func (s *Store) Put(_ context.Context, item *models.PortfolioItem) error {
	now := time.Now()
	var existing models.PortfolioItem
	if err := s.db.Get(item.ID, &existing); err == nil {
		item.CreatedAt = existing.CreatedAt
	} else if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	if err := s.db.Upsert(item.ID, item); err != nil {
		return fmt.Errorf("failed to put portfolio item '%s': %w", item.ID, err)
	}
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	if err := s.db.Delete(id, models.PortfolioItem{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete portfolio item '%s': %w", id, err)
	}
	return nil
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ensure Store implements PortfolioStore
var _ interfaces.PortfolioStore = (*Store)(nil)
