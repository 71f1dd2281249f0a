// Package reportdb implements ReportStore using BadgerHold.
// Completed analyses are retained newest-first, auto-pruned to a fixed cap.
package reportdb

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/models"
)

// maxReports is the auto-prune limit for retained reports.
const maxReports = 50

// Store implements interfaces.ReportStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore opens the report store at the given path, creating it if needed.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create reportdb path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open reportdb at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("ReportDB opened")
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Save(_ context.Context, report *models.Report) error {
	if err := s.db.Upsert(report.ID, report); err != nil {
		return fmt.Errorf("failed to save report '%s': %w", report.ID, err)
	}
	s.prune()
	return nil
}

func (s *Store) Get(_ context.Context, id string) (*models.Report, error) {
	var report models.Report
	if err := s.db.Get(id, &report); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("report '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get report '%s': %w", id, err)
	}
	return &report, nil
}

func (s *Store) List(_ context.Context, limit int) ([]*models.Report, error) {
	var all []models.Report
	if err := s.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	result := make([]*models.Report, len(all))
	for i := range all {
		result[i] = &all[i]
	}
	return result, nil
}

// prune removes the oldest reports beyond maxReports. Failures are logged
// and otherwise ignored — pruning is best effort.
func (s *Store) prune() {
	var all []models.Report
	if err := s.db.Find(&all, nil); err != nil || len(all) <= maxReports {
		return
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	for _, old := range all[maxReports:] {
		if err := s.db.Delete(old.ID, models.Report{}); err != nil {
			s.logger.Warn().Str("id", old.ID).Err(err).Msg("Failed to prune report")
		}
	}
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ensure Store implements ReportStore
var _ interfaces.ReportStore = (*Store)(nil)
