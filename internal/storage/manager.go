// Package storage wires the embedded storage areas for MarketLens.
package storage

import (
	"fmt"

	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/storage/portfoliodb"
	"github.com/bobmcallan/marketlens/internal/storage/reportdb"
)

// Manager implements interfaces.StorageManager over two BadgerHold stores.
type Manager struct {
	portfolio *portfoliodb.Store
	reports   *reportdb.Store
	logger    *common.Logger
}

// NewManager opens all storage areas from config.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	portfolio, err := portfoliodb.NewStore(logger, config.Storage.Portfolio.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open portfolio store: %w", err)
	}

	reports, err := reportdb.NewStore(logger, config.Storage.Reports.Path)
	if err != nil {
		portfolio.Close()
		return nil, fmt.Errorf("failed to open report store: %w", err)
	}

	return &Manager{
		portfolio: portfolio,
		reports:   reports,
		logger:    logger,
	}, nil
}

// PortfolioStore returns the holdings store.
func (m *Manager) PortfolioStore() interfaces.PortfolioStore {
	return m.portfolio
}

// ReportStore returns the report history store.
func (m *Manager) ReportStore() interfaces.ReportStore {
	return m.reports
}

// Close closes all storage areas.
func (m *Manager) Close() error {
	var firstErr error
	if err := m.portfolio.Close(); err != nil {
		firstErr = err
	}
	if err := m.reports.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Ensure Manager implements StorageManager
var _ interfaces.StorageManager = (*Manager)(nil)
