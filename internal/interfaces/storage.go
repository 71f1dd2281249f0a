package interfaces

import (
	"context"

	"github.com/bobmcallan/marketlens/internal/models"
)

// PortfolioStore persists the holdings list. Written on every mutation,
// read once at startup.
type PortfolioStore interface {
	List(ctx context.Context) ([]models.PortfolioItem, error)
	Get(ctx context.Context, id string) (*models.PortfolioItem, error)
	Put(ctx context.Context, item *models.PortfolioItem) error
	Delete(ctx context.Context, id string) error
}

// ReportStore persists completed analysis results, pruned to a fixed cap.
type ReportStore interface {
	Save(ctx context.Context, report *models.Report) error
	Get(ctx context.Context, id string) (*models.Report, error)
	// List returns reports newest first, up to limit (0 means all retained).
	List(ctx context.Context, limit int) ([]*models.Report, error)
}

// StorageManager owns the embedded storage areas.
type StorageManager interface {
	PortfolioStore() PortfolioStore
	ReportStore() ReportStore
	Close() error
}
