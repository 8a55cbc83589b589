package interfaces

import (
	"context"

	"github.com/bobmcallan/folio/internal/models"
)

// PortfolioService serves the dashboard: portfolio selection, performance
// views and month edits. Every call is scoped to userID.
type PortfolioService interface {
	ListPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error)
	CreatePortfolio(ctx context.Context, userID, name string) (*models.Portfolio, error)

	// GetPerformance fetches the snapshots of a portfolio and runs the
	// performance transform over them.
	GetPerformance(ctx context.Context, userID, portfolioID string) (*models.PerformanceReport, error)
	// GetChart renders the performance chart as PNG bytes.
	GetChart(ctx context.Context, userID, portfolioID string) ([]byte, error)

	// UpsertSnapshot adds or replaces a month and returns the refreshed report.
	UpsertSnapshot(ctx context.Context, userID, portfolioID string, s models.Snapshot) (*models.PerformanceReport, error)
	// UpdateSnapshot revises an existing month and returns the refreshed report.
	UpdateSnapshot(ctx context.Context, userID, portfolioID, date string, update models.SnapshotUpdate) (*models.PerformanceReport, error)
}
