// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/folio/internal/models"
)

// ErrNotFound is returned when a portfolio or snapshot does not exist, or is
// not visible to the caller.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned when a write request is rejected before reaching storage.
var ErrInvalidInput = errors.New("invalid input")

// StorageManager coordinates the storage backend
type StorageManager interface {
	PortfolioStore() PortfolioStore
	SnapshotStore() SnapshotStore

	// Lifecycle
	Close() error
}

// PortfolioStore manages portfolio records.
type PortfolioStore interface {
	// ListPortfolios returns the portfolios owned by userID, oldest first.
	ListPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error)
	// GetPortfolio returns ErrNotFound when id does not exist.
	GetPortfolio(ctx context.Context, id string) (*models.Portfolio, error)
	SavePortfolio(ctx context.Context, p *models.Portfolio) error
}

// SnapshotStore manages the monthly snapshots of portfolios. Snapshots are
// keyed by (portfolio id, date string).
type SnapshotStore interface {
	// ListSnapshots returns all snapshots of a portfolio in no particular order.
	ListSnapshots(ctx context.Context, portfolioID string) ([]models.Snapshot, error)
	// GetSnapshot returns ErrNotFound when the month does not exist.
	GetSnapshot(ctx context.Context, portfolioID, date string) (*models.Snapshot, error)
	// UpsertSnapshot creates or replaces a month.
	UpsertSnapshot(ctx context.Context, portfolioID string, s models.Snapshot) error
	// UpdateSnapshot revises value and net flow of an existing month and
	// returns ErrNotFound when it does not exist.
	UpdateSnapshot(ctx context.Context, portfolioID, date string, value, netFlow decimal.Decimal) error
	// DeleteSnapshot removes a month; deleting a missing month is not an error.
	DeleteSnapshot(ctx context.Context, portfolioID, date string) error
}
