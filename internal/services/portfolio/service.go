// Package portfolio provides the dashboard service: it fetches monthly
// snapshots through the injected storage and runs the performance transform.
package portfolio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/performance"
)

// Options configures report formatting and chart rendering.
type Options struct {
	Currency      string
	DomainPadding float64
	Chart         performance.ChartOptions
}

// OptionsFromConfig maps the configuration onto service options.
func OptionsFromConfig(cfg *common.Config) Options {
	chart := performance.DefaultChartOptions()
	if cfg.Chart.Width > 0 {
		chart.Width = cfg.Chart.Width
	}
	if cfg.Chart.Height > 0 {
		chart.Height = cfg.Chart.Height
	}
	chart.ShowYTD = cfg.Chart.ShowYTD
	return Options{
		Currency:      cfg.DisplayCurrency,
		DomainPadding: cfg.Chart.DomainPadding,
		Chart:         chart,
	}
}

// Service implements PortfolioService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
	opts    Options
}

// NewService creates a new portfolio service
func NewService(storage interfaces.StorageManager, logger *common.Logger, opts Options) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
		opts:    opts,
	}
}

// ListPortfolios returns the caller's portfolios; the first is the default selection.
func (s *Service) ListPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error) {
	portfolios, err := s.storage.PortfolioStore().ListPortfolios(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	if portfolios == nil {
		portfolios = []models.Portfolio{}
	}
	s.logger.Debug().Str("user_id", userID).Int("count", len(portfolios)).Msg("Portfolios listed")
	return portfolios, nil
}

// CreatePortfolio creates an empty portfolio owned by userID.
func (s *Service) CreatePortfolio(ctx context.Context, userID, name string) (*models.Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("portfolio name is required: %w", interfaces.ErrInvalidInput)
	}

	p := &models.Portfolio{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.storage.PortfolioStore().SavePortfolio(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Str("portfolio_id", p.ID).Str("name", name).Msg("Portfolio created")
	return p, nil
}

// GetPerformance fetches a portfolio's snapshots and derives its report.
func (s *Service) GetPerformance(ctx context.Context, userID, portfolioID string) (*models.PerformanceReport, error) {
	if _, err := s.ownedPortfolio(ctx, userID, portfolioID); err != nil {
		return nil, err
	}

	snapshots, err := s.storage.SnapshotStore().ListSnapshots(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshots for portfolio %s: %w", portfolioID, err)
	}
	s.logger.Debug().
		Str("portfolio_id", portfolioID).
		Int("count", len(snapshots)).
		Msg("Snapshots received")

	report := s.transformer(ctx).Transform(snapshots)
	report.PortfolioID = portfolioID

	invalid, gaps := 0, 0
	for _, r := range report.Table {
		if r.FormattedDate == performance.InvalidDateLabel {
			invalid++
		}
		if r.MoMGap {
			gaps++
		}
	}
	event := s.logger.Debug()
	if invalid > 0 {
		event = s.logger.Warn()
	}
	event.
		Str("portfolio_id", portfolioID).
		Int("records", len(report.Table)).
		Int("invalid_dates", invalid).
		Int("mom_gaps", gaps).
		Msg("Performance records derived")

	return report, nil
}

// GetChart renders the portfolio's value chart as PNG.
func (s *Service) GetChart(ctx context.Context, userID, portfolioID string) ([]byte, error) {
	report, err := s.GetPerformance(ctx, userID, portfolioID)
	if err != nil {
		return nil, err
	}
	png, err := performance.RenderChart(report, s.opts.Chart)
	if err != nil {
		return nil, fmt.Errorf("portfolio %s: %w: %v", portfolioID, interfaces.ErrInvalidInput, err)
	}
	return png, nil
}

// UpsertSnapshot adds or replaces a month and returns the refreshed report.
func (s *Service) UpsertSnapshot(ctx context.Context, userID, portfolioID string, snap models.Snapshot) (*models.PerformanceReport, error) {
	date, err := validateDate(snap.Date)
	if err != nil {
		return nil, err
	}
	snap.Date = date

	if _, err := s.ownedPortfolio(ctx, userID, portfolioID); err != nil {
		return nil, err
	}
	if err := s.storage.SnapshotStore().UpsertSnapshot(ctx, portfolioID, snap); err != nil {
		return nil, fmt.Errorf("failed to save snapshot %s: %w", date, err)
	}

	s.logger.Info().
		Str("portfolio_id", portfolioID).
		Str("date", date).
		Str("value", snap.Value.String()).
		Str("net_flow", snap.NetFlow.String()).
		Msg("Snapshot saved")

	return s.GetPerformance(ctx, userID, portfolioID)
}

// UpdateSnapshot revises value and net flow of an existing month, then re-runs
// the transform over the updated collection.
func (s *Service) UpdateSnapshot(ctx context.Context, userID, portfolioID, date string, update models.SnapshotUpdate) (*models.PerformanceReport, error) {
	date = strings.TrimSpace(date)
	if _, err := s.ownedPortfolio(ctx, userID, portfolioID); err != nil {
		return nil, err
	}

	if err := s.storage.SnapshotStore().UpdateSnapshot(ctx, portfolioID, date, update.Value, update.NetFlow); err != nil {
		return nil, fmt.Errorf("failed to update snapshot %s: %w", date, err)
	}

	s.logger.Info().
		Str("portfolio_id", portfolioID).
		Str("date", date).
		Str("value", update.Value.String()).
		Str("net_flow", update.NetFlow.String()).
		Msg("Snapshot updated")

	return s.GetPerformance(ctx, userID, portfolioID)
}

// ownedPortfolio hides portfolios of other users behind ErrNotFound.
func (s *Service) ownedPortfolio(ctx context.Context, userID, portfolioID string) (*models.Portfolio, error) {
	p, err := s.storage.PortfolioStore().GetPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("portfolio %s: %w", portfolioID, err)
	}
	if p.UserID != userID {
		return nil, fmt.Errorf("portfolio %s: %w", portfolioID, interfaces.ErrNotFound)
	}
	return p, nil
}

func (s *Service) transformer(ctx context.Context) *performance.Transformer {
	return performance.NewTransformer(performance.Options{
		Currency:      common.ResolveDisplayCurrency(ctx, s.opts.Currency),
		DomainPadding: s.opts.DomainPadding,
	})
}

// validateDate accepts only ISO calendar dates for new months. Reading tolerates
// anything; writing does not.
func validateDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse(models.SnapshotDateLayout, date); err != nil {
		return "", fmt.Errorf("date %q is not YYYY-MM-DD: %w", date, interfaces.ErrInvalidInput)
	}
	return date, nil
}

// Compile-time check
var _ interfaces.PortfolioService = (*Service)(nil)
