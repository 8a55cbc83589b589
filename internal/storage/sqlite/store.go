package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// Store implements both PortfolioStore and SnapshotStore over one database.
// Amounts are stored as decimal text; snapshots list in insertion order.
type Store struct {
	db     *sql.DB
	logger *common.Logger
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

func (s *Store) ListPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name, created_at FROM portfolios WHERE user_id = ? ORDER BY created_at, rowid`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	defer rows.Close()

	portfolios := []models.Portfolio{}
	for rows.Next() {
		var p models.Portfolio
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio: %w", err)
		}
		p.CreatedAt = fromMillis(createdAt)
		portfolios = append(portfolios, p)
	}
	return portfolios, rows.Err()
}

func (s *Store) GetPortfolio(ctx context.Context, id string) (*models.Portfolio, error) {
	var p models.Portfolio
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, created_at FROM portfolios WHERE id = ?`, id,
	).Scan(&p.ID, &p.UserID, &p.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}
	p.CreatedAt = fromMillis(createdAt)
	return &p, nil
}

func (s *Store) SavePortfolio(ctx context.Context, p *models.Portfolio) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO portfolios (id, user_id, name, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, name = excluded.name`,
		p.ID, p.UserID, p.Name, toMillis(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save portfolio: %w", err)
	}
	return nil
}

func (s *Store) ListSnapshots(ctx context.Context, portfolioID string) ([]models.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, value, net_flow FROM snapshots WHERE portfolio_id = ? ORDER BY rowid`,
		portfolioID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []models.Snapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			s.logger.Warn().Err(err).Str("portfolio_id", portfolioID).Msg("Skipping unreadable snapshot")
			continue
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

func (s *Store) GetSnapshot(ctx context.Context, portfolioID, date string) (*models.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT date, value, net_flow FROM snapshots WHERE portfolio_id = ? AND date = ?`,
		portfolioID, date,
	)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return &snap, nil
}

// UpsertSnapshot keeps the existing rowid on conflict, so a replaced month
// keeps its listing position.
func (s *Store) UpsertSnapshot(ctx context.Context, portfolioID string, snap models.Snapshot) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (portfolio_id, date, value, net_flow) VALUES (?, ?, ?, ?)
		 ON CONFLICT(portfolio_id, date) DO UPDATE SET value = excluded.value, net_flow = excluded.net_flow`,
		portfolioID, snap.Date, snap.Value.String(), snap.NetFlow.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}

func (s *Store) UpdateSnapshot(ctx context.Context, portfolioID, date string, value, netFlow decimal.Decimal) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE snapshots SET value = ?, net_flow = ? WHERE portfolio_id = ? AND date = ?`,
		value.String(), netFlow.String(), portfolioID, date,
	)
	if err != nil {
		return fmt.Errorf("failed to update snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update snapshot: %w", err)
	}
	if n == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteSnapshot(ctx context.Context, portfolioID, date string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE portfolio_id = ? AND date = ?`, portfolioID, date,
	); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (models.Snapshot, error) {
	var snap models.Snapshot
	var value, netFlow string
	if err := row.Scan(&snap.Date, &value, &netFlow); err != nil {
		return snap, err
	}
	var err error
	if snap.Value, err = decimal.NewFromString(value); err != nil {
		return snap, fmt.Errorf("snapshot %s value %q: %w", snap.Date, value, err)
	}
	if snap.NetFlow, err = decimal.NewFromString(netFlow); err != nil {
		return snap, fmt.Errorf("snapshot %s net flow %q: %w", snap.Date, netFlow, err)
	}
	return snap, nil
}

// Compile-time checks
var (
	_ interfaces.PortfolioStore = (*Store)(nil)
	_ interfaces.SnapshotStore  = (*Store)(nil)
)
