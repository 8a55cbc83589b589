package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// snapshotRecord is the stored form of a snapshot. Amounts are kept as decimal
// strings so no precision is lost in the database.
type snapshotRecord struct {
	PortfolioID string    `json:"portfolio_id"`
	Date        string    `json:"date"`
	Value       string    `json:"value"`
	NetFlow     string    `json:"net_flow"`
	CreatedAt   time.Time `json:"created_at"`
}

const snapshotSelectFields = "portfolio_id, date, value, net_flow, created_at"

// snapshotRecordID keys a month by portfolio and date. The "::" separator
// cannot appear in a generated portfolio id.
func snapshotRecordID(portfolioID, date string) surrealmodels.RecordID {
	return surrealmodels.NewRecordID(snapshotTable, portfolioID+"::"+date)
}

func (r snapshotRecord) toModel() (models.Snapshot, error) {
	value, err := decimal.NewFromString(r.Value)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("snapshot %s value %q: %w", r.Date, r.Value, err)
	}
	netFlow, err := decimal.NewFromString(r.NetFlow)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("snapshot %s net flow %q: %w", r.Date, r.NetFlow, err)
	}
	return models.Snapshot{Date: r.Date, Value: value, NetFlow: netFlow}, nil
}

// SnapshotStore implements interfaces.SnapshotStore using SurrealDB.
type SnapshotStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(db *surrealdb.DB, logger *common.Logger) *SnapshotStore {
	return &SnapshotStore{db: db, logger: logger}
}

func (s *SnapshotStore) ListSnapshots(ctx context.Context, portfolioID string) ([]models.Snapshot, error) {
	sql := "SELECT " + snapshotSelectFields + " FROM snapshot WHERE portfolio_id = $portfolio_id ORDER BY created_at ASC"
	vars := map[string]any{"portfolio_id": portfolioID}

	results, err := surrealdb.Query[[]snapshotRecord](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	if results == nil || len(*results) == 0 {
		return []models.Snapshot{}, nil
	}

	records := (*results)[0].Result
	snapshots := make([]models.Snapshot, 0, len(records))
	for _, r := range records {
		snap, err := r.toModel()
		if err != nil {
			s.logger.Warn().Err(err).Str("portfolio_id", portfolioID).Msg("Skipping unreadable snapshot")
			continue
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

func (s *SnapshotStore) GetSnapshot(ctx context.Context, portfolioID, date string) (*models.Snapshot, error) {
	sql := "SELECT " + snapshotSelectFields + " FROM $rid"
	vars := map[string]any{"rid": snapshotRecordID(portfolioID, date)}

	results, err := surrealdb.Query[[]snapshotRecord](ctx, s.db, sql, vars)
	if err != nil {
		if isNotFoundError(err) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, interfaces.ErrNotFound
	}
	snap, err := (*results)[0].Result[0].toModel()
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *SnapshotStore) UpsertSnapshot(ctx context.Context, portfolioID string, snap models.Snapshot) error {
	// created_at survives replacement so listing keeps insertion order
	sql := `UPSERT $rid SET
		portfolio_id = $portfolio_id, date = $date,
		value = $value, net_flow = $net_flow,
		created_at = created_at ?? $now`
	vars := map[string]any{
		"rid":          snapshotRecordID(portfolioID, snap.Date),
		"portfolio_id": portfolioID,
		"date":         snap.Date,
		"value":        snap.Value.String(),
		"net_flow":     snap.NetFlow.String(),
		"now":          time.Now().UTC(),
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]snapshotRecord](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to upsert snapshot after retries: %w", lastErr)
}

func (s *SnapshotStore) UpdateSnapshot(ctx context.Context, portfolioID, date string, value, netFlow decimal.Decimal) error {
	// UPDATE on a record id never creates it, so an empty result means missing
	sql := "UPDATE $rid SET value = $value, net_flow = $net_flow RETURN AFTER"
	vars := map[string]any{
		"rid":      snapshotRecordID(portfolioID, date),
		"value":    value.String(),
		"net_flow": netFlow.String(),
	}

	results, err := surrealdb.Query[[]snapshotRecord](ctx, s.db, sql, vars)
	if err != nil {
		if isNotFoundError(err) {
			return interfaces.ErrNotFound
		}
		return fmt.Errorf("failed to update snapshot: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (s *SnapshotStore) DeleteSnapshot(ctx context.Context, portfolioID, date string) error {
	_, err := surrealdb.Delete[snapshotRecord](ctx, s.db, snapshotRecordID(portfolioID, date))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Compile-time check
var _ interfaces.SnapshotStore = (*SnapshotStore)(nil)
