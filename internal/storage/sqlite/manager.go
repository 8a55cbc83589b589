// Package sqlite stores portfolios and snapshots in an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
)

// Manager implements interfaces.StorageManager using SQLite.
type Manager struct {
	db     *sql.DB
	logger *common.Logger
	store  *Store
}

// NewManager opens (creating if needed) the database at path and applies migrations.
// The path ":memory:" opens a private in-memory database.
func NewManager(logger *common.Logger, path string) (*Manager, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := ":memory:"
	if path != ":memory:" {
		path = filepath.Clean(path)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection serialises writers and keeps ":memory:" on one database
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Info().Str("path", path).Msg("SQLite storage manager initialized")

	return &Manager{
		db:     db,
		logger: logger,
		store:  &Store{db: db, logger: logger},
	}, nil
}

func (m *Manager) PortfolioStore() interfaces.PortfolioStore {
	return m.store
}

func (m *Manager) SnapshotStore() interfaces.SnapshotStore {
	return m.store
}

func (m *Manager) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	return m.db.Close()
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
