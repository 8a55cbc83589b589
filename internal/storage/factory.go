// Package storage selects the configured persistence backend.
package storage

import (
	"fmt"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/storage/sqlite"
	"github.com/bobmcallan/folio/internal/storage/surrealdb"
)

// NewStorageManager creates the StorageManager named by config.Storage.Backend.
// Supported backends: "surrealdb" (default) and "sqlite".
func NewStorageManager(logger *common.Logger, config *common.Config) (interfaces.StorageManager, error) {
	switch config.Storage.Backend {
	case "", common.BackendSurrealDB:
		return surrealdb.NewManager(logger, config)
	case common.BackendSQLite:
		return sqlite.NewManager(logger, config.Storage.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s (supported: %s, %s)",
			config.Storage.Backend, common.BackendSurrealDB, common.BackendSQLite)
	}
}
