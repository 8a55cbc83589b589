// Package models defines data structures for Folio
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SnapshotDateLayout is the ISO layout of Snapshot.Date ("2024-01-01").
const SnapshotDateLayout = "2006-01-02"

// Portfolio is a named collection of monthly snapshots owned by a user.
type Portfolio struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot is one month of a portfolio: the end-of-month balance and the net
// deposits minus withdrawals during that month. Date is kept as supplied by the
// data source; it is conventionally the first day of the month.
type Snapshot struct {
	Date    string          `json:"date"`
	Value   decimal.Decimal `json:"value"`
	NetFlow decimal.Decimal `json:"net_flow"`
}

// SnapshotUpdate carries a revised value and net flow for an existing month.
type SnapshotUpdate struct {
	Value   decimal.Decimal `json:"value"`
	NetFlow decimal.Decimal `json:"net_flow"`
}
