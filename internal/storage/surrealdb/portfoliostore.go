package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// portfolioSelectFields aliases portfolio_id to id for struct mapping.
const portfolioSelectFields = "portfolio_id AS id, user_id, name, created_at"

// PortfolioStore implements interfaces.PortfolioStore using SurrealDB.
type PortfolioStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewPortfolioStore creates a new PortfolioStore.
func NewPortfolioStore(db *surrealdb.DB, logger *common.Logger) *PortfolioStore {
	return &PortfolioStore{db: db, logger: logger}
}

func (s *PortfolioStore) ListPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error) {
	sql := "SELECT " + portfolioSelectFields + " FROM portfolio WHERE user_id = $user_id ORDER BY created_at ASC"
	vars := map[string]any{"user_id": userID}

	results, err := surrealdb.Query[[]models.Portfolio](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}
	return (*results)[0].Result, nil
}

func (s *PortfolioStore) GetPortfolio(ctx context.Context, id string) (*models.Portfolio, error) {
	sql := "SELECT " + portfolioSelectFields + " FROM $rid"
	vars := map[string]any{"rid": surrealmodels.NewRecordID(portfolioTable, id)}

	results, err := surrealdb.Query[[]models.Portfolio](ctx, s.db, sql, vars)
	if err != nil {
		if isNotFoundError(err) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, interfaces.ErrNotFound
	}
	p := (*results)[0].Result[0]
	return &p, nil
}

func (s *PortfolioStore) SavePortfolio(ctx context.Context, p *models.Portfolio) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	sql := `UPSERT $rid SET
		portfolio_id = $portfolio_id, user_id = $user_id,
		name = $name, created_at = $created_at`
	vars := map[string]any{
		"rid":          surrealmodels.NewRecordID(portfolioTable, p.ID),
		"portfolio_id": p.ID,
		"user_id":      p.UserID,
		"name":         p.Name,
		"created_at":   p.CreatedAt,
	}

	if _, err := surrealdb.Query[[]models.Portfolio](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save portfolio: %w", err)
	}
	return nil
}

// Compile-time check
var _ interfaces.PortfolioStore = (*PortfolioStore)(nil)
