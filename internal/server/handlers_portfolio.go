package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

type createPortfolioRequest struct {
	Name string `json:"name"`
}

type upsertSnapshotRequest struct {
	Date    string          `json:"date"`
	Value   decimal.Decimal `json:"value"`
	NetFlow decimal.Decimal `json:"net_flow"`
}

// handlePortfolioList handles GET /api/portfolios. The first entry is the
// dashboard's default selection.
func (s *Server) handlePortfolioList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := common.ResolveUserID(ctx)

	portfolios, err := s.app.PortfolioService.ListPortfolios(ctx, userID)
	if err != nil {
		WriteServiceError(w, s.logger, err)
		return
	}

	resp := map[string]interface{}{
		"portfolios": portfolios,
	}
	if len(portfolios) > 0 {
		resp["default"] = portfolios[0].ID
	}
	WriteJSON(w, http.StatusOK, resp)
}

// handlePortfolioCreate handles POST /api/portfolios.
func (s *Server) handlePortfolioCreate(w http.ResponseWriter, r *http.Request) {
	var req createPortfolioRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	p, err := s.app.PortfolioService.CreatePortfolio(ctx, common.ResolveUserID(ctx), req.Name)
	if err != nil {
		WriteServiceError(w, s.logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, p)
}

// handlePortfolioPerformance handles GET /api/portfolios/{id}/performance.
func (s *Server) handlePortfolioPerformance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report, err := s.app.PortfolioService.GetPerformance(ctx, common.ResolveUserID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		WriteServiceError(w, s.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// handlePortfolioChart handles GET /api/portfolios/{id}/chart.png.
func (s *Server) handlePortfolioChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	png, err := s.app.PortfolioService.GetChart(ctx, common.ResolveUserID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		WriteServiceError(w, s.logger, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleSnapshotUpsert handles POST /api/portfolios/{id}/snapshots.
func (s *Server) handleSnapshotUpsert(w http.ResponseWriter, r *http.Request) {
	var req upsertSnapshotRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	report, err := s.app.PortfolioService.UpsertSnapshot(ctx, common.ResolveUserID(ctx), chi.URLParam(r, "id"), models.Snapshot{
		Date:    req.Date,
		Value:   req.Value,
		NetFlow: req.NetFlow,
	})
	if err != nil {
		WriteServiceError(w, s.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// handleSnapshotUpdate handles PUT /api/portfolios/{id}/snapshots/{date}.
func (s *Server) handleSnapshotUpdate(w http.ResponseWriter, r *http.Request) {
	var req models.SnapshotUpdate
	if !DecodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	report, err := s.app.PortfolioService.UpdateSnapshot(ctx, common.ResolveUserID(ctx), chi.URLParam(r, "id"), chi.URLParam(r, "date"), req)
	if err != nil {
		WriteServiceError(w, s.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}
