// backend/src/handlers/dashboard_handler.go
package handlers

import (
	"net/http"

	"github.com/username/nestegg/backend/src/logger"
	"github.com/username/nestegg/backend/src/models"
	"github.com/username/nestegg/backend/src/services"
)

// DashboardHandler serves the goal-tracking section: progress toward the
// target net worth, the asset breakdown and the persisted history series.
type DashboardHandler struct {
	stateService    *services.StateService
	netWorthService *services.NetWorthService
	quoteService    services.QuoteService
	fxPair          string
}

func NewDashboardHandler(stateService *services.StateService, netWorthService *services.NetWorthService, quoteService services.QuoteService, fxPair string) *DashboardHandler {
	return &DashboardHandler{
		stateService:    stateService,
		netWorthService: netWorthService,
		quoteService:    quoteService,
		fxPair:          fxPair,
	}
}

type goalResponse struct {
	Goal      services.GoalStatus       `json:"goal"`
	Breakdown models.AssetBreakdown     `json:"breakdown"`
	Fx        models.FxRate             `json:"fx"`
	History   []models.NetWorthSnapshot `json:"history"`
	Warnings  []string                  `json:"warnings"`
}

// HandleGetGoal recomputes the family aggregate against live quotes and
// reports goal progress plus the stored net-worth history. A broken
// history file degrades to an empty series with a warning, never a 5xx.
func (h *DashboardHandler) HandleGetGoal(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	state := h.stateService.Get()
	fx := h.quoteService.GetFxRate(h.fxPair)

	agg := h.netWorthService.Aggregate(state.Family, state.RealEstate, state.Loans, fx)
	h.stateService.RecordTotals(agg)

	resp := goalResponse{
		Goal:      h.netWorthService.Goal(agg.NetAsset, state.TargetNetWorth, agg.DailyDeltaKRW),
		Breakdown: agg.Breakdown,
		Fx:        fx,
		History:   []models.NetWorthSnapshot{},
		Warnings:  []string{},
	}

	history, err := h.stateService.History()
	if err != nil {
		ctxLogger.Warn("Could not load net-worth history", "error", err)
		resp.Warnings = append(resp.Warnings, "net-worth history could not be read; try deleting the history file if this persists")
	} else if history != nil {
		resp.History = history
	}

	writeJSON(w, resp)
}
