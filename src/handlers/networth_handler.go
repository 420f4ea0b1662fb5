// backend/src/handlers/networth_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/username/nestegg/backend/src/models"
	"github.com/username/nestegg/backend/src/services"
	"github.com/username/nestegg/backend/src/validation"
)

// NetWorthHandler serves the family-assets and loans sections.
type NetWorthHandler struct {
	netWorthService *services.NetWorthService
	stateService    *services.StateService
	quoteService    services.QuoteService
	fxPair          string
}

func NewNetWorthHandler(netWorthService *services.NetWorthService, stateService *services.StateService, quoteService services.QuoteService, fxPair string) *NetWorthHandler {
	return &NetWorthHandler{
		netWorthService: netWorthService,
		stateService:    stateService,
		quoteService:    quoteService,
		fxPair:          fxPair,
	}
}

type netWorthRequest struct {
	Family     []models.PersonPortfolio `json:"family"`
	RealEstate []models.RealEstateAsset `json:"real_estate"`
	Loans      []models.Loan            `json:"loans"`
}

// HandleEvaluate aggregates the family net worth against live quotes.
// Submitted sections replace the saved ones for this evaluation and are
// kept as the new session state; omitted sections use the saved values.
func (h *NetWorthHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req netWorthRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			sendJSONError(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	for _, p := range req.Family {
		if err := validation.ValidatePerson(p); err != nil {
			sendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	state := h.stateService.Get()
	if req.Family != nil {
		state.Family = req.Family
	}
	if req.RealEstate != nil {
		state.RealEstate = req.RealEstate
	}
	if req.Loans != nil {
		state.Loans = req.Loans
	}
	h.stateService.Update(state)

	fx := h.quoteService.GetFxRate(h.fxPair)
	agg := h.netWorthService.Aggregate(state.Family, state.RealEstate, state.Loans, fx)
	h.stateService.RecordTotals(agg)

	writeJSON(w, agg)
}

// HandleGetFx reports the current FX rate and its day-over-day change.
func (h *NetWorthHandler) HandleGetFx(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.quoteService.GetFxRate(h.fxPair))
}
