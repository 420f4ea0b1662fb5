// backend/src/handlers/ladder_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/username/nestegg/backend/src/services"
	"github.com/username/nestegg/backend/src/validation"
)

// LadderHandler serves the buy-ladder simulation section.
type LadderHandler struct {
	ladderService *services.LadderService
	stateService  *services.StateService
	quoteService  services.QuoteService
	fxPair        string
}

func NewLadderHandler(ladderService *services.LadderService, stateService *services.StateService, quoteService services.QuoteService, fxPair string) *LadderHandler {
	return &LadderHandler{
		ladderService: ladderService,
		stateService:  stateService,
		quoteService:  quoteService,
		fxPair:        fxPair,
	}
}

// HandleSimulate projects the ladder for the submitted parameters. An
// empty body simulates the saved simulator settings; a zero start price
// defaults to the ticker's current quote.
func (h *LadderHandler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	state := h.stateService.Get()
	fx := h.quoteService.GetFxRate(h.fxPair)
	params := services.ParamsFromSettings(state.Simulator, fx)

	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil && !errors.Is(err, io.EOF) {
			sendJSONError(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}
	if err := validation.ValidateRounds(params.Rounds); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if params.StartPrice <= 0 {
		params.StartPrice = h.quoteService.GetCurrentPrice(state.Simulator.Ticker)
	}
	if params.TargetSellPrice <= 0 {
		params.TargetSellPrice = params.StartPrice * 1.1
	}
	if params.FxRate <= 0 {
		params.FxRate = fx.Rate
	}

	writeJSON(w, h.ladderService.Simulate(params))
}
