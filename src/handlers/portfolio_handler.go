// backend/src/handlers/portfolio_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/username/nestegg/backend/src/models"
	"github.com/username/nestegg/backend/src/services"
	"github.com/username/nestegg/backend/src/validation"
)

// PortfolioHandler serves the dependents'-assets section: single-person
// portfolio valuation in both currencies.
type PortfolioHandler struct {
	portfolioService *services.PortfolioService
	stateService     *services.StateService
	quoteService     services.QuoteService
	fxPair           string
}

func NewPortfolioHandler(portfolioService *services.PortfolioService, stateService *services.StateService, quoteService services.QuoteService, fxPair string) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		stateService:     stateService,
		quoteService:     quoteService,
		fxPair:           fxPair,
	}
}

type portfolioEvaluateResponse struct {
	Person    models.PersonPortfolio    `json:"person"`
	Valuation models.PortfolioValuation `json:"valuation"`
}

// HandleEvaluate values the submitted person portfolio. The submitted
// values replace the matching dependent entry in the session state when
// the key matches one.
func (h *PortfolioHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var person models.PersonPortfolio
	if err := json.NewDecoder(r.Body).Decode(&person); err != nil {
		sendJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePerson(person); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	state := h.stateService.Get()
	for i := range state.Dependents {
		if state.Dependents[i].Key == person.Key {
			state.Dependents[i] = person
			h.stateService.Update(state)
			break
		}
	}

	fx := h.quoteService.GetFxRate(h.fxPair)
	valuation := h.portfolioService.Evaluate(person, fx)

	writeJSON(w, portfolioEvaluateResponse{Person: person, Valuation: valuation})
}
