// backend/src/handlers/analysis_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/username/nestegg/backend/src/models"
	"github.com/username/nestegg/backend/src/services"
)

// AnalysisHandler serves the ticker-analysis section for the core and
// watch lists.
type AnalysisHandler struct {
	analysisService *services.AnalysisService
	stateService    *services.StateService
}

func NewAnalysisHandler(analysisService *services.AnalysisService, stateService *services.StateService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		stateService:    stateService,
	}
}

type analysisRequest struct {
	CoreTickers  *string `json:"core_tickers"`
	WatchTickers *string `json:"watch_tickers"`
}

type analysisResponse struct {
	Core  []models.TickerStats `json:"core"`
	Watch []models.TickerStats `json:"watch"`
}

// HandleAnalyze runs the analysis over the submitted ticker lists; fields
// left out of the request fall back to the saved session lists.
func (h *AnalysisHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if r.Body != nil {
		// An empty body means "use the saved lists"; only malformed JSON
		// is rejected.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			sendJSONError(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	state := h.stateService.Get()
	core := state.CoreTickers
	watch := state.WatchTickers
	if req.CoreTickers != nil {
		core = *req.CoreTickers
	}
	if req.WatchTickers != nil {
		watch = *req.WatchTickers
	}

	writeJSON(w, analysisResponse{
		Core:  h.analysisService.AnalyzeGroup(core),
		Watch: h.analysisService.AnalyzeGroup(watch),
	})
}
