// backend/src/handlers/state_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/username/nestegg/backend/src/logger"
	"github.com/username/nestegg/backend/src/models"
	"github.com/username/nestegg/backend/src/services"
	"github.com/username/nestegg/backend/src/validation"
)

// StateHandler exposes the session state (all form inputs) and the
// explicit save action.
type StateHandler struct {
	stateService *services.StateService
}

func NewStateHandler(stateService *services.StateService) *StateHandler {
	return &StateHandler{stateService: stateService}
}

// HandleGetState returns the full session state for form rendering.
func (h *StateHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.stateService.Get())
}

// HandleUpdateState replaces the session state with the submitted one.
// Nothing is persisted until the save action.
func (h *StateHandler) HandleUpdateState(w http.ResponseWriter, r *http.Request) {
	var state models.DashboardState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		sendJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateState(state); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.stateService.Update(state)
	writeJSON(w, h.stateService.Get())
}

type saveResponse struct {
	Saved    bool     `json:"saved"`
	Warnings []string `json:"warnings"`
}

// HandleSave writes the snapshot file and upserts today's net-worth
// history row. Persistence failures come back as warnings with the save
// still reported on the parts that succeeded.
func (h *StateHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	warnings := h.stateService.Save()
	if len(warnings) > 0 {
		ctxLogger.Warn("Save completed with warnings", "warnings", warnings)
	}

	writeJSON(w, saveResponse{Saved: len(warnings) == 0, Warnings: warnings})
}
