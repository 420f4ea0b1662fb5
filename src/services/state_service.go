// backend/src/services/state_service.go
package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/username/nestegg/backend/src/logger"
	"github.com/username/nestegg/backend/src/models"
	"github.com/username/nestegg/backend/src/storage"
)

// StateService owns the dashboard session state. The state starts from
// defaults, is overlaid with the snapshot file once at startup, and is
// written back (snapshot plus history upsert) on the explicit save action.
type StateService struct {
	mu        sync.RWMutex
	state     *models.DashboardState
	snapshots *storage.SnapshotStore
	history   *storage.HistoryStore
}

func NewStateService(snapshots *storage.SnapshotStore, history *storage.HistoryStore, targetNetWorth float64) *StateService {
	return &StateService{
		state:     models.DefaultDashboardState(targetNetWorth),
		snapshots: snapshots,
		history:   history,
	}
}

// LoadSnapshot overlays persisted values onto the in-memory defaults.
// A missing snapshot file leaves the defaults untouched.
func (s *StateService) LoadSnapshot() error {
	data, err := s.snapshots.Load()
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}
	if len(data) == 0 {
		logger.L.Info("No snapshot data found, starting from defaults")
		return nil
	}

	// Re-encode the stored map and decode it over the defaults so stored
	// keys overwrite and absent keys keep their default values.
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("re-encoding snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := json.Unmarshal(payload, s.state); err != nil {
		return fmt.Errorf("applying snapshot: %w", err)
	}
	logger.L.Info("Snapshot applied to session state", "keys", len(data))
	return nil
}

// Get returns a deep copy of the current state.
func (s *StateService) Get() models.DashboardState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, _ := json.Marshal(s.state)
	var copied models.DashboardState
	_ = json.Unmarshal(payload, &copied)
	return copied
}

// Update replaces the session state with the submitted form values.
func (s *StateService) Update(state models.DashboardState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = &state
}

// RecordTotals stores the just-computed family figures so the goal view
// and the save action read consistent numbers.
func (s *StateService) RecordTotals(agg FamilyAggregate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.TotalFamilyAsset = agg.GrossAsset
	s.state.TotalLoanBalance = agg.LoanBalance
	s.state.Breakdown = agg.Breakdown
}

// Save persists the snapshot and upserts today's net-worth history row.
// Persistence failures are collected as warnings, not returned as errors:
// the in-memory state for the session is never lost over a bad disk.
func (s *StateService) Save() []string {
	s.mu.RLock()
	state := s.state
	payload, err := json.Marshal(state)
	s.mu.RUnlock()

	warnings := []string{}
	if err != nil {
		return append(warnings, fmt.Sprintf("could not encode state: %v", err))
	}

	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return append(warnings, fmt.Sprintf("could not encode state: %v", err))
	}
	if err := s.snapshots.Save(data); err != nil {
		logger.L.Error("Snapshot save failed", "error", err)
		warnings = append(warnings, fmt.Sprintf("snapshot save failed: %v", err))
	}

	today := time.Now().Format("2006-01-02")
	total := state.TotalFamilyAsset
	net := total - state.TotalLoanBalance
	if err := s.history.Record(today, total, net); err != nil {
		logger.L.Error("History record failed", "error", err)
		warnings = append(warnings, fmt.Sprintf("history record failed: %v", err))
	}
	return warnings
}

// History exposes the migrated net-worth rows for the goal chart.
func (s *StateService) History() ([]models.NetWorthSnapshot, error) {
	return s.history.Load()
}
