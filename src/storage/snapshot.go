package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/username/nestegg/backend/src/logger"
)

// SnapshotStore persists the raw dashboard inputs as a JSON key-value
// file. The file is rewritten in full on every save and read in full once
// at startup; loaded values overwrite in-memory defaults.
type SnapshotStore struct {
	path string
	mu   sync.Mutex
}

func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Save writes the whole snapshot. Values must be scalars or simple
// containers (anything encoding/json can represent).
func (s *SnapshotStore) Save(data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0644); err != nil {
		return fmt.Errorf("writing snapshot file: %w", err)
	}
	logger.L.Info("Snapshot saved", "path", s.path, "keys", len(data))
	return nil
}

// Load reads the stored snapshot. A missing file is not an error; it
// yields an empty map so defaults stay in place.
func (s *SnapshotStore) Load() (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}

	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return data, nil
}
