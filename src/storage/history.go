package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/username/nestegg/backend/src/logger"
	"github.com/username/nestegg/backend/src/models"
)

// HistoryStore persists one net-worth snapshot per calendar day to a CSV
// file. Rows are upserted by date: recording twice on the same day updates
// the existing row in place, never duplicates it.
//
// The store tolerates files written by earlier versions indefinitely: a
// legacy "Asset" column is renamed to "TotalAsset" and a missing
// "NetAsset" column is backfilled from "TotalAsset" on every load, not
// just once. Both value columns are parsed as floats unconditionally.
type HistoryStore struct {
	path string
	mu   sync.Mutex
}

func NewHistoryStore(path string) *HistoryStore {
	return &HistoryStore{path: path}
}

// Record upserts the row for date and rewrites the whole file.
// Any failure is returned as a plain error for the caller to surface as a
// warning; the store holds no in-memory state that could be lost.
func (s *HistoryStore) Record(date string, totalAsset, netAsset float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.load()
	if err != nil {
		return fmt.Errorf("loading history file: %w", err)
	}

	updated := false
	for i := range rows {
		if rows[i].Date == date {
			rows[i].TotalAsset = totalAsset
			rows[i].NetAsset = netAsset
			updated = true
			break
		}
	}
	if !updated {
		rows = append(rows, models.NetWorthSnapshot{Date: date, TotalAsset: totalAsset, NetAsset: netAsset})
	}

	if err := s.write(rows); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	logger.L.Info("Net-worth history recorded", "date", date, "totalAsset", totalAsset, "netAsset", netAsset, "rows", len(rows))
	return nil
}

// Load returns all history rows in their stored (insertion) order, with
// legacy columns migrated. A missing file yields an empty slice.
func (s *HistoryStore) Load() ([]models.NetWorthSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *HistoryStore) load() ([]models.NetWorthSnapshot, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // legacy files may have fewer columns
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	dateIdx, totalIdx, netIdx := -1, -1, -1
	for i, col := range header {
		switch col {
		case "Date":
			dateIdx = i
		case "TotalAsset":
			totalIdx = i
		case "Asset":
			// Legacy column name; treated as TotalAsset unless the new
			// name is also present.
			if totalIdx == -1 {
				totalIdx = i
			}
		case "NetAsset":
			netIdx = i
		}
	}
	if dateIdx == -1 {
		return nil, fmt.Errorf("history file has no Date column")
	}

	rows := make([]models.NetWorthSnapshot, 0, len(records)-1)
	for lineNo, rec := range records[1:] {
		if dateIdx >= len(rec) {
			return nil, fmt.Errorf("row %d is missing the date field", lineNo+2)
		}
		row := models.NetWorthSnapshot{Date: rec[dateIdx]}

		if totalIdx >= 0 && totalIdx < len(rec) {
			v, err := strconv.ParseFloat(rec[totalIdx], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid total asset %q: %w", lineNo+2, rec[totalIdx], err)
			}
			row.TotalAsset = v
		}
		if netIdx >= 0 && netIdx < len(rec) {
			v, err := strconv.ParseFloat(rec[netIdx], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid net asset %q: %w", lineNo+2, rec[netIdx], err)
			}
			row.NetAsset = v
		} else {
			// Missing NetAsset column defaults to a copy of TotalAsset.
			row.NetAsset = row.TotalAsset
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *HistoryStore) write(rows []models.NetWorthSnapshot) error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"Date", "TotalAsset", "NetAsset"}); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			row.Date,
			strconv.FormatFloat(row.TotalAsset, 'f', -1, 64),
			strconv.FormatFloat(row.NetAsset, 'f', -1, 64),
		}
		if err := writer.Write(rec); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
