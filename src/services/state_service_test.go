package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/nestegg/backend/src/models"
	"github.com/username/nestegg/backend/src/storage"
)

func newTestStateService(t *testing.T) *StateService {
	t.Helper()
	dir := t.TempDir()
	snapshots := storage.NewSnapshotStore(filepath.Join(dir, "stock_dashboard_data.json"))
	history := storage.NewHistoryStore(filepath.Join(dir, "asset_history.csv"))
	return NewStateService(snapshots, history, 5_000_000_000)
}

func TestLoadSnapshotMissingFileKeepsDefaults(t *testing.T) {
	svc := newTestStateService(t)
	require.NoError(t, svc.LoadSnapshot())

	state := svc.Get()
	assert.Equal(t, "NVDA, TSLA, AAPL, MSFT", state.CoreTickers)
	assert.Equal(t, 5_000_000_000.0, state.TargetNetWorth)
	assert.Len(t, state.Dependents, 2)
}

func TestLoadSnapshotOverlaysStoredValues(t *testing.T) {
	dir := t.TempDir()
	snapshots := storage.NewSnapshotStore(filepath.Join(dir, "snap.json"))
	history := storage.NewHistoryStore(filepath.Join(dir, "hist.csv"))
	require.NoError(t, snapshots.Save(map[string]any{
		"core_tickers":     "AMD",
		"target_net_worth": 1_000_000.0,
	}))

	svc := NewStateService(snapshots, history, 5_000_000_000)
	require.NoError(t, svc.LoadSnapshot())

	state := svc.Get()
	assert.Equal(t, "AMD", state.CoreTickers)
	assert.Equal(t, 1_000_000.0, state.TargetNetWorth)
	// Keys absent from the snapshot keep their defaults.
	assert.Equal(t, "PLTR, SOXL, TQQQ, AMD", state.WatchTickers)
}

func TestGetReturnsDeepCopy(t *testing.T) {
	svc := newTestStateService(t)

	state := svc.Get()
	state.CoreTickers = "MUTATED"
	if len(state.Dependents) > 0 {
		state.Dependents[0].CashUSD = -1
	}

	fresh := svc.Get()
	assert.Equal(t, "NVDA, TSLA, AAPL, MSFT", fresh.CoreTickers)
	assert.NotEqual(t, -1.0, fresh.Dependents[0].CashUSD)
}

func TestUpdateReplacesState(t *testing.T) {
	svc := newTestStateService(t)

	state := svc.Get()
	state.WatchTickers = "IONQ"
	svc.Update(state)

	assert.Equal(t, "IONQ", svc.Get().WatchTickers)
}

func TestRecordTotals(t *testing.T) {
	svc := newTestStateService(t)
	svc.RecordTotals(FamilyAggregate{
		GrossAsset:  3_000_000_000,
		LoanBalance: 400_000_000,
		Breakdown: models.AssetBreakdown{
			models.CategoryCashKRW: 3_000_000_000,
		},
	})

	state := svc.Get()
	assert.Equal(t, 3_000_000_000.0, state.TotalFamilyAsset)
	assert.Equal(t, 400_000_000.0, state.TotalLoanBalance)
	assert.Equal(t, 3_000_000_000.0, state.Breakdown[models.CategoryCashKRW])
}

func TestSavePersistsSnapshotAndHistory(t *testing.T) {
	svc := newTestStateService(t)
	svc.RecordTotals(FamilyAggregate{GrossAsset: 1000, LoanBalance: 100})

	warnings := svc.Save()
	assert.Empty(t, warnings)

	rows, err := svc.History()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1000.0, rows[0].TotalAsset)
	assert.Equal(t, 900.0, rows[0].NetAsset)

	// Saving twice on the same day upserts rather than appends.
	svc.RecordTotals(FamilyAggregate{GrossAsset: 2000, LoanBalance: 100})
	assert.Empty(t, svc.Save())
	rows, err = svc.History()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2000.0, rows[0].TotalAsset)
}

func TestSaveCollectsWarningsInsteadOfFailing(t *testing.T) {
	dir := t.TempDir()
	// Point both stores at paths under a file, so writes must fail.
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	snapshots := storage.NewSnapshotStore(filepath.Join(blocker, "snap.json"))
	history := storage.NewHistoryStore(filepath.Join(blocker, "hist.csv"))

	svc := NewStateService(snapshots, history, 5_000_000_000)
	warnings := svc.Save()
	assert.Len(t, warnings, 2)
}
