package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/username/nestegg/backend/src/logger"
	"github.com/username/nestegg/backend/src/models"
	"github.com/username/nestegg/backend/src/services"
	"github.com/username/nestegg/backend/src/storage"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

// stubQuoteService returns canned quotes so handler tests stay off the
// network and deterministic.
type stubQuoteService struct {
	prices  map[string]float64
	deltas  map[string]float64
	history map[string][]services.Bar
	fx      models.FxRate
}

func (s *stubQuoteService) GetCurrentPrice(ticker string) float64 { return s.prices[ticker] }
func (s *stubQuoteService) GetDailyDelta(ticker string) float64   { return s.deltas[ticker] }
func (s *stubQuoteService) GetFxRate(pair string) models.FxRate   { return s.fx }

func (s *stubQuoteService) GetHistory(ticker string, rng string) ([]services.Bar, error) {
	bars, ok := s.history[ticker]
	if !ok {
		return nil, os.ErrNotExist
	}
	return bars, nil
}

// testEnv wires the full handler set over temp-dir stores and the stub
// quote provider, mirroring the wiring in main.
type testEnv struct {
	quotes    *stubQuoteService
	state     *services.StateService
	dashboard *DashboardHandler
	analysis  *AnalysisHandler
	ladder    *LadderHandler
	netWorth  *NetWorthHandler
	portfolio *PortfolioHandler
	stateH    *StateHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	snapshots := storage.NewSnapshotStore(filepath.Join(dir, "stock_dashboard_data.json"))
	history := storage.NewHistoryStore(filepath.Join(dir, "asset_history.csv"))

	quotes := &stubQuoteService{
		prices: map[string]float64{"NVDA": 100.0, "AAPL": 200.0},
		deltas: map[string]float64{"NVDA": 2.0, "AAPL": -1.0},
		history: map[string][]services.Bar{
			"NVDA": {
				{Date: "2024-01-01", Close: 100},
				{Date: "2024-01-02", Close: 150},
				{Date: "2024-01-03", Close: 120},
			},
		},
		fx: models.FxRate{Rate: 1400.0, DeltaVsPrev: 5.0},
	}

	stateService := services.NewStateService(snapshots, history, 5_000_000_000)
	portfolioService := services.NewPortfolioService(quotes)
	netWorthService := services.NewNetWorthService(portfolioService)
	ladderService := services.NewLadderService()
	analysisService := services.NewAnalysisService(quotes)

	const fxPair = "KRW=X"
	return &testEnv{
		quotes:    quotes,
		state:     stateService,
		dashboard: NewDashboardHandler(stateService, netWorthService, quotes, fxPair),
		analysis:  NewAnalysisHandler(analysisService, stateService),
		ladder:    NewLadderHandler(ladderService, stateService, quotes, fxPair),
		netWorth:  NewNetWorthHandler(netWorthService, stateService, quotes, fxPair),
		portfolio: NewPortfolioHandler(portfolioService, stateService, quotes, fxPair),
		stateH:    NewStateHandler(stateService),
	}
}
