package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTickerList(t *testing.T) {
	assert.Equal(t, []string{"NVDA", "TSLA", "AAPL"}, ParseTickerList("NVDA, tsla , AAPL,"))
	assert.Empty(t, ParseTickerList("  , ,"))
}

func TestAnalyzeGroupComputesDrawdownFromAllTimeHigh(t *testing.T) {
	quotes := &fakeQuoteService{
		history: map[string][]Bar{
			"NVDA": {
				{Date: "2024-01-01", Close: 100.0},
				{Date: "2024-01-02", Close: 200.0}, // ATH
				{Date: "2024-01-03", Close: 160.0},
				{Date: "2024-01-04", Close: 150.0},
			},
		},
	}
	svc := NewAnalysisService(quotes)

	stats := svc.AnalyzeGroup("NVDA")

	require.Len(t, stats, 1)
	s := stats[0]
	assert.InDelta(t, 150.0, s.CurrentPrice, 1e-9)
	assert.InDelta(t, 200.0, s.AllTimeHigh, 1e-9)
	assert.InDelta(t, (150.0-200.0)/200.0*100, s.DrawdownPct, 1e-9)
	assert.InDelta(t, (150.0-160.0)/160.0*100, s.DailyChangePct, 1e-9)
}

func TestAnalyzeGroupSingleBarHasZeroDailyChange(t *testing.T) {
	quotes := &fakeQuoteService{
		history: map[string][]Bar{"IPO": {{Date: "2024-01-01", Close: 42.0}}},
	}
	svc := NewAnalysisService(quotes)

	stats := svc.AnalyzeGroup("IPO")

	require.Len(t, stats, 1)
	assert.InDelta(t, 0.0, stats[0].DailyChangePct, 1e-9)
	assert.InDelta(t, 0.0, stats[0].DrawdownPct, 1e-9)
}

func TestAnalyzeGroupSkipsTickersWithoutHistory(t *testing.T) {
	quotes := &fakeQuoteService{
		history: map[string][]Bar{"GOOD": {{Date: "2024-01-01", Close: 10.0}}},
	}
	svc := NewAnalysisService(quotes)

	stats := svc.AnalyzeGroup("GOOD, MISSING")

	require.Len(t, stats, 1)
	assert.Equal(t, "GOOD", stats[0].Ticker)
}

func TestAnalyzeGroupToleratesProviderErrors(t *testing.T) {
	quotes := &fakeQuoteService{histErr: fmt.Errorf("provider down")}
	svc := NewAnalysisService(quotes)

	stats := svc.AnalyzeGroup("NVDA, TSLA")

	assert.Empty(t, stats)
}
