package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/nestegg/backend/src/models"
)

func newTestNetWorthService(quotes QuoteService) *NetWorthService {
	return NewNetWorthService(NewPortfolioService(quotes))
}

func TestAggregateFamilyTotalsAndBreakdown(t *testing.T) {
	quotes := &fakeQuoteService{
		prices: map[string]float64{"NVDA": 100.0},
		deltas: map[string]float64{"NVDA": 1.0},
	}
	svc := newTestNetWorthService(quotes)
	fx := models.FxRate{Rate: 1400.0}

	persons := []models.PersonPortfolio{
		{Key: "FA", CashUSD: 100.0, CashKRW: 500000.0, Holdings: []models.HoldingEntry{{Ticker: "NVDA", Quantity: 10, CostBasis: 50.0}}},
		{Key: "FB", CashUSD: 50.0, CashKRW: 200000.0},
	}
	realEstate := []models.RealEstateAsset{
		{Label: "Apartment", CurrentValue: 700000000.0, Present: true},
		{Label: "Ignored", CurrentValue: 100000000.0, Present: false},
	}
	loans := []models.Loan{
		{Label: "Mortgage", Balance: 100000000.0},
		{Label: "Credit", Balance: 5000000.0},
	}

	agg := svc.Aggregate(persons, realEstate, loans, fx)

	require.Len(t, agg.Persons, 2)

	// Person FA: (1000 stock + 100 cash) * 1400 = 1,540,000 KRW stock group.
	assert.InDelta(t, 1540000.0, agg.Persons[0].StockGroupKRW, 1e-6)
	assert.InDelta(t, 500000.0, agg.Persons[0].CashGroupKRW, 1e-6)
	assert.InDelta(t, 10*1.0*1400.0, agg.Persons[0].DailyDeltaKRW, 1e-6)

	// Only present real estate counts.
	assert.InDelta(t, 700000000.0, agg.RealEstateKRW, 1e-6)

	wantStocks := 1540000.0 + 50.0*1400.0
	wantCash := 500000.0 + 200000.0
	assert.InDelta(t, wantStocks, agg.Breakdown[models.CategoryStocksUSD], 1e-6)
	assert.InDelta(t, wantCash, agg.Breakdown[models.CategoryCashKRW], 1e-6)
	assert.InDelta(t, 700000000.0, agg.Breakdown[models.CategoryRealEstate], 1e-6)

	// Breakdown categories always sum to the gross asset.
	sum := 0.0
	for _, v := range agg.Breakdown {
		sum += v
	}
	assert.InDelta(t, agg.GrossAsset, sum, 1e-6)

	assert.InDelta(t, 105000000.0, agg.LoanBalance, 1e-6)
	assert.InDelta(t, agg.GrossAsset-agg.LoanBalance, agg.NetAsset, 1e-6)
	assert.InDelta(t, agg.Persons[0].DailyDeltaKRW+agg.Persons[1].DailyDeltaKRW, agg.DailyDeltaKRW, 1e-6)
}

func TestAggregateEmptyInputs(t *testing.T) {
	svc := newTestNetWorthService(&fakeQuoteService{})

	agg := svc.Aggregate(nil, nil, nil, models.FxRate{Rate: 1400.0})

	assert.InDelta(t, 0.0, agg.GrossAsset, 1e-9)
	assert.InDelta(t, 0.0, agg.NetAsset, 1e-9)
	assert.Len(t, agg.Breakdown, 3)
}

func TestGoalProgressClamping(t *testing.T) {
	svc := newTestNetWorthService(&fakeQuoteService{})

	tests := []struct {
		name     string
		net      float64
		target   float64
		progress float64
	}{
		{"halfway", 2500000000.0, 5000000000.0, 0.5},
		{"overshoot clamps to one", 6000000000.0, 5000000000.0, 1.0},
		{"negative clamps to zero", -100.0, 5000000000.0, 0.0},
		{"zero target", 100.0, 0.0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := svc.Goal(tt.net, tt.target, 0)
			assert.InDelta(t, tt.progress, goal.Progress, 1e-9)
			assert.InDelta(t, tt.progress*100, goal.ProgressPct, 1e-9)
			assert.InDelta(t, tt.target-tt.net, goal.Remaining, 1e-9)
		})
	}
}
