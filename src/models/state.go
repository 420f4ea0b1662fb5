package models

// SimulatorSettings holds the buy-ladder form inputs.
type SimulatorSettings struct {
	Ticker          string  `json:"ticker"`
	AvgCost         float64 `json:"avg_cost"`  // existing position average cost, USD
	Quantity        int     `json:"quantity"`  // existing position size
	Cash            float64 `json:"cash"`      // total cash allocated to the ladder, USD
	Rounds          int     `json:"rounds"`
	DropRatePct     float64 `json:"drop_rate_pct"`
	StartPrice      float64 `json:"start_price"`
	TargetSellPrice float64 `json:"target_sell_price"`
}

// DashboardState is the whole mutable session state of the dashboard.
// It is initialized with defaults, overlaid from the snapshot file at
// startup, and passed down explicitly to the components that need it.
type DashboardState struct {
	Family     []PersonPortfolio `json:"family"`
	Dependents []PersonPortfolio `json:"dependents"`

	CoreTickers  string `json:"core_tickers"`
	WatchTickers string `json:"watch_tickers"`

	Simulator  SimulatorSettings `json:"simulator"`
	RealEstate []RealEstateAsset `json:"real_estate"`
	Loans      []Loan            `json:"loans"`

	TargetNetWorth float64 `json:"target_net_worth"`

	// Last computed family totals, filled by the net-worth evaluation and
	// consumed by the goal view and the explicit save action.
	TotalFamilyAsset float64        `json:"total_family_asset"`
	TotalLoanBalance float64        `json:"total_loan_balance"`
	Breakdown        AssetBreakdown `json:"asset_breakdown"`
}

// DefaultDashboardState returns the initial session state used when no
// snapshot file exists yet.
func DefaultDashboardState(targetNetWorth float64) *DashboardState {
	return &DashboardState{
		Family: []PersonPortfolio{
			{Key: "FA", DisplayName: "Family 1", CashUSD: 1000.0, Holdings: []HoldingEntry{{Ticker: "NVDA", Quantity: 10, CostBasis: 100.0}}},
			{Key: "FB", DisplayName: "Family 2", CashUSD: 1000.0, Holdings: []HoldingEntry{}},
		},
		Dependents: []PersonPortfolio{
			{Key: "C1", DisplayName: "Child 1", CashUSD: 500.0, Holdings: []HoldingEntry{{Ticker: "AAPL", Quantity: 5, CostBasis: 150.0}}},
			{Key: "C2", DisplayName: "Child 2", CashUSD: 500.0, Holdings: []HoldingEntry{}},
		},
		CoreTickers:  "NVDA, TSLA, AAPL, MSFT",
		WatchTickers: "PLTR, SOXL, TQQQ, AMD",
		Simulator: SimulatorSettings{
			Ticker:      "NVDA",
			Cash:        1000.0,
			Rounds:      5,
			DropRatePct: 5.0,
		},
		RealEstate:     []RealEstateAsset{},
		Loans:          []Loan{{Label: "Mortgage", Balance: 0, AnnualRatePct: 4.5}},
		TargetNetWorth: targetNetWorth,
		Breakdown: AssetBreakdown{
			CategoryStocksUSD:  0,
			CategoryCashKRW:    0,
			CategoryRealEstate: 0,
		},
	}
}
