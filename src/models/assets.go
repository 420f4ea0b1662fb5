package models

// Fixed asset-breakdown categories. The sum of the three category values
// always equals the family gross asset at the time of computation.
const (
	CategoryStocksUSD  = "stocks_usd" // equities plus USD cash, converted to KRW
	CategoryCashKRW    = "cash_krw"
	CategoryRealEstate = "real_estate"
)

// AssetBreakdown maps a category name to its KRW total.
type AssetBreakdown map[string]float64

// HoldingEntry is one manually entered equity position.
// Entries are ephemeral: they are re-created from form input on every
// evaluation and only aggregate totals are persisted.
type HoldingEntry struct {
	Ticker    string  `json:"ticker"`
	Quantity  int     `json:"quantity"`
	CostBasis float64 `json:"cost_basis"` // purchase price per share, USD
}

// HoldingValuation is the evaluated result for a single holding.
type HoldingValuation struct {
	Ticker         string  `json:"ticker"`
	Quantity       int     `json:"quantity"`
	CurrentPrice   float64 `json:"current_price"`
	EvaluatedValue float64 `json:"evaluated_value"`
	InvestedAmount float64 `json:"invested_amount"`
	Profit         float64 `json:"profit"`
	ProfitRate     float64 `json:"profit_rate"` // percent; 0 when nothing invested
	DailyDelta     float64 `json:"daily_delta"` // per-share delta times quantity, USD
}

// PersonPortfolio groups one family member's holdings and cash balances.
type PersonPortfolio struct {
	Key         string         `json:"key"` // stable form key, e.g. "FA"
	DisplayName string         `json:"display_name"`
	CashUSD     float64        `json:"cash_usd"`
	CashKRW     float64        `json:"cash_krw"`
	Holdings    []HoldingEntry `json:"holdings"`
}

// PortfolioValuation aggregates the evaluated holdings of one person.
type PortfolioValuation struct {
	Holdings      []HoldingValuation `json:"holdings"`
	StockValueUSD float64            `json:"stock_value_usd"`
	DailyDeltaUSD float64            `json:"daily_delta_usd"`
	TotalAssetUSD float64            `json:"total_asset_usd"`
	TotalAssetKRW float64            `json:"total_asset_krw"`
	DailyDeltaKRW float64            `json:"daily_delta_krw"`
}

// RealEstateAsset is a manually valued property. CurrentValue counts
// toward net worth only while Present is true.
type RealEstateAsset struct {
	Label         string  `json:"label"`
	PurchasePrice float64 `json:"purchase_price"`
	CurrentValue  float64 `json:"current_value"`
	Present       bool    `json:"present"`
}

// Loan is an outstanding liability.
type Loan struct {
	Label         string  `json:"label"`
	Balance       float64 `json:"balance"`
	AnnualRatePct float64 `json:"annual_rate_pct"`
}

// FxRate is the USD/KRW rate with its day-over-day change.
type FxRate struct {
	Rate        float64 `json:"rate"`
	DeltaVsPrev float64 `json:"delta_vs_prev"`
}

// NetWorthSnapshot is one persisted net-worth row, keyed by calendar date.
// Asset values are always float-typed; the history file contract depends
// on it (see storage.HistoryStore).
type NetWorthSnapshot struct {
	Date       string  `json:"date"` // YYYY-MM-DD
	TotalAsset float64 `json:"total_asset"`
	NetAsset   float64 `json:"net_asset"`
}

// TickerStats is one row of the core/watch ticker analysis table.
type TickerStats struct {
	Ticker         string  `json:"ticker"`
	CurrentPrice   float64 `json:"current_price"`
	DailyChangePct float64 `json:"daily_change_pct"`
	AllTimeHigh    float64 `json:"all_time_high"`
	DrawdownPct    float64 `json:"drawdown_pct"` // distance from ATH, negative or zero
}
