// backend/src/services/interfaces.go
package services

import (
	"github.com/username/nestegg/backend/src/models"
)

// Bar is one daily close observation.
type Bar struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Close float64 `json:"close"`
}

// QuoteService is the market-data provider boundary. Implementations must
// degrade, never fail the caller: an empty or unfetchable series yields a
// zero sentinel (prices, deltas) or the configured default (FX).
type QuoteService interface {
	// GetCurrentPrice returns the latest close for ticker, or 0.0 when the
	// ticker is empty or no data is available. Results are cached.
	GetCurrentPrice(ticker string) float64

	// GetDailyDelta returns the latest close minus the previous close, or
	// 0.0 when fewer than two bars are available. Results are cached.
	GetDailyDelta(ticker string) float64

	// GetFxRate returns the rate and day-over-day delta for a currency
	// pair such as "KRW=X", falling back to the configured default rate
	// with a zero delta on any failure. Results are cached.
	GetFxRate(pair string) models.FxRate

	// GetHistory returns the full daily close series for ticker over the
	// given Yahoo range ("5d", "1y", "max", ...).
	GetHistory(ticker string, rng string) ([]Bar, error)
}
