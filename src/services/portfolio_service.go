// backend/src/services/portfolio_service.go
package services

import (
	"strings"

	"github.com/username/nestegg/backend/src/models"
)

// PortfolioService values manually entered holdings against live quotes.
type PortfolioService struct {
	quotes QuoteService
}

func NewPortfolioService(quotes QuoteService) *PortfolioService {
	return &PortfolioService{quotes: quotes}
}

// Evaluate computes the per-holding and aggregate valuation for one
// person. Holdings with an empty ticker, a non-positive quantity, or no
// available price are omitted from the results and the totals.
func (s *PortfolioService) Evaluate(person models.PersonPortfolio, fx models.FxRate) models.PortfolioValuation {
	valuation := models.PortfolioValuation{Holdings: []models.HoldingValuation{}}

	for _, h := range person.Holdings {
		ticker := strings.ToUpper(strings.TrimSpace(h.Ticker))
		if ticker == "" || h.Quantity <= 0 {
			continue
		}
		price := s.quotes.GetCurrentPrice(ticker)
		if price <= 0 {
			// Provider signaled "no data"; the entry must not poison the
			// totals with zeros or NaN.
			continue
		}

		qty := float64(h.Quantity)
		evaluated := price * qty
		invested := h.CostBasis * qty
		profit := evaluated - invested
		rate := 0.0
		if invested > 0 {
			rate = profit / invested * 100
		}
		delta := s.quotes.GetDailyDelta(ticker) * qty

		valuation.Holdings = append(valuation.Holdings, models.HoldingValuation{
			Ticker:         ticker,
			Quantity:       h.Quantity,
			CurrentPrice:   price,
			EvaluatedValue: evaluated,
			InvestedAmount: invested,
			Profit:         profit,
			ProfitRate:     rate,
			DailyDelta:     delta,
		})
		valuation.StockValueUSD += evaluated
		valuation.DailyDeltaUSD += delta
	}

	valuation.TotalAssetUSD = valuation.StockValueUSD + person.CashUSD
	if fx.Rate > 0 {
		valuation.TotalAssetUSD += person.CashKRW / fx.Rate
	}
	valuation.TotalAssetKRW = (valuation.StockValueUSD+person.CashUSD)*fx.Rate + person.CashKRW
	valuation.DailyDeltaKRW = valuation.DailyDeltaUSD * fx.Rate

	return valuation
}
