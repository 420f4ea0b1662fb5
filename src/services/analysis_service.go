// backend/src/services/analysis_service.go
package services

import (
	"strings"

	"github.com/username/nestegg/backend/src/logger"
	"github.com/username/nestegg/backend/src/models"
)

// AnalysisService builds the core/watch ticker tables: current price,
// day-over-day change, all-time-high close and drawdown from it.
type AnalysisService struct {
	quotes QuoteService
}

func NewAnalysisService(quotes QuoteService) *AnalysisService {
	return &AnalysisService{quotes: quotes}
}

// ParseTickerList splits a comma-separated ticker string into trimmed,
// upper-cased symbols, dropping empties.
func ParseTickerList(tickerCSV string) []string {
	parts := strings.Split(tickerCSV, ",")
	tickers := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.ToUpper(strings.TrimSpace(p))
		if t != "" {
			tickers = append(tickers, t)
		}
	}
	return tickers
}

// AnalyzeGroup computes stats for every ticker in a comma-separated list
// against its full ("max" range) close history. Tickers whose history is
// empty or unfetchable are skipped, never reported as zeros.
func (s *AnalysisService) AnalyzeGroup(tickerCSV string) []models.TickerStats {
	stats := []models.TickerStats{}

	for _, ticker := range ParseTickerList(tickerCSV) {
		bars, err := s.quotes.GetHistory(ticker, "max")
		if err != nil || len(bars) == 0 {
			if err != nil {
				logger.L.Warn("Skipping ticker in analysis", "ticker", ticker, "error", err)
			}
			continue
		}

		curr := bars[len(bars)-1].Close
		ath := 0.0
		for _, b := range bars {
			if b.Close > ath {
				ath = b.Close
			}
		}

		drawdown := 0.0
		if ath > 0 {
			drawdown = (curr - ath) / ath * 100
		}
		dailyChange := 0.0
		if len(bars) >= 2 && bars[len(bars)-2].Close > 0 {
			prev := bars[len(bars)-2].Close
			dailyChange = (curr - prev) / prev * 100
		}

		stats = append(stats, models.TickerStats{
			Ticker:         ticker,
			CurrentPrice:   curr,
			DailyChangePct: dailyChange,
			AllTimeHigh:    ath,
			DrawdownPct:    drawdown,
		})
	}
	return stats
}
