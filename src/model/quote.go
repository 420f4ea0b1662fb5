package model

import (
	"database/sql"
	"time"

	"github.com/username/nestegg/backend/src/logger"
)

// DailyQuote represents a cached quote for a ticker on a specific day.
// PrevClose is kept alongside the close so the daily delta survives a
// provider outage within the same trading day.
type DailyQuote struct {
	TickerSymbol string
	Date         string // YYYY-MM-DD
	Price        float64
	PrevClose    float64
	Currency     string
	UpdatedAt    time.Time
}

// GetQuoteByTickerAndDate retrieves the cached quote for a ticker on one date.
// A miss is reported as sql.ErrNoRows.
func GetQuoteByTickerAndDate(db *sql.DB, ticker, date string) (DailyQuote, error) {
	var q DailyQuote
	query := `SELECT ticker_symbol, date, price, prev_close, currency, updated_at FROM daily_quotes WHERE ticker_symbol = ? AND date = ?`
	err := db.QueryRow(query, ticker, date).Scan(&q.TickerSymbol, &q.Date, &q.Price, &q.PrevClose, &q.Currency, &q.UpdatedAt)
	return q, err
}

// GetLatestQuote retrieves the most recently recorded quote for a ticker,
// regardless of date. Used as a last-resort fallback when the provider is
// unreachable and there is no row for today.
func GetLatestQuote(db *sql.DB, ticker string) (DailyQuote, error) {
	var q DailyQuote
	query := `SELECT ticker_symbol, date, price, prev_close, currency, updated_at FROM daily_quotes WHERE ticker_symbol = ? ORDER BY date DESC LIMIT 1`
	err := db.QueryRow(query, ticker).Scan(&q.TickerSymbol, &q.Date, &q.Price, &q.PrevClose, &q.Currency, &q.UpdatedAt)
	return q, err
}

// InsertOrUpdateQuote saves a quote to the cache, updating if it already exists for that day.
func InsertOrUpdateQuote(db *sql.DB, quote DailyQuote) error {
	query := `
        INSERT INTO daily_quotes (ticker_symbol, date, price, prev_close, currency, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(ticker_symbol, date) DO UPDATE SET
            price = excluded.price,
            prev_close = excluded.prev_close,
            currency = excluded.currency,
            updated_at = excluded.updated_at;
    `
	_, err := db.Exec(query, quote.TickerSymbol, quote.Date, quote.Price, quote.PrevClose, quote.Currency, time.Now())
	if err != nil {
		logger.L.Error("Failed to insert or update daily quote", "ticker", quote.TickerSymbol, "date", quote.Date, "error", err)
	}
	return err
}
