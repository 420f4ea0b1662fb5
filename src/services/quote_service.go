// backend/src/services/quote_service.go
package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/nestegg/backend/src/logger"
	"github.com/username/nestegg/backend/src/model"
	"github.com/username/nestegg/backend/src/models"
	"golang.org/x/net/publicsuffix"
)

const defaultQuoteBaseURL = "https://query1.finance.yahoo.com"

const quoteUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// --- API Response Structs ---

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency string `json:"currency"`
				Symbol   string `json:"symbol"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// dailySeries is the cached last/previous close pair for one ticker.
type dailySeries struct {
	Curr    float64
	Prev    float64
	HasPrev bool
	OK      bool
}

// --- Service Implementation ---

type quoteServiceImpl struct {
	httpClient    http.Client
	baseURL       string
	isInitialized bool
	crumb         string
	mu            sync.Mutex

	quoteCache *cache.Cache
	fxCache    *cache.Cache

	db            *sql.DB // optional second-level daily quote cache
	defaultFxRate float64
}

// NewQuoteService builds the Yahoo Finance backed quote provider. db may
// be nil; when present, fetched quotes are written through to the
// daily_quotes table and read back when the provider is unreachable.
func NewQuoteService(db *sql.DB, priceTTL, fxTTL time.Duration, defaultFxRate float64) QuoteService {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		logger.L.Error("Failed to create cookie jar", "error", err)
	}

	client := http.Client{
		Jar:     jar,
		Timeout: 20 * time.Second,
	}

	s := &quoteServiceImpl{
		httpClient:    client,
		baseURL:       defaultQuoteBaseURL,
		quoteCache:    cache.New(priceTTL, 2*priceTTL),
		fxCache:       cache.New(fxTTL, 2*fxTTL),
		db:            db,
		defaultFxRate: defaultFxRate,
	}

	go s.initializeYahooSession()

	return s
}

func (s *quoteServiceImpl) initializeYahooSession() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isInitialized && s.crumb != "" {
		return
	}

	logger.L.Info("Initializing Yahoo Finance session and fetching Crumb...")

	req1, _ := http.NewRequest("GET", "https://fc.yahoo.com", nil)
	req1.Header.Set("User-Agent", quoteUserAgent)
	resp1, err := s.httpClient.Do(req1)
	if err == nil {
		io.Copy(io.Discard, resp1.Body)
		resp1.Body.Close()
	}

	req2, _ := http.NewRequest("GET", "https://finance.yahoo.com", nil)
	req2.Header.Set("User-Agent", quoteUserAgent)
	resp2, err := s.httpClient.Do(req2)
	if err == nil {
		io.Copy(io.Discard, resp2.Body)
		resp2.Body.Close()
	}

	req3, _ := http.NewRequest("GET", s.baseURL+"/v1/test/getcrumb", nil)
	req3.Header.Set("User-Agent", quoteUserAgent)
	resp3, err := s.httpClient.Do(req3)
	if err != nil {
		logger.L.Error("Failed to fetch crumb", "error", err)
		return
	}
	defer resp3.Body.Close()

	if resp3.StatusCode == http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp3.Body)
		s.crumb = string(bodyBytes)
		s.isInitialized = true
		logger.L.Info("Yahoo session initialized successfully")
	} else {
		logger.L.Warn("Failed to fetch crumb", "status", resp3.Status)
	}
}

func (s *quoteServiceImpl) ensureSession() {
	s.mu.Lock()
	needsInit := !s.isInitialized || s.crumb == ""
	s.mu.Unlock()

	if needsInit {
		s.initializeYahooSession()
	}
}

// fetchBars retrieves the daily close series for a symbol over a Yahoo
// range. Bars with a zero close are skipped.
func (s *quoteServiceImpl) fetchBars(symbol, rng string) ([]Bar, error) {
	s.ensureSession()

	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s&crumb=%s", s.baseURL, symbol, rng, s.crumb)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", quoteUserAgent)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Yahoo chart API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == 401 {
		s.mu.Lock()
		s.isInitialized = false
		s.mu.Unlock()
		return nil, fmt.Errorf("status 401 (Unauthorized) - Crumb invalid")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo chart API returned non-OK status %d", resp.StatusCode)
	}

	var data yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode Yahoo chart response: %w", err)
	}
	if data.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart API returned an error: %v", data.Chart.Error)
	}
	if len(data.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart result found")
	}
	result := data.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data found")
	}
	closes := result.Indicators.Quote[0].Close
	timestamps := result.Timestamp
	if len(timestamps) != len(closes) {
		return nil, fmt.Errorf("data mismatch")
	}

	bars := make([]Bar, 0, len(closes))
	for i, ts := range timestamps {
		if closes[i] == 0 {
			continue
		}
		bars = append(bars, Bar{
			Date:  time.Unix(ts, 0).Format("2006-01-02"),
			Close: closes[i],
		})
	}
	return bars, nil
}

// getDailySeries returns the cached (current, previous) close pair for a
// ticker, fetching and caching on miss. A provider failure degrades to
// the sqlite quote cache before giving up with a zero sentinel.
func (s *quoteServiceImpl) getDailySeries(ticker string) dailySeries {
	cacheKey := "series-" + ticker
	if v, found := s.quoteCache.Get(cacheKey); found {
		return v.(dailySeries)
	}

	series := dailySeries{}
	bars, err := s.fetchBars(ticker, "5d")
	switch {
	case err == nil && len(bars) > 0:
		series.Curr = bars[len(bars)-1].Close
		series.OK = true
		if len(bars) >= 2 {
			series.Prev = bars[len(bars)-2].Close
			series.HasPrev = true
		}
		s.storeQuote(ticker, series)
	default:
		if err != nil {
			logger.L.Warn("Could not fetch quote, falling back to stored close", "ticker", ticker, "error", err)
		}
		series = s.storedSeries(ticker)
	}

	s.quoteCache.Set(cacheKey, series, cache.DefaultExpiration)
	return series
}

func (s *quoteServiceImpl) storeQuote(ticker string, series dailySeries) {
	if s.db == nil {
		return
	}
	q := model.DailyQuote{
		TickerSymbol: ticker,
		Date:         time.Now().Format("2006-01-02"),
		Price:        series.Curr,
		Currency:     "USD",
	}
	if series.HasPrev {
		q.PrevClose = series.Prev
	}
	model.InsertOrUpdateQuote(s.db, q)
}

func (s *quoteServiceImpl) storedSeries(ticker string) dailySeries {
	if s.db == nil {
		return dailySeries{}
	}
	today := time.Now().Format("2006-01-02")
	q, err := model.GetQuoteByTickerAndDate(s.db, ticker, today)
	if err != nil {
		q, err = model.GetLatestQuote(s.db, ticker)
	}
	if err != nil || q.Price <= 0 {
		return dailySeries{}
	}
	return dailySeries{
		Curr:    q.Price,
		Prev:    q.PrevClose,
		HasPrev: q.PrevClose > 0,
		OK:      true,
	}
}

// --- QuoteService ---

func (s *quoteServiceImpl) GetCurrentPrice(ticker string) float64 {
	if ticker == "" {
		return 0.0
	}
	series := s.getDailySeries(ticker)
	if !series.OK {
		return 0.0
	}
	return series.Curr
}

func (s *quoteServiceImpl) GetDailyDelta(ticker string) float64 {
	if ticker == "" {
		return 0.0
	}
	series := s.getDailySeries(ticker)
	if !series.OK || !series.HasPrev {
		return 0.0
	}
	return series.Curr - series.Prev
}

func (s *quoteServiceImpl) GetFxRate(pair string) models.FxRate {
	cacheKey := "fx-" + pair
	if v, found := s.fxCache.Get(cacheKey); found {
		return v.(models.FxRate)
	}

	fx := models.FxRate{Rate: s.defaultFxRate, DeltaVsPrev: 0.0}
	bars, err := s.fetchBars(pair, "5d")
	if err != nil || len(bars) < 2 {
		if err != nil {
			logger.L.Warn("Could not fetch FX rate, using default", "pair", pair, "default", s.defaultFxRate, "error", err)
		}
	} else {
		fx.Rate = bars[len(bars)-1].Close
		fx.DeltaVsPrev = bars[len(bars)-1].Close - bars[len(bars)-2].Close
	}

	s.fxCache.Set(cacheKey, fx, cache.DefaultExpiration)
	return fx
}

func (s *quoteServiceImpl) GetHistory(ticker string, rng string) ([]Bar, error) {
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	cacheKey := fmt.Sprintf("history-%s-%s", rng, ticker)
	if v, found := s.quoteCache.Get(cacheKey); found {
		return v.([]Bar), nil
	}
	bars, err := s.fetchBars(ticker, rng)
	if err != nil {
		return nil, err
	}
	s.quoteCache.Set(cacheKey, bars, cache.DefaultExpiration)
	return bars, nil
}
