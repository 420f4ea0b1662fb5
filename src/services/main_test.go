package services

import (
	"os"
	"testing"

	"github.com/username/nestegg/backend/src/logger"
	"github.com/username/nestegg/backend/src/models"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

// fakeQuoteService is a canned-data QuoteService for tests.
type fakeQuoteService struct {
	prices  map[string]float64
	deltas  map[string]float64
	history map[string][]Bar
	fx      models.FxRate
	histErr error
}

func (f *fakeQuoteService) GetCurrentPrice(ticker string) float64 {
	return f.prices[ticker]
}

func (f *fakeQuoteService) GetDailyDelta(ticker string) float64 {
	return f.deltas[ticker]
}

func (f *fakeQuoteService) GetFxRate(pair string) models.FxRate {
	return f.fx
}

func (f *fakeQuoteService) GetHistory(ticker string, rng string) ([]Bar, error) {
	if f.histErr != nil {
		return nil, f.histErr
	}
	return f.history[ticker], nil
}
