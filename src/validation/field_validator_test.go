package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/username/nestegg/backend/src/models"
)

func TestValidateTicker(t *testing.T) {
	valid := []string{"NVDA", "BRK.B", "KRW=X", "SOXL", "A", "BTC-USD"}
	for _, s := range valid {
		assert.NoError(t, ValidateTicker(s), s)
	}

	invalid := []string{"", "nvda", "BAD!CHAR", "=X", "THISTICKERISTOOLONG"}
	for _, s := range invalid {
		assert.Error(t, ValidateTicker(s), s)
	}
}

func TestValidateRounds(t *testing.T) {
	assert.Error(t, ValidateRounds(0))
	assert.NoError(t, ValidateRounds(1))
	assert.NoError(t, ValidateRounds(MaxLadderRounds))
	assert.Error(t, ValidateRounds(MaxLadderRounds+1))
}

func TestValidatePerson(t *testing.T) {
	ok := models.PersonPortfolio{
		Key:         "FA",
		DisplayName: "Family 1",
		Holdings: []models.HoldingEntry{
			{Ticker: "NVDA", Quantity: 10, CostBasis: 100},
			{Ticker: "", Quantity: 0}, // blank form row
		},
	}
	assert.NoError(t, ValidatePerson(ok))

	badTicker := ok
	badTicker.Holdings = []models.HoldingEntry{{Ticker: "no spaces", Quantity: 1}}
	assert.Error(t, ValidatePerson(badTicker))

	negativeQty := ok
	negativeQty.Holdings = []models.HoldingEntry{{Ticker: "NVDA", Quantity: -1}}
	assert.Error(t, ValidatePerson(negativeQty))

	tooMany := ok
	tooMany.Holdings = make([]models.HoldingEntry, MaxHoldingsPerPerson+1)
	assert.Error(t, ValidatePerson(tooMany))
}

func TestValidateStateChecksLoansAndRealEstate(t *testing.T) {
	state := models.DashboardState{
		Loans: []models.Loan{{Label: "Mortgage", Balance: -1}},
	}
	assert.Error(t, ValidateState(state))

	state = models.DashboardState{
		RealEstate: []models.RealEstateAsset{{Label: "Home", CurrentValue: -5}},
	}
	assert.Error(t, ValidateState(state))

	assert.NoError(t, ValidateState(models.DashboardState{}))
}
