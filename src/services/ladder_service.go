// backend/src/services/ladder_service.go
package services

import (
	"math"

	"github.com/username/nestegg/backend/src/models"
)

// LadderParams describes one buy-ladder projection.
type LadderParams struct {
	StartPrice      float64 `json:"start_price"`
	DropRatePct     float64 `json:"drop_rate_pct"`
	Rounds          int     `json:"rounds"`
	Cash            float64 `json:"cash"` // total cash spread evenly across rounds
	InitialQty      int     `json:"initial_qty"`
	InitialAvgCost  float64 `json:"initial_avg_cost"`
	TargetSellPrice float64 `json:"target_sell_price"`
	FxRate          float64 `json:"fx_rate"`
}

// LadderRound is the projected state after one buy round.
type LadderRound struct {
	Round             int     `json:"round"`    // 1-based
	DropPct           float64 `json:"drop_pct"` // cumulative drawdown label for this round
	TargetPrice       float64 `json:"target_price"`
	TargetQty         int     `json:"target_qty"`
	InvestedAmount    float64 `json:"invested_amount"`
	CumulativeQty     int     `json:"cumulative_qty"`
	CumulativeAvgCost float64 `json:"cumulative_avg_cost"`
	UnrealizedPct     float64 `json:"unrealized_pct"` // at this round's buy price
	ExitPct           float64 `json:"exit_pct"`       // at the target sell price
	ExitValueUSD      float64 `json:"exit_value_usd"`
	ExitValueKRW      float64 `json:"exit_value_krw"`
}

// LadderResult is the full projection plus the terminal cash state.
type LadderResult struct {
	Rounds            []LadderRound `json:"rounds"`
	BudgetPerRound    float64       `json:"budget_per_round"`
	RemainingCash     float64       `json:"remaining_cash"`
	InsufficientFunds bool          `json:"insufficient_funds"`
	Shortfall         float64       `json:"shortfall"` // positive amount missing when underfunded
}

// LadderService projects a deterministic sequence of buy rounds at fixed
// percentage intervals below a starting price.
type LadderService struct{}

func NewLadderService() *LadderService {
	return &LadderService{}
}

// Simulate runs the ladder. Each round's share count is floored so the
// round budget is never exceeded; the leftover cash of a round is NOT
// rolled into the next round's budget. A negative terminal cash balance
// is a reportable state, not an error.
func (s *LadderService) Simulate(p LadderParams) LadderResult {
	result := LadderResult{Rounds: []LadderRound{}}
	if p.Rounds <= 0 {
		return result
	}

	result.BudgetPerRound = p.Cash / float64(p.Rounds)

	cumQty := p.InitialQty
	cumInvested := p.InitialAvgCost * float64(p.InitialQty)
	remaining := p.Cash

	for i := 0; i < p.Rounds; i++ {
		targetPrice := p.StartPrice * math.Pow(1-p.DropRatePct/100, float64(i))
		targetQty := 0
		if targetPrice > 0 {
			targetQty = int(math.Floor(result.BudgetPerRound / targetPrice))
		}
		invested := targetPrice * float64(targetQty)

		cumQty += targetQty
		cumInvested += invested
		remaining -= invested

		avgCost := 0.0
		if cumQty > 0 {
			avgCost = cumInvested / float64(cumQty)
		}
		unrealizedPct := 0.0
		exitPct := 0.0
		if avgCost > 0 {
			unrealizedPct = (targetPrice - avgCost) / avgCost * 100
			exitPct = (p.TargetSellPrice - avgCost) / avgCost * 100
		}
		exitUSD := float64(cumQty) * p.TargetSellPrice

		result.Rounds = append(result.Rounds, LadderRound{
			Round:             i + 1,
			DropPct:           float64(i) * p.DropRatePct,
			TargetPrice:       targetPrice,
			TargetQty:         targetQty,
			InvestedAmount:    invested,
			CumulativeQty:     cumQty,
			CumulativeAvgCost: avgCost,
			UnrealizedPct:     unrealizedPct,
			ExitPct:           exitPct,
			ExitValueUSD:      exitUSD,
			ExitValueKRW:      exitUSD * p.FxRate,
		})
	}

	result.RemainingCash = remaining
	if remaining < 0 {
		result.InsufficientFunds = true
		result.Shortfall = -remaining
	}
	return result
}

// ParamsFromSettings builds LadderParams from the persisted simulator
// form inputs plus the live FX rate.
func ParamsFromSettings(settings models.SimulatorSettings, fx models.FxRate) LadderParams {
	return LadderParams{
		StartPrice:      settings.StartPrice,
		DropRatePct:     settings.DropRatePct,
		Rounds:          settings.Rounds,
		Cash:            settings.Cash,
		InitialQty:      settings.Quantity,
		InitialAvgCost:  settings.AvgCost,
		TargetSellPrice: settings.TargetSellPrice,
		FxRate:          fx.Rate,
	}
}
