// backend/src/services/networth_service.go
package services

import (
	"github.com/username/nestegg/backend/src/models"
)

// PersonAssets is the per-person KRW view used by the family summary.
type PersonAssets struct {
	Key           string  `json:"key"`
	DisplayName   string  `json:"display_name"`
	StockGroupKRW float64 `json:"stock_group_krw"` // equities plus USD cash, converted
	CashGroupKRW  float64 `json:"cash_group_krw"`
	TotalKRW      float64 `json:"total_krw"`
	DailyDeltaKRW float64 `json:"daily_delta_krw"`
}

// FamilyAggregate is the full family-level net-worth picture.
type FamilyAggregate struct {
	Persons       []PersonAssets        `json:"persons"`
	RealEstateKRW float64               `json:"real_estate_krw"`
	GrossAsset    float64               `json:"gross_asset"`
	LoanBalance   float64               `json:"loan_balance"`
	NetAsset      float64               `json:"net_asset"`
	DailyDeltaKRW float64               `json:"daily_delta_krw"`
	Breakdown     models.AssetBreakdown `json:"breakdown"`
}

// GoalStatus reports progress toward the configured target net worth.
type GoalStatus struct {
	TargetNetWorth float64 `json:"target_net_worth"`
	NetAsset       float64 `json:"net_asset"`
	Progress       float64 `json:"progress"` // clamped to [0, 1]
	ProgressPct    float64 `json:"progress_pct"`
	Remaining      float64 `json:"remaining"`
	DailyDeltaKRW  float64 `json:"daily_delta_krw"`
}

// NetWorthService aggregates per-person portfolios, real estate and loans
// into family-level gross/net totals and a category breakdown.
type NetWorthService struct {
	portfolios *PortfolioService
}

func NewNetWorthService(portfolios *PortfolioService) *NetWorthService {
	return &NetWorthService{portfolios: portfolios}
}

// Aggregate computes the family totals. The breakdown categories are
// fixed-name cross-person sums and always add up to the gross asset.
func (s *NetWorthService) Aggregate(persons []models.PersonPortfolio, realEstate []models.RealEstateAsset, loans []models.Loan, fx models.FxRate) FamilyAggregate {
	agg := FamilyAggregate{
		Persons: []PersonAssets{},
		Breakdown: models.AssetBreakdown{
			models.CategoryStocksUSD:  0,
			models.CategoryCashKRW:    0,
			models.CategoryRealEstate: 0,
		},
	}

	for _, p := range persons {
		valuation := s.portfolios.Evaluate(p, fx)
		stockGroup := (valuation.StockValueUSD + p.CashUSD) * fx.Rate
		cashGroup := p.CashKRW

		pa := PersonAssets{
			Key:           p.Key,
			DisplayName:   p.DisplayName,
			StockGroupKRW: stockGroup,
			CashGroupKRW:  cashGroup,
			TotalKRW:      stockGroup + cashGroup,
			DailyDeltaKRW: valuation.DailyDeltaKRW,
		}
		agg.Persons = append(agg.Persons, pa)

		agg.Breakdown[models.CategoryStocksUSD] += stockGroup
		agg.Breakdown[models.CategoryCashKRW] += cashGroup
		agg.DailyDeltaKRW += pa.DailyDeltaKRW
	}

	for _, re := range realEstate {
		if re.Present {
			agg.RealEstateKRW += re.CurrentValue
		}
	}
	agg.Breakdown[models.CategoryRealEstate] = agg.RealEstateKRW

	agg.GrossAsset = agg.Breakdown[models.CategoryStocksUSD] +
		agg.Breakdown[models.CategoryCashKRW] +
		agg.Breakdown[models.CategoryRealEstate]

	for _, loan := range loans {
		agg.LoanBalance += loan.Balance
	}
	agg.NetAsset = agg.GrossAsset - agg.LoanBalance

	return agg
}

// Goal reports how far the current net asset is from the target.
// Progress is clamped so an overshoot reads as 100%, not more.
func (s *NetWorthService) Goal(netAsset, target, dailyDeltaKRW float64) GoalStatus {
	progress := 0.0
	if target > 0 {
		progress = netAsset / target
		if progress < 0 {
			progress = 0
		}
		if progress > 1 {
			progress = 1
		}
	}
	return GoalStatus{
		TargetNetWorth: target,
		NetAsset:       netAsset,
		Progress:       progress,
		ProgressPct:    progress * 100,
		Remaining:      target - netAsset,
		DailyDeltaKRW:  dailyDeltaKRW,
	}
}
