// backend/src/scheduler/scheduler.go
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/username/nestegg/backend/src/logger"
	"github.com/username/nestegg/backend/src/services"
)

// Scheduler re-runs the family net-worth evaluation on a fixed interval
// so quote caches get re-warmed and the stored family totals stay current
// even when nobody is clicking.
type Scheduler struct {
	cron            *cron.Cron
	stateService    *services.StateService
	netWorthService *services.NetWorthService
	quoteService    services.QuoteService
	fxPair          string
}

func New(stateService *services.StateService, netWorthService *services.NetWorthService, quoteService services.QuoteService, fxPair string) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		stateService:    stateService,
		netWorthService: netWorthService,
		quoteService:    quoteService,
		fxPair:          fxPair,
	}
}

// Start registers the refresh job and runs one refresh immediately so the
// dashboard has live numbers before the first interval elapses.
func (s *Scheduler) Start(interval time.Duration) error {
	spec := fmt.Sprintf("@every %s", interval)
	if _, err := s.cron.AddFunc(spec, s.refresh); err != nil {
		return fmt.Errorf("registering refresh job: %w", err)
	}
	s.cron.Start()
	logger.L.Info("Refresh scheduler started", "interval", interval.String())

	go s.refresh()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.L.Info("Refresh scheduler stopped")
}

func (s *Scheduler) refresh() {
	state := s.stateService.Get()
	fx := s.quoteService.GetFxRate(s.fxPair)

	agg := s.netWorthService.Aggregate(state.Family, state.RealEstate, state.Loans, fx)
	s.stateService.RecordTotals(agg)

	logger.L.Info("Scheduled refresh completed",
		"fxRate", fx.Rate,
		"grossAsset", agg.GrossAsset,
		"netAsset", agg.NetAsset,
		"dailyDeltaKRW", agg.DailyDeltaKRW,
	)
}
