// Package scheduler drives the periodic engagement jobs: the hourly trend
// sweep that keeps scores decaying without new votes, the daily rollup of
// yesterday's events, and the daily retention sweep. Each job's writes are
// idempotent, so a run aborted by shutdown leaves no inconsistent state.
package scheduler

import (
	"context"
	"log"

	"content-backend/config"
	"content-backend/services"

	"github.com/jonboulle/clockwork"
)

type Scheduler struct {
	trends    *services.TrendService
	rollups   *services.RollupService
	retention *services.RetentionService
	cfg       *config.Config
	clock     clockwork.Clock
}

// New creates a scheduler over the three batch services.
func New(trends *services.TrendService, rollups *services.RollupService, retention *services.RetentionService, cfg *config.Config, clock clockwork.Clock) *Scheduler {
	return &Scheduler{
		trends:    trends,
		rollups:   rollups,
		retention: retention,
		cfg:       cfg,
		clock:     clock,
	}
}

// Run blocks until ctx is cancelled, firing each job on its cadence.
func (s *Scheduler) Run(ctx context.Context) {
	trendTicker := s.clock.NewTicker(s.cfg.TrendSweepInterval)
	defer trendTicker.Stop()

	rollupTicker := s.clock.NewTicker(s.cfg.RollupInterval)
	defer rollupTicker.Stop()

	sweepTicker := s.clock.NewTicker(s.cfg.SweepInterval)
	defer sweepTicker.Stop()

	log.Printf("Scheduler started: trend sweep every %s, rollup every %s, retention every %s",
		s.cfg.TrendSweepInterval, s.cfg.RollupInterval, s.cfg.SweepInterval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Scheduler stopped")
			return

		case <-trendTicker.Chan():
			if err := s.trends.RecomputeTrendScores(ctx); err != nil {
				log.Printf("Scheduled trend sweep failed: %v", err)
			}

		case <-rollupTicker.Chan():
			yesterday := s.clock.Now().AddDate(0, 0, -1)
			if err := s.rollups.AggregateDailyAnalytics(ctx, yesterday); err != nil {
				log.Printf("Scheduled rollup failed: %v", err)
			}

		case <-sweepTicker.Chan():
			if err := s.retention.SweepExpired(ctx); err != nil {
				log.Printf("Scheduled retention sweep failed: %v", err)
			}
		}
	}
}
