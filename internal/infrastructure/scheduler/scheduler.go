package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/assetdesk/inventory-system/internal/core/domain"
	"github.com/assetdesk/inventory-system/internal/core/ports"
)

const defaultInterval = 6 * time.Hour

// Scheduler triggers periodic directory reconciliation runs. Overlap across
// processes is handled by the sync service's run lock; a run already in
// flight elsewhere is a normal outcome, not an error.
type Scheduler struct {
	sync     ports.SyncService
	interval time.Duration
	log      zerolog.Logger
}

// NewScheduler creates a Scheduler firing every interval.
// If interval <= 0, defaultInterval is used.
func NewScheduler(sync ports.SyncService, interval time.Duration, log zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Scheduler{sync: sync, interval: interval, log: log}
}

// Start launches the ticker goroutine. It stops when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Msg("directory sync scheduler started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("directory sync scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	result, err := s.sync.Run(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSyncAlreadyRunning) {
			s.log.Debug().Msg("scheduled sync skipped, run already in progress")
			return
		}
		s.log.Error().Err(err).Msg("scheduled directory sync failed")
		return
	}

	s.log.Info().
		Int("fetched", result.Fetched).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int64("pruned", result.Pruned).
		Msg("scheduled directory sync completed")
}
