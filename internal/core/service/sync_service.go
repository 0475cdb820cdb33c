package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/assetdesk/inventory-system/internal/api/metrics"
	"github.com/assetdesk/inventory-system/internal/core/domain"
	"github.com/assetdesk/inventory-system/internal/core/ports"
)

// Placeholder stored when the directory omits a display name or department.
const unavailableField = "Unavailable"

// SyncLock serialises reconciliation runs across processes (Redis).
type SyncLock interface {
	// Acquire reports whether the lock was taken; false means another run
	// holds it.
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// SyncService makes the local directory user set match the external
// directory: one full fetch, an upsert pass keyed by directory id, then a
// prune pass soft-deleting every local record absent from the pull. The
// fetch must complete before any local write; an upsert failure aborts the
// run. Running twice against an unchanged directory is a no-op.
type SyncService struct {
	client       ports.DirectoryClient
	users        ports.DirectoryUserRepository
	lock         SyncLock // nil disables run locking
	fetchTimeout time.Duration
	logger       zerolog.Logger
}

func NewSyncService(
	client ports.DirectoryClient,
	users ports.DirectoryUserRepository,
	lock SyncLock,
	fetchTimeout time.Duration,
	logger zerolog.Logger,
) *SyncService {
	if fetchTimeout <= 0 {
		fetchTimeout = 60 * time.Second
	}
	return &SyncService{
		client:       client,
		users:        users,
		lock:         lock,
		fetchTimeout: fetchTimeout,
		logger:       logger,
	}
}

// Run executes one reconciliation and reports a single outcome for the
// whole pass.
func (s *SyncService) Run(ctx context.Context) (*ports.SyncResult, error) {
	if s.lock != nil {
		ok, err := s.lock.Acquire(ctx)
		if err != nil {
			// A broken lock store must not block reconciliation; overlap
			// protection degrades to best effort.
			s.logger.Warn().Err(err).Msg("sync lock unavailable, continuing unlocked")
		} else if !ok {
			return nil, domain.ErrSyncAlreadyRunning
		} else {
			defer func() {
				if relErr := s.lock.Release(ctx); relErr != nil {
					s.logger.Warn().Err(relErr).Msg("failed to release sync lock")
				}
			}()
		}
	}

	result := &ports.SyncResult{StartedAt: time.Now().UTC()}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	records, err := s.client.FetchAllUsers(fetchCtx)
	cancel()
	if err != nil {
		metrics.SyncRunsTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("directory fetch: %w", err)
	}
	result.Fetched = len(records)

	now := time.Now().UTC()
	directoryIDs := make([]string, 0, len(records))
	for _, rec := range records {
		user := &domain.DirectoryUser{
			DirectoryID:   rec.ID,
			PrincipalName: rec.PrincipalName,
			DisplayName:   fieldOrUnavailable(rec.DisplayName),
			Department:    fieldOrUnavailable(rec.Department),
			IsActive:      rec.Enabled,
			SyncedAt:      now,
		}
		created, err := s.users.Upsert(ctx, user)
		if err != nil {
			// No per-record isolation: a directory data anomaly (for
			// example a duplicate principal name) aborts the run.
			metrics.SyncRunsTotal.WithLabelValues("failure").Inc()
			return nil, fmt.Errorf("upsert directory user %s: %w", rec.ID, err)
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
		directoryIDs = append(directoryIDs, rec.ID)
	}

	pruned, err := s.users.SoftDeleteNotIn(ctx, directoryIDs, now)
	if err != nil {
		metrics.SyncRunsTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("prune directory users: %w", err)
	}
	result.Pruned = pruned
	result.FinishedAt = time.Now().UTC()

	metrics.SyncRunsTotal.WithLabelValues("success").Inc()
	metrics.SyncUsersFetched.Set(float64(result.Fetched))
	metrics.SyncUsersUpsertedTotal.WithLabelValues("created").Add(float64(result.Created))
	metrics.SyncUsersUpsertedTotal.WithLabelValues("updated").Add(float64(result.Updated))
	metrics.SyncUsersPrunedTotal.Add(float64(result.Pruned))
	metrics.SyncDuration.Observe(result.FinishedAt.Sub(result.StartedAt).Seconds())

	s.logger.Info().
		Int("fetched", result.Fetched).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int64("pruned", result.Pruned).
		Msg("directory sync completed")

	return result, nil
}

func fieldOrUnavailable(v *string) string {
	if v == nil || *v == "" {
		return unavailableField
	}
	return *v
}
