package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/jobs"
)

const (
	jobWebsiteStats = "website_stats_refresh"
	jobEventStats   = "event_stats_refresh"
)

type statsRepository interface {
	UpdateEventStats(ctx context.Context, eventID string) error
	UpdateWebsiteStats(ctx context.Context) error
}

// StatsService refreshes denormalised counters through a background queue.
// The SQL functions behind it are idempotent, so retried jobs are safe.
type StatsService struct {
	repo   statsRepository
	queue  *jobs.Queue
	logger *zap.Logger

	interval time.Duration
	stop     chan struct{}
}

// NewStatsService constructs the service and its queue.
func NewStatsService(repo statsRepository, workers, retries int, interval time.Duration, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &StatsService{repo: repo, logger: logger, interval: interval, stop: make(chan struct{})}
	s.queue = jobs.NewQueue("stats", s.handle, jobs.QueueConfig{
		Workers:    workers,
		MaxRetries: retries,
		Logger:     logger,
	})
	return s
}

// Start launches the queue workers and, when an interval is configured, the
// periodic website-stats refresh ticker.
func (s *StatsService) Start(ctx context.Context) {
	s.queue.Start(ctx)
	if s.interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.EnqueueWebsiteStats(); err != nil {
					s.logger.Warn("failed to enqueue website stats refresh", zap.Error(err))
				}
			case <-s.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the ticker and drains the queue.
func (s *StatsService) Stop() {
	close(s.stop)
	s.queue.Stop()
}

// EnqueueWebsiteStats schedules a site-wide counter refresh.
func (s *StatsService) EnqueueWebsiteStats() error {
	return s.queue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: jobWebsiteStats})
}

// EnqueueEventStats schedules a counter refresh for one delivery event.
func (s *StatsService) EnqueueEventStats(eventID string) error {
	return s.queue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: jobEventStats, Payload: eventID})
}

func (s *StatsService) handle(ctx context.Context, job jobs.Job) error {
	switch job.Type {
	case jobWebsiteStats:
		return s.repo.UpdateWebsiteStats(ctx)
	case jobEventStats:
		eventID, ok := job.Payload.(string)
		if !ok || eventID == "" {
			return fmt.Errorf("event stats job missing event id")
		}
		return s.repo.UpdateEventStats(ctx, eventID)
	default:
		return fmt.Errorf("unknown stats job type %q", job.Type)
	}
}
