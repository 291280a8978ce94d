package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const JobRosterAutosave = "roster_autosave"

type RunFunc func(context.Context) error

// Service runs queued jobs one at a time on a single worker.
type Service struct {
	logger *slog.Logger
	queue  chan job
	wg     sync.WaitGroup
}

type job struct {
	Type string
	Run  RunFunc
}

func New(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger: logger,
		queue:  make(chan job, 16),
	}
}

// Start launches the worker. It stops when ctx is done; Wait blocks until
// it has.
func (s *Service) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.worker(ctx)
	}()
}

func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) Enqueue(jobType string, run RunFunc) bool {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
		return true
	default:
		s.logger.Warn("job queue full", "jobType", jobType)
		return false
	}
}

// Every enqueues run on each tick until ctx is done. A zero or negative
// interval disables the schedule.
func (s *Service) Every(ctx context.Context, jobType string, interval time.Duration, run RunFunc) {
	if interval <= 0 {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Enqueue(jobType, run)
			}
		}
	}()
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			s.runJob(ctx, j)
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) {
	start := time.Now()
	if err := j.Run(ctx); err != nil {
		s.logger.Warn("job run failed", "jobType", j.Type, "err", err)
		return
	}
	s.logger.Debug("job run completed", "jobType", j.Type, "durationMs", time.Since(start).Milliseconds())
}
