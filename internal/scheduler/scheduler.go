// Package scheduler runs the periodic auto-refresh job.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/logger"
)

// ErrInvalidInterval is returned for non-positive refresh intervals.
var ErrInvalidInterval = errors.New("scheduler: interval must be positive")

// Job is a unit of scheduled work. ctx is cancelled when the scheduler stops.
type Job func(ctx context.Context)

// Scheduler runs a single job on a fixed interval. A run that is still in
// progress when the next tick fires causes that tick to be skipped.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger

	mu     sync.Mutex
	entry  cron.EntryID
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a stopped scheduler.
func New(log *zap.Logger) *Scheduler {
	log = logger.OrNop(log)
	cl := logger.NewCronLogger(log)
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Every installs job to run once per interval, replacing any job
// installed before. Intervals below one second are rounded up by cron.
func (s *Scheduler) Every(interval time.Duration, job Job) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entry > 0 {
		s.cron.Remove(s.entry)
		s.entry = 0
	}
	spec := fmt.Sprintf("@every %s", interval)
	ctx := s.ctx
	id, err := s.cron.AddFunc(spec, func() { job(ctx) })
	if err != nil {
		return fmt.Errorf("scheduler: add %q: %w", spec, err)
	}
	s.entry = id
	s.log.Info("scheduled refresh", zap.Duration("interval", interval))
	return nil
}

// Next returns the next scheduled run, or the zero time when nothing is
// scheduled or the scheduler is not running.
func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entry == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entry).Next
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels the job context and waits for a running job to return or
// for ctx to expire, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
