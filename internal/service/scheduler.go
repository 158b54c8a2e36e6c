package service

import (
	"context"
	"fmt"
	"time"

	wm "writeoff_monitor"
	"writeoff_monitor/internal/logger"

	"github.com/robfig/cron/v3"
)

// runTimeout bounds a single scheduled invocation.
const runTimeout = 50 * time.Second

// Runner is the part of the engine the scheduler drives.
type Runner interface {
	Run(ctx context.Context) (wm.RunSummary, error)
}

// Scheduler triggers the engine on a cron schedule. Ticks that arrive while
// a run is still going are skipped.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	log    *logger.Logger
}

// NewScheduler parses spec (standard 5-field cron or descriptors like "@every 1m").
func NewScheduler(spec string, runner Runner, log *logger.Logger) (*Scheduler, error) {
	cl := cronLogger{log: log}
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	s := &Scheduler{cron: c, runner: runner, log: log}
	if _, err := c.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	if _, err := s.runner.Run(ctx); err != nil {
		s.log.Errorw("scheduled_run_failed", "err", err)
	}
}

// Start begins firing in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for the current one, or until ctx ends.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Run blocks until ctx is canceled, then stops the schedule.
func (s *Scheduler) Run(ctx context.Context) {
	s.Start()
	<-ctx.Done()
	stopCtx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	s.Stop(stopCtx)
}

// cronLogger routes cron's own logging through zap.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw("cron_"+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw("cron_"+msg, append([]interface{}{"err", err}, keysAndValues...)...)
}
