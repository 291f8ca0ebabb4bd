// Package scheduler runs periodic background jobs on cron specs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one unit of scheduled work. The context is cancelled when the scheduler's parent is.
type Job func(ctx context.Context) error

// Scheduler manages cron jobs. Overlapping runs of the same job are skipped.
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
}

// New creates a scheduler that parses standard 5-field cron specs (and descriptors such as
// "@hourly"). Jobs receive ctx.
func New(ctx context.Context) *Scheduler {
	logger := slogLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		ctx: ctx,
	}
}

// Add registers job under name.
func (s *Scheduler) Add(spec, name string, job Job) error {
	if _, err := s.cron.AddFunc(spec, func() { _ = s.RunNow(name, job) }); err != nil {
		return fmt.Errorf("register %s (%q): %w", name, spec, err)
	}
	slog.Info("job registered", "job", name, "spec", spec)
	return nil
}

// RunNow executes job synchronously and logs the outcome.
func (s *Scheduler) RunNow(name string, job Job) error {
	start := time.Now()
	if err := job(s.ctx); err != nil {
		slog.Error("job failed", "job", name, "elapsed", time.Since(start), "error", err)
		return err
	}
	slog.Info("job finished", "job", name, "elapsed", time.Since(start))
	return nil
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int { return len(s.cron.Entries()) }

// Start starts the cron scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", "jobs", s.Len())
}

// Stop stops the scheduler and waits for running jobs to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("scheduler stopped")
}

// slogLogger adapts slog to cron.Logger.
type slogLogger struct{}

func (slogLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
