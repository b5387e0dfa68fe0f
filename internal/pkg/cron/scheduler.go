package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// JobFunc is one scheduled unit of work. The context is cancelled when the
// scheduler stops.
type JobFunc func(ctx context.Context) error

type job struct {
	name     string
	interval time.Duration
	fn       JobFunc
}

// Scheduler runs named jobs on fixed intervals. Each job gets its own
// goroutine and fires once immediately on Start.
type Scheduler struct {
	mu     sync.Mutex
	jobs   []job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a job. Names must be unique; they key the log lines.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		if j.name == name {
			return fmt.Errorf("cron job %q already registered", name)
		}
	}

	s.jobs = append(s.jobs, job{name: name, interval: interval, fn: fn})
	slog.Info("cron job registered", "name", name, "interval", interval)
	return nil
}

// Start launches every registered job.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j)
	}
	slog.Info("cron scheduler started", "job_count", len(s.jobs))
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("cron scheduler stopped")
}

// RunOnce executes every registered job a single time with the given
// context. Intended for tests and one-shot maintenance commands.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		s.execute(ctx, j)
	}
}

func (s *Scheduler) loop(j job) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	s.execute(s.ctx, j)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.execute(s.ctx, j)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, j job) {
	defer func() {
		if p := recover(); p != nil {
			slog.Error("cron job panicked", "name", j.name, "panic", p)
		}
	}()

	start := time.Now()
	if err := j.fn(ctx); err != nil {
		slog.Error("cron job failed", "name", j.name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("cron job completed", "name", j.name, "duration", time.Since(start))
}
