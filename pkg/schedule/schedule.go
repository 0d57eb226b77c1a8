// Package schedule runs recurring background tasks.
//
//	s := schedule.New()
//	s.Interval(2 * time.Hour).Name("tokens:sweep").WithoutOverlapping().Run(sweeper.Run)
//
//	s.Start(ctx) // dispatches until ctx is done
//	s.Wait()     // blocks until running tasks return
//
// A task first runs on the first tick after Start, then every
// interval after its previous start.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
)

// Task is the function signature for a scheduled task.
type Task func(ctx context.Context) error

type entry struct {
	id        string
	interval  time.Duration
	task      Task
	lastRun   time.Time
	running   bool
	noOverlap bool
	mu        sync.Mutex
}

// Scheduler owns a set of entries and the loop that dispatches them.
type Scheduler struct {
	mu      sync.Mutex
	entries []*entry
	tick    time.Duration
	wg      sync.WaitGroup
}

// New returns a scheduler that checks for due tasks every second.
func New() *Scheduler {
	return &Scheduler{tick: time.Second}
}

// WithTick changes how often due tasks are checked.
func (s *Scheduler) WithTick(d time.Duration) *Scheduler {
	if d > 0 {
		s.tick = d
	}
	return s
}

// Builder configures one entry before Run registers it.
type Builder struct {
	s *Scheduler
	e *entry
}

// Interval schedules a task to run every d.
func (s *Scheduler) Interval(d time.Duration) *Builder {
	return &Builder{s: s, e: &entry{interval: d}}
}

// WithoutOverlapping skips a run while the previous one is still executing.
func (b *Builder) WithoutOverlapping() *Builder {
	b.e.noOverlap = true
	return b
}

// Name gives the entry an identifier for logs and metrics.
func (b *Builder) Name(id string) *Builder {
	b.e.id = id
	return b
}

// Run registers the task.
func (b *Builder) Run(fn Task) {
	b.e.task = fn

	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if b.e.id == "" {
		b.e.id = fmt.Sprintf("task-%d", len(b.s.entries)+1)
	}
	b.s.entries = append(b.s.entries, b.e)
}

// Start runs the dispatch loop in the background until ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()
	logger.Info("schedule: scheduler started", "tasks", len(s.List()))
}

// Wait blocks until the loop has stopped and every dispatched task returned.
func (s *Scheduler) Wait() { s.wg.Wait() }

func (s *Scheduler) loop(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("schedule: scheduler stopped")
			return
		case now := <-ticker.C:
			s.mu.Lock()
			current := append([]*entry(nil), s.entries...)
			s.mu.Unlock()

			for _, e := range current {
				if isDue(e, now) {
					s.dispatch(ctx, e, now)
				}
			}
		}
	}
}

func isDue(e *entry, now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lastRun.IsZero() {
		return true
	}
	return now.Sub(e.lastRun) >= e.interval
}

func (s *Scheduler) dispatch(ctx context.Context, e *entry, now time.Time) {
	e.mu.Lock()
	if e.noOverlap && e.running {
		e.mu.Unlock()
		logger.Warn("schedule: skipping overlapping task", "id", e.id)
		return
	}
	e.running = true
	e.lastRun = now
	e.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()

			metrics.RecordJob(e.id, err)
			if err != nil {
				logger.Error("schedule: task failed", "id", e.id, "error", err)
			}
		}()

		logger.Debug("schedule: running task", "id", e.id)
		err = e.task(ctx)
	}()
}

// List describes every registered entry, for the CLI.
func (s *Scheduler) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, fmt.Sprintf("%s  [every %s]", e.id, e.interval))
	}
	return out
}
