package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is a unit of periodic maintenance work.
type Task func(context.Context) error

// Runner invokes a task on a fixed interval until stopped. The core never
// schedules its own maintenance; callers own the runner lifecycle.
type Runner struct {
	name     string
	interval time.Duration
	task     Task
	logger   *zap.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// NewRunner builds a periodic runner for the given task.
func NewRunner(name string, interval time.Duration, task Task, logger *zap.Logger) *Runner {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{name: name, interval: interval, task: task, logger: logger}
}

// Start begins the periodic loop. Safe to call once.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.wg.Add(1)
	go r.loop()
	r.started = true
	r.logger.Sugar().Infow("runner started", "runner", r.name, "interval", r.interval)
}

// Stop cancels the loop and waits for it to exit.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.cancel()
	r.mu.Unlock()
	r.wg.Wait()
	r.logger.Sugar().Infow("runner stopped", "runner", r.name)
}

func (r *Runner) loop() {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			if err := r.task(r.ctx); err != nil {
				r.logger.Sugar().Warnw("runner task failed", "runner", r.name, "error", err)
			}
		}
	}
}
