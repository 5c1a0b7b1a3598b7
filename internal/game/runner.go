package game

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Runner auto-advances a session at a selectable cadence. It guarantees at
// most one in-flight NextDay at a time (ticks run on a single goroutine)
// and a cadence change or stop never leaves a stray pending tick: the old
// loop is cancelled and drained before a new one starts.
type Runner struct {
	game   *Game
	logger *slog.Logger

	// notify, when set, receives every tick's report (WebSocket broadcast).
	notify func(DayReport)

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	interval time.Duration
}

// NewRunner wraps a session for auto-advancing.
func NewRunner(g *Game, notify func(DayReport), logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{game: g, notify: notify, logger: logger}
}

// Start begins ticking every interval, replacing any running cadence.
func (r *Runner) Start(interval time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	r.interval = interval

	go r.run(ctx, interval, done)
	r.logger.Info("auto-advance started", "interval", interval)
}

// Stop halts auto-advancing. Safe to call when not running.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

// Running reports whether a cadence is active, and at what interval.
func (r *Runner) Running() (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil, r.interval
}

func (r *Runner) stopLocked() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
	r.cancel = nil
	r.done = nil
	r.interval = 0
	r.logger.Info("auto-advance stopped")
}

func (r *Runner) run(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report := r.game.NextDay()
			if r.notify != nil {
				r.notify(report)
			}
		}
	}
}
