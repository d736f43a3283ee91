package supervisor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/glasspane/glasspane/internal/frame"
)

// WatchdogConfig holds configuration for the link watchdog.
type WatchdogConfig struct {
	Interval   time.Duration // check period
	StaleAfter time.Duration // no new frame for this long marks the link stale
	Logger     *slog.Logger
}

// Watchdog periodically checks that fresh frames keep arriving in the cell.
// The render loop tolerates a stale snapshot indefinitely, so a dead
// supervisor is invisible on screen; the watchdog makes it visible in logs
// and in Healthy.
type Watchdog struct {
	interval   time.Duration
	staleAfter time.Duration
	cell       *frame.Cell
	logger     *slog.Logger

	mu       sync.Mutex
	lastSeq  uint64
	lastMove time.Time
	stale    bool
}

// NewWatchdog creates a watchdog over the given cell.
func NewWatchdog(cfg WatchdogConfig, cell *frame.Cell) *Watchdog {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	staleAfter := cfg.StaleAfter
	if staleAfter <= 0 {
		staleAfter = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Watchdog{
		interval:   interval,
		staleAfter: staleAfter,
		cell:       cell,
		logger:     logger,
		lastMove:   time.Now(),
	}
}

// Run starts the check loop. Blocks until the context is cancelled.
func (w *Watchdog) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("link watchdog started", "interval", w.interval, "stale_after", w.staleAfter)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("link watchdog stopped")
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// check performs a single staleness check.
func (w *Watchdog) check() {
	var seq uint64
	if f := w.cell.Peek(); f != nil {
		seq = f.Seq
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if seq != w.lastSeq {
		w.lastSeq = seq
		w.lastMove = now
		if w.stale {
			w.stale = false
			w.logger.Info("supervisor link recovered", "seq", seq)
		}
		return
	}

	if !w.stale && now.Sub(w.lastMove) > w.staleAfter {
		w.stale = true
		w.logger.Warn("supervisor link stale, rendering last snapshot",
			"seq", seq,
			"last_frame_age", now.Sub(w.lastMove).Round(time.Second))
	}
}

// CheckNow triggers an immediate staleness check.
func (w *Watchdog) CheckNow() {
	w.check()
}

// Healthy reports whether frames arrived within the stale window.
func (w *Watchdog) Healthy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.stale
}
