// Package compositor runs the render loop: once per display frame it pulls
// the latest supervisor snapshot, drives the background renderer and the
// overlay reconciler, and keeps both projections consistent within a tick.
package compositor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/glasspane/glasspane/internal/background"
	"github.com/glasspane/glasspane/internal/frame"
	"github.com/glasspane/glasspane/internal/overlay"
	"github.com/glasspane/glasspane/internal/session"
)

// State is the driver lifecycle state.
type State int

const (
	// StateIdle is the initial state, before Start.
	StateIdle State = iota
	// StateRunning means ticks are scheduled every display frame.
	StateRunning
	// StateStopped is terminal; a stopped driver cannot restart.
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ErrStopped is returned by Start after the driver has been stopped.
var ErrStopped = errors.New("compositor: driver stopped")

// SizeFunc reports the current pixel dimensions of the output surface.
type SizeFunc func() (width, height int)

// Dispatcher is the outward command path used for finalized selections.
// Commands are one-way; state changes show up in a later snapshot.
type Dispatcher interface {
	SelectWindows(ids []uint64)
}

// DefaultRefreshRate is used when the config does not set one.
const DefaultRefreshRate = 60

// Config holds driver construction parameters.
type Config struct {
	RefreshRate int // display frames per second
	Logger      *slog.Logger
}

// Driver is the render loop. All tick work runs on the loop goroutine; the
// session model and the reconciler's node map are owned by the tick context
// and never written from input-handling code.
type Driver struct {
	interval time.Duration
	logger   *slog.Logger

	cell     *frame.Cell
	model    *session.Model
	renderer *background.Renderer
	overlays *overlay.Reconciler
	size     SizeFunc
	dispatch Dispatcher

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc

	// Tick-context state, written only from the loop goroutine (and from
	// tests driving Tick directly). last is additionally read by Frame
	// under mu.
	last         *frame.Frame
	lastW, lastH int
	renderDown   bool
	sel          boxSelection
}

// NewDriver wires the render loop over its collaborators. dispatch may be
// nil when no selection sink exists (tests, preview without a supervisor).
func NewDriver(cfg Config, cell *frame.Cell, model *session.Model, renderer *background.Renderer, overlays *overlay.Reconciler, size SizeFunc, dispatch Dispatcher) *Driver {
	rate := cfg.RefreshRate
	if rate <= 0 {
		rate = DefaultRefreshRate
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		interval: time.Second / time.Duration(rate),
		logger:   logger,
		cell:     cell,
		model:    model,
		renderer: renderer,
		overlays: overlays,
		size:     size,
		dispatch: dispatch,
	}
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Start moves the driver to running. Starting twice is a no-op; starting
// after Stop fails. Renderer initialization is not required here: ticks
// defer and retry until the surface reports ready.
func (d *Driver) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.state {
	case StateStopped:
		return ErrStopped
	case StateRunning:
		return nil
	}
	d.state = StateRunning
	return nil
}

// Stop tears the loop down: immediate, idempotent, and final. The display
// frame registration is released and every overlay node is destroyed so
// nothing renders after the desktop view is gone.
func (d *Driver) Stop() {
	d.mu.Lock()
	if d.state == StateStopped {
		d.mu.Unlock()
		return
	}
	d.state = StateStopped
	cancel := d.cancel
	d.cancel = nil
	d.mu.Unlock()

	if cancel != nil {
		// Run's teardown releases the overlays once the loop goroutine
		// is out of its tick, so nodes are never freed mid-reconcile.
		cancel()
		return
	}
	d.overlays.Release()
}

// Run starts the driver and blocks ticking until the context is cancelled
// or Stop is called.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.Start(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	d.mu.Lock()
	d.cancel = cancel
	d.mu.Unlock()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	defer func() {
		d.Stop()
		d.overlays.Release()
	}()

	d.logger.Info("render loop started", "interval", d.interval)
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("render loop stopped")
			return nil
		case <-ticker.C:
			d.Tick()
		}
	}
}

// Tick performs one display frame. Every failure inside a tick is contained:
// a thrown error here would stall all subsequent frames, so the tick always
// completes or skips the failing sub-step.
func (d *Driver) Tick() {
	defer func() {
		if err := recover(); err != nil {
			d.logger.Error("render tick panic recovered", "error", err)
		}
	}()

	d.mu.Lock()
	running := d.state == StateRunning
	d.mu.Unlock()
	if !running {
		return
	}

	// Defer until the GPU surface is ready; retrying next frame keeps the
	// loop responsive even if initialization stalls.
	if !d.renderer.Initialized() {
		return
	}

	// Non-blocking latest-value read; a stale cell just means we reuse
	// the previous snapshot. The write is published under the lock for
	// concurrent Frame callers; the tick goroutine is the only writer.
	if f, fresh := d.cell.Latest(); fresh {
		d.mu.Lock()
		d.last = f
		d.mu.Unlock()
	}
	f := d.last
	if f != nil {
		d.model.Apply(f)
	}

	w, h := d.size()
	if w != d.lastW || h != d.lastH {
		if err := d.renderer.Resize(w, h); err != nil {
			d.logger.Warn("surface resize failed", "width", w, "height", h, "error", err)
		}
		d.lastW, d.lastH = w, h
	}

	d.pushRendererState()

	// Background first. Overlay positions for tick N are never applied
	// before the background has drawn tick N's camera state.
	if err := d.renderer.Render(); err != nil {
		if !d.renderDown {
			d.logger.Error("background render failed, degrading to overlay-only", "error", err)
			d.renderDown = true
		}
	} else if d.renderDown {
		d.logger.Info("background render recovered")
		d.renderDown = false
	}

	stats := d.overlays.Reconcile(f, d.model.Transform(float64(w), float64(h)))
	if stats.Total() > 0 {
		d.logger.Debug("overlays reconciled",
			"created", stats.Created,
			"updated", stats.Updated,
			"removed", stats.Removed)
	}
}

// pushRendererState mirrors the session model into the background renderer.
// The renderer renders purely from these setter calls.
func (d *Driver) pushRendererState() {
	vp := d.model.Viewport()
	d.renderer.SetViewport(vp.Zoom, vp.Center.X, vp.Center.Y)
	ws, active := d.model.Workspaces()
	d.renderer.SetWorkspaceInfo(ws, active)
	d.renderer.SetTransitioning(d.model.Transitioning())
	width, height, gap := d.model.Dimensions()
	d.renderer.SetWorkspaceDimensions(width, height, gap)
}

// Frame returns the snapshot consumed by the most recent tick. Safe to call
// from IPC connection goroutines while the loop ticks.
func (d *Driver) Frame() *frame.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

func (d *Driver) String() string {
	return fmt.Sprintf("compositor.Driver(%s)", d.State())
}
