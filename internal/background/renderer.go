// Package background renders the procedural desktop backdrop. The renderer
// owns its GPU-capable surface for its lifetime and mutates surface pixels
// only; it never touches overlay nodes. Pixel production lives behind the
// Surface interface so display bindings stay external.
package background

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/glasspane/glasspane/internal/frame"
	"github.com/glasspane/glasspane/internal/geom"
)

// ErrNotInitialized is returned by Render before Init has completed.
var ErrNotInitialized = errors.New("background: surface not initialized")

// Surface is the externally-owned drawing target. Init is one-time and may
// suspend on device/context acquisition. Configure reports the pixel
// dimensions of the output; Submit draws exactly one frame.
type Surface interface {
	Init(ctx context.Context) error
	Configure(width, height int) error
	Submit(scene Scene) error
}

// Renderer projects viewport/workspace state into background scenes. It is a
// pure function of its setter calls: Render never re-derives state itself.
type Renderer struct {
	mu      sync.Mutex
	surface Surface
	logger  *slog.Logger

	initialized bool
	initFailed  bool

	width  int
	height int

	viewport      frame.ViewportState
	workspaces    []frame.WorkspaceInfo
	active        int
	transitioning bool
	wsWidth       float64
	wsHeight      float64
	wsGap         float64

	backgrounds []Background
	current     string
}

// NewRenderer creates a renderer over the given surface. The surface handle
// is owned exclusively by the renderer until Release.
func NewRenderer(surface Surface, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		surface:     surface,
		logger:      logger,
		viewport:    frame.ViewportState{Zoom: 1},
		backgrounds: builtinBackgrounds(),
		current:     DefaultBackground,
	}
}

// Init performs the one-time surface setup. A failed init is fatal to the
// renderer only: it is reported once and never retried, and the render loop
// degrades to overlay-only updates.
func (r *Renderer) Init(ctx context.Context) error {
	r.mu.Lock()
	if r.initialized || r.initFailed {
		r.mu.Unlock()
		return nil
	}
	surface := r.surface
	r.mu.Unlock()

	if surface == nil {
		r.mu.Lock()
		r.initFailed = true
		r.mu.Unlock()
		return errors.New("background: no surface bound")
	}

	if err := surface.Init(ctx); err != nil {
		r.mu.Lock()
		r.initFailed = true
		r.mu.Unlock()
		r.logger.Error("background surface initialization failed", "error", err)
		return fmt.Errorf("background: surface init: %w", err)
	}

	r.mu.Lock()
	r.initialized = true
	r.mu.Unlock()
	return nil
}

// Initialized reports whether the surface is ready for Render calls.
func (r *Renderer) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initialized
}

// Resize reconfigures the surface for new pixel dimensions. Calling it again
// with the same dimensions performs no surface reconfiguration.
func (r *Renderer) Resize(width, height int) error {
	r.mu.Lock()
	if width == r.width && height == r.height {
		r.mu.Unlock()
		return nil
	}
	if !r.initialized {
		// Record the size so the first post-init render sees it.
		r.width = width
		r.height = height
		r.mu.Unlock()
		return nil
	}
	surface := r.surface
	r.width = width
	r.height = height
	r.mu.Unlock()

	if err := surface.Configure(width, height); err != nil {
		return fmt.Errorf("background: configure %dx%d: %w", width, height, err)
	}
	return nil
}

// SetViewport records the camera transform used by the next Render.
func (r *Renderer) SetViewport(zoom, centerX, centerY float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if zoom > 0 {
		r.viewport.Zoom = zoom
	}
	r.viewport.Center = geom.Point{X: centerX, Y: centerY}
}

// SetWorkspaceInfo replaces the workspace set used by the next Render.
func (r *Renderer) SetWorkspaceInfo(workspaces []frame.WorkspaceInfo, active int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workspaces = make([]frame.WorkspaceInfo, len(workspaces))
	copy(r.workspaces, workspaces)
	if active < 0 {
		active = 0
	}
	if len(r.workspaces) > 0 && active >= len(r.workspaces) {
		active = len(r.workspaces) - 1
	}
	r.active = active
}

// SetTransitioning marks a workspace-switch animation as in flight.
func (r *Renderer) SetTransitioning(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitioning = v
}

// SetWorkspaceDimensions defines the world-space workspace strip geometry.
func (r *Renderer) SetWorkspaceDimensions(width, height, gap float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	if gap < 0 {
		gap = 0
	}
	r.wsWidth = width
	r.wsHeight = height
	r.wsGap = gap
}

// Render draws exactly one frame from the most recently set state.
func (r *Renderer) Render() error {
	r.mu.Lock()
	if !r.initialized {
		r.mu.Unlock()
		return ErrNotInitialized
	}
	scene := r.buildSceneLocked()
	surface := r.surface
	r.mu.Unlock()

	if err := surface.Submit(scene); err != nil {
		return fmt.Errorf("background: submit: %w", err)
	}
	return nil
}

// Release drops the surface handle. The renderer cannot be reused afterward.
func (r *Renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surface = nil
	r.initialized = false
}
