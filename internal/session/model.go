// Package session holds the per-desktop-session viewport and workspace
// model consumed by the render loop. The model is plain state: setters only
// record values, they never trigger a redraw. The render loop driver decides
// when to sample and re-render, and it is the only writer during a tick;
// accessors take a read lock so IPC connection goroutines can query the
// model while ticks run.
package session

import (
	"sync"

	"github.com/glasspane/glasspane/internal/frame"
	"github.com/glasspane/glasspane/internal/geom"
)

// Default zoom clamp range, used when the config does not override it.
const (
	DefaultMinZoom = 0.25
	DefaultMaxZoom = 4.0
)

// Model is the viewport/workspace state for one desktop session. It is an
// explicit object passed into the driver rather than package-level state, so
// multiple sessions (and tests) run independently.
type Model struct {
	minZoom float64
	maxZoom float64

	mu sync.RWMutex

	zoom   float64
	center geom.Point

	workspaces    []frame.WorkspaceInfo
	active        int
	transitioning bool

	wsWidth  float64
	wsHeight float64
	wsGap    float64
}

// NewModel creates a session model with the given zoom clamp range. A
// non-positive or inverted range falls back to the defaults.
func NewModel(minZoom, maxZoom float64) *Model {
	if minZoom <= 0 || maxZoom <= 0 || minZoom > maxZoom {
		minZoom = DefaultMinZoom
		maxZoom = DefaultMaxZoom
	}
	return &Model{
		minZoom: minZoom,
		maxZoom: maxZoom,
		zoom:    1,
	}
}

// SetViewport records the camera transform. Out-of-range zoom is silently
// clamped rather than rejected; the center is unconstrained and may exceed
// workspace bounds during a pan.
func (m *Model) SetViewport(zoom, centerX, centerY float64) {
	if zoom < m.minZoom {
		zoom = m.minZoom
	}
	if zoom > m.maxZoom {
		zoom = m.maxZoom
	}
	m.mu.Lock()
	m.zoom = zoom
	m.center = geom.Point{X: centerX, Y: centerY}
	m.mu.Unlock()
}

// SetWorkspaceInfo replaces the workspace set atomically. The active index
// is clamped so it always indexes into the new sequence.
func (m *Model) SetWorkspaceInfo(workspaces []frame.WorkspaceInfo, active int) {
	ws := make([]frame.WorkspaceInfo, len(workspaces))
	copy(ws, workspaces)
	if active < 0 {
		active = 0
	}
	if len(ws) > 0 && active >= len(ws) {
		active = len(ws) - 1
	}
	m.mu.Lock()
	m.workspaces = ws
	m.active = active
	m.mu.Unlock()
}

// SetTransitioning marks whether a workspace-switch animation is in flight.
func (m *Model) SetTransitioning(v bool) {
	m.mu.Lock()
	m.transitioning = v
	m.mu.Unlock()
}

// SetWorkspaceDimensions defines the world-space layout grid used to place
// workspaces side by side for pan-based switching.
func (m *Model) SetWorkspaceDimensions(width, height, gap float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if gap < 0 {
		gap = 0
	}
	m.mu.Lock()
	m.wsWidth = width
	m.wsHeight = height
	m.wsGap = gap
	m.mu.Unlock()
}

// Viewport returns the current camera transform.
func (m *Model) Viewport() frame.ViewportState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return frame.ViewportState{Zoom: m.zoom, Center: m.center}
}

// Workspaces returns the current workspace sequence and active index. The
// slice is the shared replace-on-write copy; callers must not mutate it.
func (m *Model) Workspaces() ([]frame.WorkspaceInfo, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.workspaces, m.active
}

// Transitioning reports whether a workspace switch is animating.
func (m *Model) Transitioning() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.transitioning
}

// Dimensions returns the workspace grid parameters.
func (m *Model) Dimensions() (width, height, gap float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.wsWidth, m.wsHeight, m.wsGap
}

// WorkspaceOrigin returns the world-space X of workspace i on the pan strip.
func (m *Model) WorkspaceOrigin(i int) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.originLocked(i)
}

func (m *Model) originLocked(i int) float64 {
	return float64(i) * (m.wsWidth + m.wsGap)
}

// WorkspaceRect returns the world-space rectangle of workspace i.
func (m *Model) WorkspaceRect(i int) geom.Rect {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return geom.Rect{
		X:      m.originLocked(i),
		Y:      0,
		Width:  m.wsWidth,
		Height: m.wsHeight,
	}
}

// Transform builds the world-to-screen mapping for the given surface pixel
// dimensions. The same transform projects background geometry and window
// rectangles.
func (m *Model) Transform(surfaceWidth, surfaceHeight float64) geom.Transform {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return geom.Transform{
		Zoom:    m.zoom,
		Center:  m.center,
		Surface: geom.Point{X: surfaceWidth / 2, Y: surfaceHeight / 2},
	}
}

// Apply copies the viewport/workspace portion of a snapshot into the model.
// Called from the tick context only.
func (m *Model) Apply(f *frame.Frame) {
	if f == nil {
		return
	}
	m.SetViewport(f.Viewport.Zoom, f.Viewport.Center.X, f.Viewport.Center.Y)
	m.SetWorkspaceInfo(f.Workspaces, f.Active)
	m.SetTransitioning(f.Transitioning)
}
