package background

import (
	"sort"

	"github.com/glasspane/glasspane/internal/geom"
)

// DefaultBackground is the background selected before any SetBackground call.
const DefaultBackground = "aurora"

// Background is one selectable procedural backdrop.
type Background struct {
	ID    string
	Name  string
	Base  uint32 // 0xRRGGBB plate fill
	Clear uint32 // 0xRRGGBB void color between workspaces
}

func builtinBackgrounds() []Background {
	return []Background{
		{ID: "aurora", Name: "Aurora", Base: 0x14532d, Clear: 0x020617},
		{ID: "slate", Name: "Slate", Base: 0x334155, Clear: 0x0f172a},
		{ID: "dusk", Name: "Dusk", Base: 0x4c1d95, Clear: 0x1e1b4b},
		{ID: "ember", Name: "Ember", Base: 0x7c2d12, Clear: 0x1c1007},
	}
}

// BuiltinBackgrounds returns the builtin background identifiers in stable
// order, without requiring a renderer.
func BuiltinBackgrounds() []string {
	builtins := builtinBackgrounds()
	ids := make([]string, len(builtins))
	for i, b := range builtins {
		ids[i] = b.ID
	}
	sort.Strings(ids)
	return ids
}

// Backgrounds returns the available background identifiers in stable order.
func (r *Renderer) Backgrounds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, len(r.backgrounds))
	for i, b := range r.backgrounds {
		ids[i] = b.ID
	}
	sort.Strings(ids)
	return ids
}

// CurrentBackground returns the active background identifier.
func (r *Renderer) CurrentBackground() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// SetBackground selects a background by id, reporting whether it exists.
func (r *Renderer) SetBackground(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.backgrounds {
		if b.ID == id {
			r.current = id
			return true
		}
	}
	return false
}

func (r *Renderer) lookupLocked(id string) Background {
	for _, b := range r.backgrounds {
		if b.ID == id {
			return b
		}
	}
	return r.backgrounds[0]
}

// Plate is one workspace backdrop rectangle in screen space.
type Plate struct {
	Workspace int
	Rect      geom.Rect
	Color     uint32
	Active    bool
}

// Scene is the display list for one background frame. It carries everything
// a surface binding needs; bindings never reach back into the renderer.
type Scene struct {
	Width         int
	Height        int
	Clear         uint32
	Plates        []Plate
	Transitioning bool
}

// buildSceneLocked projects the workspace strip through the viewport
// transform. Plates are emitted in ordinal order with the active workspace
// flagged; the same transform later positions the window overlays, which is
// what keeps windows visually glued to workspace content.
func (r *Renderer) buildSceneLocked() Scene {
	bg := r.lookupLocked(r.current)
	scene := Scene{
		Width:         r.width,
		Height:        r.height,
		Clear:         bg.Clear,
		Transitioning: r.transitioning,
	}

	if r.wsWidth <= 0 || r.wsHeight <= 0 {
		return scene
	}

	tr := geom.Transform{
		Zoom:    r.viewport.Zoom,
		Center:  r.viewport.Center,
		Surface: geom.Point{X: float64(r.width) / 2, Y: float64(r.height) / 2},
	}
	viewport := geom.Rect{Width: float64(r.width), Height: float64(r.height)}

	for i, ws := range r.workspaces {
		world := geom.Rect{
			X:      float64(i) * (r.wsWidth + r.wsGap),
			Y:      0,
			Width:  r.wsWidth,
			Height: r.wsHeight,
		}
		screen := tr.ProjectRect(world)
		if !screen.Intersects(viewport) {
			continue
		}
		color := bg.Base
		if ws.Background != "" {
			color = r.lookupLocked(ws.Background).Base
		}
		scene.Plates = append(scene.Plates, Plate{
			Workspace: ws.ID,
			Rect:      screen,
			Color:     color,
			Active:    i == r.active,
		})
	}

	return scene
}
