package compositor

import (
	"github.com/glasspane/glasspane/internal/geom"
)

// boxSelection is the transient drag-select state. It is client-local:
// computed from raw pointer events against the current viewport transform,
// and never part of a frame snapshot. Nothing reaches the supervisor until
// the selection is finalized.
type boxSelection struct {
	active bool
	anchor geom.Point // screen space
	cursor geom.Point // screen space
}

// BeginBoxSelect starts a drag selection at a screen-space pointer position.
// Called for pointer-down on empty desktop.
func (d *Driver) BeginBoxSelect(x, y float64) {
	d.sel = boxSelection{
		active: true,
		anchor: geom.Point{X: x, Y: y},
		cursor: geom.Point{X: x, Y: y},
	}
}

// DragBoxSelect updates the selection cursor while the pointer moves.
func (d *Driver) DragBoxSelect(x, y float64) {
	if !d.sel.active {
		return
	}
	d.sel.cursor = geom.Point{X: x, Y: y}
}

// SelectionRect returns the current selection rectangle in screen space,
// for chrome that wants to draw the rubber band.
func (d *Driver) SelectionRect() (geom.Rect, bool) {
	if !d.sel.active {
		return geom.Rect{}, false
	}
	return geom.Normalized(d.sel.anchor, d.sel.cursor), true
}

// CancelBoxSelect discards the selection without notifying anyone.
func (d *Driver) CancelBoxSelect() {
	d.sel = boxSelection{}
}

// EndBoxSelect finalizes the selection: the screen rectangle is mapped back
// to world space through the current transform, hit-tested against the last
// snapshot's visible windows, and the matching ids are dispatched as a
// one-way command. Returns the selected ids for callers that draw feedback.
func (d *Driver) EndBoxSelect() []uint64 {
	if !d.sel.active {
		return nil
	}
	screen := geom.Normalized(d.sel.anchor, d.sel.cursor)
	d.sel = boxSelection{}

	f := d.last
	if f == nil {
		return nil
	}

	tr := d.model.Transform(float64(d.lastW), float64(d.lastH))
	world := tr.UnprojectRect(screen)

	var ids []uint64
	for _, w := range f.Windows {
		if !w.State.Visible() {
			continue
		}
		if world.Intersects(w.Frame) {
			ids = append(ids, w.ID)
		}
	}

	if len(ids) > 0 && d.dispatch != nil {
		d.dispatch.SelectWindows(ids)
	}
	return ids
}
