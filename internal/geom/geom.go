package geom

import "math"

// Point is a coordinate in either world or screen space.
type Point struct {
	X float64
	Y float64
}

// Rect represents a position and size. World-space and screen-space
// rectangles share this type; the transform decides which is which.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Epsilon is the tolerance used for float comparisons of projected geometry.
const Epsilon = 1e-9

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width &&
		r.X+r.Width > o.X &&
		r.Y < o.Y+o.Height &&
		r.Y+r.Height > o.Y
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.X+r.Width, o.X+o.Width)
	maxY := math.Max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Eq reports whether two rectangles are equal within Epsilon.
func (r Rect) Eq(o Rect) bool {
	return math.Abs(r.X-o.X) < Epsilon &&
		math.Abs(r.Y-o.Y) < Epsilon &&
		math.Abs(r.Width-o.Width) < Epsilon &&
		math.Abs(r.Height-o.Height) < Epsilon
}

// Normalized returns the rectangle spanned by two corner points, with
// non-negative width and height. Used for drag selection regions.
func Normalized(a, b Point) Rect {
	return Rect{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(a.X - b.X),
		Height: math.Abs(a.Y - b.Y),
	}
}

// Transform maps between world space (workspace-relative, zoom/pan) and
// screen space (surface pixels). Zoom must be positive.
type Transform struct {
	Zoom    float64 // scale factor, world units to pixels
	Center  Point   // camera center in world space
	Surface Point   // surface center in pixels
}

// WorldToScreen projects a world-space point to screen space:
// screen = (world - center) * zoom + surfaceCenter.
func (t Transform) WorldToScreen(p Point) Point {
	return Point{
		X: (p.X-t.Center.X)*t.Zoom + t.Surface.X,
		Y: (p.Y-t.Center.Y)*t.Zoom + t.Surface.Y,
	}
}

// ScreenToWorld is the inverse of WorldToScreen.
func (t Transform) ScreenToWorld(p Point) Point {
	return Point{
		X: (p.X-t.Surface.X)/t.Zoom + t.Center.X,
		Y: (p.Y-t.Surface.Y)/t.Zoom + t.Center.Y,
	}
}

// ProjectRect projects a world-space rectangle to screen space. The same
// projection is applied to background geometry and window rectangles so
// windows stick to workspace content during pan and zoom.
func (t Transform) ProjectRect(r Rect) Rect {
	origin := t.WorldToScreen(Point{X: r.X, Y: r.Y})
	return Rect{
		X:      origin.X,
		Y:      origin.Y,
		Width:  r.Width * t.Zoom,
		Height: r.Height * t.Zoom,
	}
}

// UnprojectRect maps a screen-space rectangle back to world space.
func (t Transform) UnprojectRect(r Rect) Rect {
	origin := t.ScreenToWorld(Point{X: r.X, Y: r.Y})
	return Rect{
		X:      origin.X,
		Y:      origin.Y,
		Width:  r.Width / t.Zoom,
		Height: r.Height / t.Zoom,
	}
}
