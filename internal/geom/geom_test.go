package geom

import (
	"math"
	"testing"
)

func TestTransform_RoundTrip(t *testing.T) {
	transforms := []Transform{
		{Zoom: 1, Center: Point{}, Surface: Point{}},
		{Zoom: 2, Center: Point{X: 100, Y: -50}, Surface: Point{X: 960, Y: 540}},
		{Zoom: 0.25, Center: Point{X: -3000, Y: 7000}, Surface: Point{X: 640, Y: 360}},
		{Zoom: 1.733, Center: Point{X: 0.5, Y: 0.25}, Surface: Point{X: 400, Y: 300}},
	}
	points := []Point{
		{X: 0, Y: 0},
		{X: 123.456, Y: -654.321},
		{X: -1e6, Y: 1e6},
	}

	for _, tr := range transforms {
		for _, p := range points {
			got := tr.ScreenToWorld(tr.WorldToScreen(p))
			if math.Abs(got.X-p.X) > 1e-6 || math.Abs(got.Y-p.Y) > 1e-6 {
				t.Errorf("round trip failed: transform=%+v point=%+v got=%+v", tr, p, got)
			}
		}
	}
}

func TestTransform_ProjectRectScalesAroundCamera(t *testing.T) {
	// Window at world (0,0,100,100), camera centered at origin, surface
	// center at origin. Zoom 1 leaves it in place; zoom 2 doubles its
	// extent away from the camera center.
	world := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	at1 := Transform{Zoom: 1}.ProjectRect(world)
	if !at1.Eq(world) {
		t.Fatalf("zoom 1: expected identity projection, got %+v", at1)
	}

	at2 := Transform{Zoom: 2}.ProjectRect(world)
	want := Rect{X: 0, Y: 0, Width: 200, Height: 200}
	if !at2.Eq(want) {
		t.Fatalf("zoom 2: expected %+v, got %+v", want, at2)
	}

	// With the camera on the window center the rect grows symmetrically.
	centered := Transform{Zoom: 2, Center: Point{X: 50, Y: 50}, Surface: Point{X: 50, Y: 50}}
	got := centered.ProjectRect(world)
	want = Rect{X: -50, Y: -50, Width: 200, Height: 200}
	if !got.Eq(want) {
		t.Fatalf("centered zoom 2: expected %+v, got %+v", want, got)
	}
}

func TestTransform_UnprojectRectInvertsProjectRect(t *testing.T) {
	tr := Transform{Zoom: 1.5, Center: Point{X: 40, Y: -20}, Surface: Point{X: 512, Y: 384}}
	world := Rect{X: -75, Y: 220, Width: 300, Height: 180}

	got := tr.UnprojectRect(tr.ProjectRect(world))
	if !got.Eq(world) {
		t.Fatalf("expected %+v, got %+v", world, got)
	}
}

func TestRect_IntersectsAndContains(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlap", Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"inside", Rect{X: 2, Y: 2, Width: 2, Height: 2}, true},
		{"touching edge", Rect{X: 10, Y: 0, Width: 5, Height: 5}, false},
		{"disjoint", Rect{X: 20, Y: 20, Width: 5, Height: 5}, false},
	}
	for _, tc := range cases {
		if got := a.Intersects(tc.b); got != tc.want {
			t.Errorf("%s: Intersects=%v, want %v", tc.name, got, tc.want)
		}
	}

	if !a.Contains(Point{X: 10, Y: 10}) {
		t.Errorf("expected corner point to be contained")
	}
	if a.Contains(Point{X: 10.1, Y: 10}) {
		t.Errorf("expected outside point not to be contained")
	}
}

func TestRect_Union(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 20, Y: -5, Width: 10, Height: 10}

	got := a.Union(b)
	want := Rect{X: 0, Y: -5, Width: 30, Height: 15}
	if !got.Eq(want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestNormalized(t *testing.T) {
	got := Normalized(Point{X: 10, Y: 20}, Point{X: -5, Y: 2})
	want := Rect{X: -5, Y: 2, Width: 15, Height: 18}
	if !got.Eq(want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}
