package overlay

import (
	"errors"
	"fmt"
	"testing"

	"github.com/glasspane/glasspane/internal/frame"
	"github.com/glasspane/glasspane/internal/geom"
)

type fakeNode struct {
	id       uint64
	screen   geom.Rect
	stack    int
	sets     int
	released bool
	detached bool

	host *fakeHost
}

func (n *fakeNode) SetFrame(screen geom.Rect, stack int) {
	n.screen = screen
	n.stack = stack
	n.sets++
	n.host.applied = append(n.host.applied, n.id)
}

func (n *fakeNode) Attached() bool { return !n.detached && !n.released }

func (n *fakeNode) Release() { n.released = true }

type fakeHost struct {
	nodes   map[uint64]*fakeNode
	created []uint64
	applied []uint64 // SetFrame call order across all nodes
	failIDs map[uint64]bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{nodes: make(map[uint64]*fakeNode), failIDs: make(map[uint64]bool)}
}

func (h *fakeHost) CreateNode(id uint64, appID string) (Node, error) {
	if h.failIDs[id] {
		return nil, errors.New("host refused node")
	}
	n := &fakeNode{id: id, host: h}
	h.nodes[id] = n
	h.created = append(h.created, id)
	return n, nil
}

func win(id uint64, state frame.WindowState, z int, x float64) frame.WindowInfo {
	return frame.WindowInfo{
		ID:     id,
		AppID:  fmt.Sprintf("app-%d", id),
		Frame:  geom.Rect{X: x, Y: 0, Width: 100, Height: 100},
		State:  state,
		ZOrder: z,
	}
}

func identity() geom.Transform { return geom.Transform{Zoom: 1} }

func TestReconcile_VisibleSetMatchesNonMinimized(t *testing.T) {
	host := newFakeHost()
	r := NewReconciler(host, nil)

	f := &frame.Frame{Windows: []frame.WindowInfo{
		win(1, frame.StateNormal, 0, 0),
		win(2, frame.StateMinimized, 1, 100),
		win(3, frame.StateFocused, 2, 200),
		win(4, frame.StateMaximized, 3, 300),
	}}
	stats := r.Reconcile(f, identity())

	if stats.Created != 3 || stats.Removed != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	got := r.VisibleIDs()
	want := []uint64{1, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("visible ids %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visible ids %v, want %v", got, want)
		}
	}
}

func TestReconcile_MinimizeDestroysOnlyThatOverlay(t *testing.T) {
	host := newFakeHost()
	r := NewReconciler(host, nil)

	first := &frame.Frame{Windows: []frame.WindowInfo{
		win(1, frame.StateNormal, 0, 0),
		win(2, frame.StateNormal, 1, 150),
	}}
	r.Reconcile(first, identity())
	host.applied = nil

	second := &frame.Frame{Windows: []frame.WindowInfo{
		win(1, frame.StateMinimized, 0, 0),
		win(2, frame.StateNormal, 1, 150),
	}}
	stats := r.Reconcile(second, identity())

	if stats.Removed != 1 || stats.Created != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if !host.nodes[1].released {
		t.Errorf("minimized window's node must be released")
	}
	if host.nodes[2].released {
		t.Errorf("unrelated node must not be touched")
	}
	// Window 2 keeps its z-rank, so no transform write happens for it.
	if stats.Updated != 0 || host.nodes[2].sets != 1 {
		t.Errorf("no other overlay may be touched, stats=%+v sets=%d", stats, host.nodes[2].sets)
	}
}

func TestReconcile_IdenticalFramesApplyZeroOps(t *testing.T) {
	host := newFakeHost()
	r := NewReconciler(host, nil)

	f := &frame.Frame{Windows: []frame.WindowInfo{
		win(1, frame.StateNormal, 0, 0),
		win(2, frame.StateNormal, 1, 150),
	}}
	r.Reconcile(f, identity())

	stats := r.Reconcile(f, identity())
	if stats.Total() != 0 {
		t.Fatalf("identical frames must produce zero ops, got %+v", stats)
	}
	if host.nodes[1].sets != 1 || host.nodes[2].sets != 1 {
		t.Fatalf("no extra SetFrame calls expected, got %d/%d",
			host.nodes[1].sets, host.nodes[2].sets)
	}
}

func TestReconcile_AscendingZOrderApplication(t *testing.T) {
	host := newFakeHost()
	r := NewReconciler(host, nil)

	// Deliberately unsorted input ordering.
	f := &frame.Frame{Windows: []frame.WindowInfo{
		win(7, frame.StateNormal, 30, 0),
		win(3, frame.StateNormal, 10, 50),
		win(5, frame.StateNormal, 20, 100),
	}}
	r.Reconcile(f, identity())

	want := []uint64{3, 5, 7}
	if len(host.applied) != 3 {
		t.Fatalf("expected 3 applies, got %v", host.applied)
	}
	for i := range want {
		if host.applied[i] != want[i] {
			t.Fatalf("apply order %v, want %v", host.applied, want)
		}
	}

	// Higher z-order occupies a later stacking position.
	if host.nodes[3].stack >= host.nodes[5].stack || host.nodes[5].stack >= host.nodes[7].stack {
		t.Fatalf("stacking positions must follow z-order: %d/%d/%d",
			host.nodes[3].stack, host.nodes[5].stack, host.nodes[7].stack)
	}
}

func TestReconcile_CameraChangeRepositionsSurvivors(t *testing.T) {
	host := newFakeHost()
	r := NewReconciler(host, nil)

	f := &frame.Frame{Windows: []frame.WindowInfo{win(1, frame.StateNormal, 0, 0)}}
	r.Reconcile(f, identity())

	zoomed := geom.Transform{Zoom: 2, Center: geom.Point{X: 50, Y: 50}, Surface: geom.Point{X: 50, Y: 50}}
	stats := r.Reconcile(f, zoomed)

	if stats.Updated != 1 {
		t.Fatalf("camera change must update survivors, got %+v", stats)
	}
	want := geom.Rect{X: -50, Y: -50, Width: 200, Height: 200}
	if !host.nodes[1].screen.Eq(want) {
		t.Fatalf("screen rect %+v, want %+v", host.nodes[1].screen, want)
	}
}

func TestReconcile_DetachedNodeIsRecreated(t *testing.T) {
	host := newFakeHost()
	r := NewReconciler(host, nil)

	f := &frame.Frame{Windows: []frame.WindowInfo{win(1, frame.StateNormal, 0, 0)}}
	r.Reconcile(f, identity())

	// Simulate an unrelated re-render tearing the node out.
	host.nodes[1].detached = true

	stats := r.Reconcile(f, identity())
	if stats.Created != 1 {
		t.Fatalf("detached node must be recreated, got %+v", stats)
	}
	if len(host.created) != 2 {
		t.Fatalf("expected a second CreateNode call, got %v", host.created)
	}
}

func TestReconcile_CreateFailureIsSkippedAndRetried(t *testing.T) {
	host := newFakeHost()
	host.failIDs[2] = true
	r := NewReconciler(host, nil)

	f := &frame.Frame{Windows: []frame.WindowInfo{
		win(1, frame.StateNormal, 0, 0),
		win(2, frame.StateNormal, 1, 100),
	}}
	stats := r.Reconcile(f, identity())
	if stats.Created != 1 {
		t.Fatalf("failed create must be skipped, got %+v", stats)
	}

	host.failIDs[2] = false
	stats = r.Reconcile(f, identity())
	if stats.Created != 1 {
		t.Fatalf("previously failed node must be retried, got %+v", stats)
	}
}

func TestRelease_DestroysEverything(t *testing.T) {
	host := newFakeHost()
	r := NewReconciler(host, nil)

	f := &frame.Frame{Windows: []frame.WindowInfo{
		win(1, frame.StateNormal, 0, 0),
		win(2, frame.StateNormal, 1, 100),
	}}
	r.Reconcile(f, identity())
	r.Release()

	if len(r.VisibleIDs()) != 0 {
		t.Fatalf("release must clear tracked nodes")
	}
	for id, n := range host.nodes {
		if !n.released {
			t.Errorf("node %d not released", id)
		}
	}
}
