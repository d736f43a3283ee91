// Package overlay maintains the positioned node set that hosts window
// content. Each visible window maps to exactly one externally-owned node;
// the reconciler owns the id-to-node mapping for its lifetime and applies
// the minimal create/update/release set every frame.
package overlay

import (
	"log/slog"
	"sort"

	"github.com/glasspane/glasspane/internal/frame"
	"github.com/glasspane/glasspane/internal/geom"
)

// Node is one overlay attachment point, positioned to match a window's
// screen rectangle. Nodes are externally owned and may be detached behind
// the reconciler's back; reconciliation recreates them rather than failing.
type Node interface {
	// SetFrame positions the node at a screen rectangle with the given
	// stacking position (0 = bottom-most within the overlay layer).
	SetFrame(screen geom.Rect, stack int)
	// Attached reports whether the backing resource still exists.
	Attached() bool
	// Release destroys the backing resource. Idempotent.
	Release()
}

// Host creates overlay nodes. Implementations bind to the actual display
// system (DOM container, X11 window, test fake).
type Host interface {
	CreateNode(id uint64, appID string) (Node, error)
}

// Stats counts the operations applied by one reconciliation pass.
type Stats struct {
	Created int
	Updated int
	Removed int
}

// Total returns the number of node operations in the pass.
func (s Stats) Total() int { return s.Created + s.Updated + s.Removed }

type entry struct {
	node   Node
	screen geom.Rect // last applied projected rect
	stack  int       // last applied stacking position
}

// Reconciler diffs frame snapshots into overlay node operations.
type Reconciler struct {
	host   Host
	logger *slog.Logger

	// nodes is owned exclusively by the reconciler and mutated only
	// inside a tick.
	nodes map[uint64]*entry
}

// NewReconciler creates a reconciler over the given host.
func NewReconciler(host Host, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		host:   host,
		logger: logger,
		nodes:  make(map[uint64]*entry),
	}
}

// Reconcile applies one snapshot: after it returns, exactly the windows with
// state != minimized have nodes, positioned through tr and stacked in
// ascending z-order. The projected screen rect is compared, not the world
// rect, so camera motion repositions nodes through the same path as window
// motion. The pass is best-effort and never panics; a node that cannot be
// created is skipped and retried on the next frame.
func (r *Reconciler) Reconcile(f *frame.Frame, tr geom.Transform) Stats {
	var stats Stats
	if f == nil {
		return stats
	}

	visible := make([]frame.WindowInfo, 0, len(f.Windows))
	seen := make(map[uint64]struct{}, len(f.Windows))
	for _, w := range f.Windows {
		if !w.State.Visible() {
			continue
		}
		visible = append(visible, w)
		seen[w.ID] = struct{}{}
	}

	// Removals first so stacking below runs against the final set.
	for id, e := range r.nodes {
		if _, ok := seen[id]; ok {
			continue
		}
		e.node.Release()
		delete(r.nodes, id)
		stats.Removed++
	}

	// Ascending z-order: stacking by apply order, so hosts that stack by
	// source order (DOM) need no explicit z-index management.
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].ZOrder < visible[j].ZOrder
	})

	for _, w := range visible {
		// The raw z-rank is the stacking position. Ranks are totally
		// ordered, so relative order is preserved, and a window leaving
		// the visible set never restacks the survivors.
		stack := w.ZOrder
		screen := tr.ProjectRect(w.Frame)

		e, exists := r.nodes[w.ID]
		if exists && !e.node.Attached() {
			// Externally detached; rebuild instead of failing.
			e.node.Release()
			delete(r.nodes, w.ID)
			exists = false
		}

		if !exists {
			node, err := r.host.CreateNode(w.ID, w.AppID)
			if err != nil {
				r.logger.Warn("overlay node creation failed",
					"window_id", w.ID,
					"app_id", w.AppID,
					"error", err)
				continue
			}
			node.SetFrame(screen, stack)
			r.nodes[w.ID] = &entry{node: node, screen: screen, stack: stack}
			stats.Created++
			continue
		}

		// Cheap equality check: skip the node write when neither the
		// projected rectangle nor the stacking position changed. This
		// runs every frame over the whole window set.
		if e.screen.Eq(screen) && e.stack == stack {
			continue
		}
		e.node.SetFrame(screen, stack)
		e.screen = screen
		e.stack = stack
		stats.Updated++
	}

	return stats
}

// VisibleIDs returns the identifiers currently backed by nodes.
func (r *Reconciler) VisibleIDs() []uint64 {
	ids := make([]uint64, 0, len(r.nodes))
	for id := range r.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Release destroys every tracked node. Called on driver teardown so no
// overlay outlives its desktop session.
func (r *Reconciler) Release() {
	for id, e := range r.nodes {
		e.node.Release()
		delete(r.nodes, id)
	}
}
