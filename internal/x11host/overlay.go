package x11host

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/glasspane/glasspane/internal/geom"
	"github.com/glasspane/glasspane/internal/overlay"
)

// appColors gives each known app a distinct placeholder fill so preview
// windows are tellable apart without real content.
var appColors = map[string]uint32{
	"terminal":   0x1f2933,
	"calculator": 0x7b5ea7,
	"clock":      0x2d6a4f,
	"files":      0x9c6644,
	"settings":   0x3d5a80,
}

const defaultAppColor = 0x52525b

// OverlayHost creates override-redirect X windows as overlay nodes.
// Satisfies overlay.Host.
type OverlayHost struct {
	conn *Connection
}

// NewOverlayHost creates a host on an established connection.
func NewOverlayHost(conn *Connection) *OverlayHost {
	return &OverlayHost{conn: conn}
}

// CreateNode creates one unmapped overlay window for a shell window.
func (h *OverlayHost) CreateNode(id uint64, appID string) (overlay.Node, error) {
	wid, err := createOverrideRedirectWindow(h.conn.XUtil, h.conn.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay window for %d: %w", id, err)
	}

	color, ok := appColors[appID]
	if !ok {
		color = defaultAppColor
	}
	return &overlayNode{conn: h.conn, window: wid, color: color}, nil
}

type overlayNode struct {
	conn     *Connection
	window   xproto.Window
	color    uint32
	mapped   bool
	released bool
}

// SetFrame positions the window at a screen rect. Nodes are applied in
// ascending stack order and each configure raises, so relative stacking
// follows the apply order.
func (n *overlayNode) SetFrame(screen geom.Rect, stack int) {
	if n.released {
		return
	}
	configureWindow(
		n.conn.XUtil, n.window,
		int(screen.X), int(screen.Y),
		int(screen.Width), int(screen.Height),
		n.color,
	)
	if !n.mapped {
		xproto.MapWindow(n.conn.XUtil.Conn(), n.window)
		n.mapped = true
	}
}

func (n *overlayNode) Attached() bool {
	return !n.released
}

func (n *overlayNode) Release() {
	if n.released {
		return
	}
	xproto.DestroyWindow(n.conn.XUtil.Conn(), n.window)
	n.released = true
	n.mapped = false
}
