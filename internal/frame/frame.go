package frame

import (
	"github.com/glasspane/glasspane/internal/geom"
)

// WindowState describes the supervisor-reported state of a window.
type WindowState int

const (
	// StateNormal is a regular visible window.
	StateNormal WindowState = iota
	// StateMinimized hides the window from the visible set.
	StateMinimized
	// StateMaximized fills the owning workspace.
	StateMaximized
	// StateFocused is a normal window holding input focus.
	StateFocused
)

// String returns the wire name of the state.
func (s WindowState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateMinimized:
		return "minimized"
	case StateMaximized:
		return "maximized"
	case StateFocused:
		return "focused"
	default:
		return "unknown"
	}
}

// ParseWindowState maps a wire name back to a WindowState. Unknown names
// fall back to normal so a newer supervisor never breaks rendering.
func ParseWindowState(s string) WindowState {
	switch s {
	case "minimized":
		return StateMinimized
	case "maximized":
		return StateMaximized
	case "focused":
		return StateFocused
	default:
		return StateNormal
	}
}

// Visible reports whether windows in this state appear in the overlay set.
func (s WindowState) Visible() bool {
	return s != StateMinimized
}

// WindowInfo is one open window as reported by a snapshot. The identifier is
// unique and stable across frames for the lifetime of the window; z-order
// ranks form a total order with no ties.
type WindowInfo struct {
	ID        uint64      `json:"id"`
	AppID     string      `json:"app_id"`
	Frame     geom.Rect   `json:"frame"` // world space
	State     WindowState `json:"state"`
	ZOrder    int         `json:"z_order"`
	Workspace int         `json:"workspace"`
	PID       int         `json:"pid,omitempty"` // backend process, if isolated
}

// ViewportState is the camera transform: zoom scalar and world-space center.
type ViewportState struct {
	Zoom   float64    `json:"zoom"`
	Center geom.Point `json:"center"`
}

// WorkspaceInfo is one virtual desktop.
type WorkspaceInfo struct {
	ID         int    `json:"id"`
	Label      string `json:"label"`
	Ordinal    int    `json:"ordinal"`
	Background string `json:"background"`
}

// Frame is one immutable snapshot of supervisor state. Each render tick
// consumes exactly one Frame; producers must never mutate a published Frame.
type Frame struct {
	Seq           uint64          `json:"seq"`
	Windows       []WindowInfo    `json:"windows"`
	Viewport      ViewportState   `json:"viewport"`
	Workspaces    []WorkspaceInfo `json:"workspaces"`
	Active        int             `json:"active"`
	Transitioning bool            `json:"transitioning"`
}

// Placement reports whether two window records project to the same overlay
// geometry. State is included because a minimize/restore flips visibility.
func Placement(a, b WindowInfo) bool {
	return a.Frame.Eq(b.Frame) && a.ZOrder == b.ZOrder && a.State == b.State
}
