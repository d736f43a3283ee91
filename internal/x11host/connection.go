// Package x11host binds the compositing core to a live X11 display for the
// preview mode. The surface binding draws workspace plates as colored
// windows; the overlay host places override-redirect windows where the real
// shell would composite application content.
package x11host

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection establishes a connection to the X11 server
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// ScreenSize returns the root screen dimensions in pixels.
func (c *Connection) ScreenSize() (int, int) {
	screen := c.XUtil.Screen()
	return int(screen.WidthInPixels), int(screen.HeightInPixels)
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// createOverrideRedirectWindow creates a window that bypasses the window
// manager. Geometry is a 1x1 placeholder until the first configure.
func createOverrideRedirectWindow(xu *xgbutil.XUtil, root xproto.Window) (xproto.Window, error) {
	conn := xu.Conn()
	screen := xu.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}

	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		root,
		0, 0,
		1, 1,
		0, // border_width
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwOverrideRedirect|xproto.CwBackPixel,
		// Value list order follows the bit positions of the mask (low to
		// high). CwBackPixel comes before CwOverrideRedirect, so it must
		// be first.
		[]uint32{0, 1}, // back_pixel=black, override_redirect=true
	).Check()
	if err != nil {
		return 0, err
	}

	return wid, nil
}

// configureWindow moves, resizes, recolors, and raises a window.
func configureWindow(xu *xgbutil.XUtil, wid xproto.Window, x, y, width, height int, color uint32) {
	conn := xu.Conn()

	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	xproto.ConfigureWindow(
		conn,
		wid,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{
			uint32(x),
			uint32(y),
			uint32(width),
			uint32(height),
			xproto.StackModeAbove,
		},
	)

	xproto.ChangeWindowAttributes(
		conn,
		wid,
		xproto.CwBackPixel,
		[]uint32{color},
	)

	// Clear window to show new color
	xproto.ClearArea(conn, false, wid, 0, 0, 0, 0)
}
