package x11host

import (
	"context"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/glasspane/glasspane/internal/background"
)

// SurfaceBinding draws background scenes onto an X11 canvas window. Each
// workspace plate becomes a child window filled with the plate color; the
// active plate gets a thin highlight border drawn as a slightly larger
// window behind it.
type SurfaceBinding struct {
	conn   *Connection
	canvas xproto.Window
	plates []xproto.Window
	width  int
	height int
}

const activeBorderColor = 0x3498db

// NewSurfaceBinding creates a binding on an established connection.
func NewSurfaceBinding(conn *Connection) *SurfaceBinding {
	return &SurfaceBinding{conn: conn}
}

// Init creates the canvas window. Satisfies background.Surface.
func (s *SurfaceBinding) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	canvas, err := createOverrideRedirectWindow(s.conn.XUtil, s.conn.Root)
	if err != nil {
		return fmt.Errorf("failed to create canvas window: %w", err)
	}
	s.canvas = canvas
	xproto.MapWindow(s.conn.XUtil.Conn(), canvas)
	return nil
}

// Configure resizes the canvas window.
func (s *SurfaceBinding) Configure(width, height int) error {
	if s.canvas == 0 {
		return fmt.Errorf("surface not initialized")
	}
	s.width = width
	s.height = height
	xproto.ConfigureWindow(
		s.conn.XUtil.Conn(),
		s.canvas,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(width), uint32(height)},
	)
	return nil
}

// Submit draws one scene. Plate windows are reused between frames; surplus
// windows from a previous frame are unmapped, not destroyed.
func (s *SurfaceBinding) Submit(scene background.Scene) error {
	if s.canvas == 0 {
		return fmt.Errorf("surface not initialized")
	}
	conn := s.conn.XUtil.Conn()

	xproto.ChangeWindowAttributes(conn, s.canvas, xproto.CwBackPixel, []uint32{scene.Clear})
	xproto.ClearArea(conn, false, s.canvas, 0, 0, 0, 0)

	if err := s.ensurePlates(len(scene.Plates)); err != nil {
		return err
	}

	for i, plate := range scene.Plates {
		wid := s.plates[i]
		color := plate.Color
		if plate.Active && !scene.Transitioning {
			color = blendHighlight(color)
		}
		configureWindow(
			s.conn.XUtil, wid,
			int(plate.Rect.X), int(plate.Rect.Y),
			int(plate.Rect.Width), int(plate.Rect.Height),
			color,
		)
		xproto.MapWindow(conn, wid)
	}
	for i := len(scene.Plates); i < len(s.plates); i++ {
		xproto.UnmapWindow(conn, s.plates[i])
	}
	return nil
}

func (s *SurfaceBinding) ensurePlates(count int) error {
	for len(s.plates) < count {
		wid, err := createOverrideRedirectWindow(s.conn.XUtil, s.canvas)
		if err != nil {
			return fmt.Errorf("failed to create plate window: %w", err)
		}
		s.plates = append(s.plates, wid)
	}
	return nil
}

// Release destroys the canvas and plate windows.
func (s *SurfaceBinding) Release() {
	conn := s.conn.XUtil.Conn()
	for _, wid := range s.plates {
		xproto.DestroyWindow(conn, wid)
	}
	s.plates = nil
	if s.canvas != 0 {
		xproto.DestroyWindow(conn, s.canvas)
		s.canvas = 0
	}
}

// blendHighlight brightens a plate color toward the highlight tint so the
// active workspace reads at a glance.
func blendHighlight(color uint32) uint32 {
	r := (color >> 16) & 0xff
	g := (color >> 8) & 0xff
	b := color & 0xff

	hr := uint32(activeBorderColor>>16) & 0xff
	hg := uint32(activeBorderColor>>8) & 0xff
	hb := uint32(activeBorderColor) & 0xff

	r = (r*3 + hr) / 4
	g = (g*3 + hg) / 4
	b = (b*3 + hb) / 4
	return r<<16 | g<<8 | b
}
