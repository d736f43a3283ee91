package ipc

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/glasspane/glasspane/internal/frame"
	"github.com/glasspane/glasspane/internal/geom"
	"github.com/glasspane/glasspane/internal/session"
)

type fakeFrames struct {
	frame *frame.Frame
}

func (f *fakeFrames) Frame() *frame.Frame { return f.frame }

type fakeBackgrounds struct {
	current string
}

func (f *fakeBackgrounds) Backgrounds() []string     { return []string{"aurora", "dusk", "slate"} }
func (f *fakeBackgrounds) CurrentBackground() string { return f.current }
func (f *fakeBackgrounds) SetBackground(n string) bool {
	for _, known := range f.Backgrounds() {
		if known == n {
			f.current = n
			return true
		}
	}
	return false
}

type fakeIntents struct {
	launched  []string
	focused   []string
	inputs    []string
	focusedID []uint64
	switched  []int
}

func (f *fakeIntents) LaunchApp(appID string) error { f.launched = append(f.launched, appID); return nil }

func (f *fakeIntents) LaunchOrFocusApp(appID string) error { f.focused = append(f.focused, appID); return nil }

func (f *fakeIntents) FocusWindow(id uint64) error { f.focusedID = append(f.focusedID, id); return nil }

func (f *fakeIntents) SendInput(text string) error { f.inputs = append(f.inputs, text); return nil }

func (f *fakeIntents) SwitchWorkspace(index int) error { f.switched = append(f.switched, index); return nil }

type serverFixture struct {
	client  *Client
	frames  *fakeFrames
	bgs     *fakeBackgrounds
	intents *fakeIntents
	model   *session.Model
}

func startTestServer(t *testing.T) *serverFixture {
	t.Helper()

	model := session.NewModel(0.25, 4.0)
	model.SetWorkspaceInfo([]frame.WorkspaceInfo{
		{ID: 0, Label: "main", Ordinal: 0},
		{ID: 1, Label: "code", Ordinal: 1},
		{ID: 2, Label: "chat", Ordinal: 2},
	}, 1)

	fx := &serverFixture{
		frames: &fakeFrames{frame: &frame.Frame{
			Seq:    12,
			Active: 1,
			Windows: []frame.WindowInfo{
				{ID: 4, AppID: "terminal", Frame: geom.Rect{X: 0, Y: 0, Width: 640, Height: 480}, State: frame.StateFocused, ZOrder: 2},
				{ID: 5, AppID: "clock", Frame: geom.Rect{X: 700, Y: 0, Width: 360, Height: 360}, State: frame.StateNormal, ZOrder: 1},
			},
		}},
		bgs:     &fakeBackgrounds{current: "aurora"},
		intents: &fakeIntents{},
		model:   model,
	}

	logger := slog.New(slog.NewTextHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelError}))
	path := filepath.Join(t.TempDir(), "glasspane.sock")
	srv := NewServer(path, fx.frames, fx.model, fx.bgs, fx.intents, logger)
	if err := srv.Start(); err != nil {
		t.Fatalf("server start failed: %v", err)
	}
	t.Cleanup(srv.Stop)

	fx.client = NewClientForSocket(path)
	return fx
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestServer_GetStatus(t *testing.T) {
	fx := startTestServer(t)

	status, err := fx.client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus failed: %v", err)
	}
	if !status.Running {
		t.Error("Running = false")
	}
	if status.FrameSeq != 12 {
		t.Errorf("FrameSeq = %d, want 12", status.FrameSeq)
	}
	if status.WindowCount != 2 {
		t.Errorf("WindowCount = %d, want 2", status.WindowCount)
	}
	if status.ActiveWorkspace != 1 {
		t.Errorf("ActiveWorkspace = %d, want 1", status.ActiveWorkspace)
	}
	if status.Background != "aurora" {
		t.Errorf("Background = %q, want aurora", status.Background)
	}
}

func TestServer_ListWindowsAndWorkspaces(t *testing.T) {
	fx := startTestServer(t)

	windows, err := fx.client.ListWindows()
	if err != nil {
		t.Fatalf("ListWindows failed: %v", err)
	}
	if len(windows.Windows) != 2 || windows.Windows[0].AppID != "terminal" {
		t.Errorf("unexpected windows: %+v", windows.Windows)
	}

	workspaces, err := fx.client.ListWorkspaces()
	if err != nil {
		t.Fatalf("ListWorkspaces failed: %v", err)
	}
	if len(workspaces.Workspaces) != 3 || workspaces.Active != 1 {
		t.Errorf("workspaces = %+v active %d", workspaces.Workspaces, workspaces.Active)
	}
}

func TestServer_SwitchWorkspace(t *testing.T) {
	fx := startTestServer(t)

	if err := fx.client.SwitchWorkspace(2); err != nil {
		t.Fatalf("SwitchWorkspace failed: %v", err)
	}
	if len(fx.intents.switched) != 1 || fx.intents.switched[0] != 2 {
		t.Errorf("switched = %v, want [2]", fx.intents.switched)
	}

	if err := fx.client.SwitchWorkspace(7); err == nil {
		t.Error("expected error for out-of-range workspace")
	}
	if len(fx.intents.switched) != 1 {
		t.Errorf("out-of-range switch was forwarded: %v", fx.intents.switched)
	}
}

func TestServer_Backgrounds(t *testing.T) {
	fx := startTestServer(t)

	data, err := fx.client.ListBackgrounds()
	if err != nil {
		t.Fatalf("ListBackgrounds failed: %v", err)
	}
	if len(data.Backgrounds) != 3 || data.Current != "aurora" {
		t.Errorf("backgrounds = %+v", data)
	}

	if err := fx.client.SetBackground("dusk"); err != nil {
		t.Fatalf("SetBackground failed: %v", err)
	}
	if fx.bgs.current != "dusk" {
		t.Errorf("current = %q, want dusk", fx.bgs.current)
	}

	if err := fx.client.SetBackground("tartan"); err == nil {
		t.Error("expected error for unknown background")
	}
}

func TestServer_LaunchApp(t *testing.T) {
	fx := startTestServer(t)

	if err := fx.client.LaunchApp("terminal", false); err != nil {
		t.Fatalf("LaunchApp failed: %v", err)
	}
	if len(fx.intents.launched) != 1 || fx.intents.launched[0] != "terminal" {
		t.Errorf("launched = %v, want [terminal]", fx.intents.launched)
	}

	// Singletons route through launch-or-focus even without the flag.
	if err := fx.client.LaunchApp("calculator", false); err != nil {
		t.Fatalf("LaunchApp(calculator) failed: %v", err)
	}
	if len(fx.intents.focused) != 1 || fx.intents.focused[0] != "calculator" {
		t.Errorf("focused = %v, want [calculator]", fx.intents.focused)
	}

	if err := fx.client.LaunchApp("no-such-app", false); err == nil {
		t.Error("expected error for unknown app")
	}
}

func TestServer_FocusAndInput(t *testing.T) {
	fx := startTestServer(t)

	if err := fx.client.FocusWindow(4); err != nil {
		t.Fatalf("FocusWindow failed: %v", err)
	}
	if len(fx.intents.focusedID) != 1 || fx.intents.focusedID[0] != 4 {
		t.Errorf("focusedID = %v, want [4]", fx.intents.focusedID)
	}

	if err := fx.client.SendInput("shutdown"); err != nil {
		t.Fatalf("SendInput failed: %v", err)
	}
	if len(fx.intents.inputs) != 1 || fx.intents.inputs[0] != "shutdown" {
		t.Errorf("inputs = %v, want [shutdown]", fx.intents.inputs)
	}

	if err := fx.client.SendInput(""); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestServer_ListApps(t *testing.T) {
	fx := startTestServer(t)

	all, err := fx.client.ListApps()
	if err != nil {
		t.Fatalf("ListApps failed: %v", err)
	}
	if len(all) == 0 {
		t.Fatal("no apps returned")
	}
	for _, app := range all {
		if !app.Implemented {
			t.Errorf("registry returned unimplemented app %q", app.ID)
		}
	}
}

func TestServer_ConcurrentRequestsDuringModelWrites(t *testing.T) {
	fx := startTestServer(t)

	// A render tick rewrites the model every frame while requests arrive on
	// their own connection goroutines; both must coexist cleanly under the
	// race detector.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for seq := uint64(1); seq <= 200; seq++ {
			fx.model.Apply(&frame.Frame{
				Seq:      seq,
				Viewport: frame.ViewportState{Zoom: 1.5, Center: geom.Point{X: float64(seq)}},
				Workspaces: []frame.WorkspaceInfo{
					{ID: 0, Label: "main", Ordinal: 0},
					{ID: 1, Label: "code", Ordinal: 1},
				},
				Active: int(seq % 2),
			})
		}
	}()

	for i := 0; i < 20; i++ {
		if _, err := fx.client.ListWorkspaces(); err != nil {
			t.Fatalf("ListWorkspaces failed: %v", err)
		}
		if _, err := fx.client.GetStatus(); err != nil {
			t.Fatalf("GetStatus failed: %v", err)
		}
	}
	<-done
}
