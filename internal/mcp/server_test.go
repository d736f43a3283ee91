package mcp

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/glasspane/glasspane/internal/frame"
	"github.com/glasspane/glasspane/internal/geom"
	"github.com/glasspane/glasspane/internal/ipc"
	"github.com/glasspane/glasspane/internal/session"
)

type stubFrames struct{ frame *frame.Frame }

func (s *stubFrames) Frame() *frame.Frame { return s.frame }

type stubBackgrounds struct{ current string }

func (s *stubBackgrounds) Backgrounds() []string     { return []string{"aurora", "slate"} }
func (s *stubBackgrounds) CurrentBackground() string { return s.current }
func (s *stubBackgrounds) SetBackground(n string) bool {
	if n != "aurora" && n != "slate" {
		return false
	}
	s.current = n
	return true
}

type stubIntents struct {
	launched []string
	switched []int
	focused  []uint64
	inputs   []string
}

func (s *stubIntents) LaunchApp(appID string) error { s.launched = append(s.launched, appID); return nil }

func (s *stubIntents) LaunchOrFocusApp(appID string) error { s.launched = append(s.launched, appID); return nil }

func (s *stubIntents) FocusWindow(id uint64) error { s.focused = append(s.focused, id); return nil }

func (s *stubIntents) SendInput(text string) error { s.inputs = append(s.inputs, text); return nil }

func (s *stubIntents) SwitchWorkspace(index int) error { s.switched = append(s.switched, index); return nil }

type nullWriter struct{}

func (nullWriter) Write(p []byte) (int, error) { return len(p), nil }

func newTestServer(t *testing.T) (*Server, *stubIntents) {
	t.Helper()

	model := session.NewModel(0.25, 4.0)
	model.SetWorkspaceInfo([]frame.WorkspaceInfo{
		{ID: 0, Label: "main", Ordinal: 0},
		{ID: 1, Label: "side", Ordinal: 1},
	}, 0)

	frames := &stubFrames{frame: &frame.Frame{
		Seq: 9,
		Windows: []frame.WindowInfo{
			{ID: 1, AppID: "terminal", Frame: geom.Rect{Width: 640, Height: 480}, State: frame.StateFocused, ZOrder: 1, Workspace: 0},
			{ID: 2, AppID: "clock", Frame: geom.Rect{X: 700, Width: 360, Height: 360}, State: frame.StateNormal, ZOrder: 0, Workspace: 1},
		},
	}}
	intents := &stubIntents{}

	logger := slog.New(slog.NewTextHandler(nullWriter{}, &slog.HandlerOptions{Level: slog.LevelError}))
	path := filepath.Join(t.TempDir(), "glasspane.sock")
	srv := ipc.NewServer(path, frames, model, &stubBackgrounds{current: "aurora"}, intents, logger)
	if err := srv.Start(); err != nil {
		t.Fatalf("ipc server start failed: %v", err)
	}
	t.Cleanup(srv.Stop)

	return NewServer(ipc.NewClientForSocket(path)), intents
}

func TestHandleGetStatus(t *testing.T) {
	s, _ := newTestServer(t)

	_, out, err := s.handleGetStatus(context.Background(), nil, GetStatusInput{})
	if err != nil {
		t.Fatalf("get_status failed: %v", err)
	}
	if !out.Running || out.FrameSeq != 9 || out.WindowCount != 2 {
		t.Errorf("unexpected status: %+v", out)
	}
}

func TestHandleListWindows_Filter(t *testing.T) {
	s, _ := newTestServer(t)

	_, out, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{})
	if err != nil {
		t.Fatalf("list_windows failed: %v", err)
	}
	if len(out.Windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(out.Windows))
	}
	if out.Windows[0].State != "focused" {
		t.Errorf("state = %q, want focused", out.Windows[0].State)
	}

	ws := 1
	_, out, err = s.handleListWindows(context.Background(), nil, ListWindowsInput{Workspace: &ws})
	if err != nil {
		t.Fatalf("list_windows filtered failed: %v", err)
	}
	if len(out.Windows) != 1 || out.Windows[0].AppID != "clock" {
		t.Errorf("filtered windows = %+v", out.Windows)
	}
}

func TestHandleSwitchWorkspace(t *testing.T) {
	s, intents := newTestServer(t)

	_, out, err := s.handleSwitchWorkspace(context.Background(), nil, SwitchWorkspaceInput{Index: 1})
	if err != nil {
		t.Fatalf("switch_workspace failed: %v", err)
	}
	if !out.Requested || out.Index != 1 {
		t.Errorf("unexpected output: %+v", out)
	}
	if len(intents.switched) != 1 || intents.switched[0] != 1 {
		t.Errorf("switched = %v", intents.switched)
	}

	if _, _, err := s.handleSwitchWorkspace(context.Background(), nil, SwitchWorkspaceInput{Index: -1}); err == nil {
		t.Error("expected error for negative index")
	}
	if _, _, err := s.handleSwitchWorkspace(context.Background(), nil, SwitchWorkspaceInput{Index: 5}); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func TestHandleBackgrounds(t *testing.T) {
	s, _ := newTestServer(t)

	_, list, err := s.handleListBackgrounds(context.Background(), nil, ListBackgroundsInput{})
	if err != nil {
		t.Fatalf("list_backgrounds failed: %v", err)
	}
	if list.Current != "aurora" || len(list.Backgrounds) != 2 {
		t.Errorf("unexpected list: %+v", list)
	}

	_, set, err := s.handleSetBackground(context.Background(), nil, SetBackgroundInput{Name: "slate"})
	if err != nil {
		t.Fatalf("set_background failed: %v", err)
	}
	if set.Name != "slate" {
		t.Errorf("name = %q", set.Name)
	}

	if _, _, err := s.handleSetBackground(context.Background(), nil, SetBackgroundInput{}); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestHandleLaunchFocusInput(t *testing.T) {
	s, intents := newTestServer(t)

	_, launch, err := s.handleLaunchApp(context.Background(), nil, LaunchAppInput{AppID: "terminal"})
	if err != nil {
		t.Fatalf("launch_app failed: %v", err)
	}
	if !launch.Requested || len(intents.launched) != 1 {
		t.Errorf("launch not forwarded: %+v %v", launch, intents.launched)
	}

	if _, _, err := s.handleLaunchApp(context.Background(), nil, LaunchAppInput{AppID: "no-such-app"}); err == nil {
		t.Error("expected error for unknown app")
	}

	_, focus, err := s.handleFocusWindow(context.Background(), nil, FocusWindowInput{WindowID: 2})
	if err != nil {
		t.Fatalf("focus_window failed: %v", err)
	}
	if !focus.Requested || len(intents.focused) != 1 || intents.focused[0] != 2 {
		t.Errorf("focus not forwarded: %+v %v", focus, intents.focused)
	}

	_, input, err := s.handleSendInput(context.Background(), nil, SendInputInput{Text: "hello"})
	if err != nil {
		t.Fatalf("send_input failed: %v", err)
	}
	if !input.Requested || len(intents.inputs) != 1 {
		t.Errorf("input not forwarded: %+v %v", input, intents.inputs)
	}

	if _, _, err := s.handleSendInput(context.Background(), nil, SendInputInput{}); err == nil {
		t.Error("expected error for empty text")
	}
}
