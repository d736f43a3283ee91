package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/glasspane/glasspane/internal/apps"
	"github.com/glasspane/glasspane/internal/frame"
	"github.com/glasspane/glasspane/internal/session"
)

// FrameSource exposes the most recently composited frame.
type FrameSource interface {
	Frame() *frame.Frame
}

// BackgroundControl exposes the renderer's background registry.
type BackgroundControl interface {
	Backgrounds() []string
	CurrentBackground() string
	SetBackground(name string) bool
}

// Intents forwards user intents to the supervisor. Calls are one-way; an
// error only means the command never left the shell.
type Intents interface {
	LaunchApp(appID string) error
	LaunchOrFocusApp(appID string) error
	FocusWindow(id uint64) error
	SendInput(text string) error
	SwitchWorkspace(index int) error
}

// Server handles IPC requests from clients
type Server struct {
	socketPath  string
	listener    net.Listener
	frames      FrameSource
	model       *session.Model
	backgrounds BackgroundControl
	intents     Intents
	logger      *slog.Logger
	startTime   time.Time

	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server listening on socketPath once started.
func NewServer(socketPath string, frames FrameSource, model *session.Model, backgrounds BackgroundControl, intents Intents, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath:  socketPath,
		frames:      frames,
		model:       model,
		backgrounds: backgrounds,
		intents:     intents,
		logger:      logger,
		startTime:   time.Now(),
	}
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "path", s.socketPath)

	// Accept connections
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	// Parse request
	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Handle command
	resp := s.handleCommand(req)

	// Send response
	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Warn("failed to marshal response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandListWindows:
		return s.handleListWindows()
	case CommandListWorkspaces:
		return s.handleListWorkspaces()
	case CommandSwitchWorkspace:
		return s.handleSwitchWorkspace(req.Payload)
	case CommandListBackgrounds:
		return s.handleListBackgrounds()
	case CommandSetBackground:
		return s.handleSetBackground(req.Payload)
	case CommandListApps:
		return s.handleListApps()
	case CommandLaunchApp:
		return s.handleLaunchApp(req.Payload)
	case CommandFocusWindow:
		return s.handleFocusWindow(req.Payload)
	case CommandSendInput:
		return s.handleSendInput(req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus() *Response {
	f := s.frames.Frame()
	status := StatusData{
		Running:       true,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Zoom:          s.model.Viewport().Zoom,
		Background:    s.backgrounds.CurrentBackground(),
	}
	if f != nil {
		status.FrameSeq = f.Seq
		status.WindowCount = len(f.Windows)
		status.ActiveWorkspace = f.Active
	}

	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleListWindows() *Response {
	data := WindowsData{Windows: []frame.WindowInfo{}}
	if f := s.frames.Frame(); f != nil {
		data.Windows = f.Windows
	}

	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) handleListWorkspaces() *Response {
	infos, active := s.model.Workspaces()
	data := WorkspacesData{Workspaces: infos, Active: active}

	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) handleSwitchWorkspace(payload json.RawMessage) *Response {
	var req SwitchWorkspacePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid switch payload: %v", err))
	}
	infos, _ := s.model.Workspaces()
	if req.Index < 0 || req.Index >= len(infos) {
		return NewErrorResponse(fmt.Sprintf("Workspace index %d out of range", req.Index))
	}

	if err := s.intents.SwitchWorkspace(req.Index); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to switch workspace: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleListBackgrounds() *Response {
	data := BackgroundsData{
		Backgrounds: s.backgrounds.Backgrounds(),
		Current:     s.backgrounds.CurrentBackground(),
	}

	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) handleSetBackground(payload json.RawMessage) *Response {
	var req SetBackgroundPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid background payload: %v", err))
	}
	if !s.backgrounds.SetBackground(req.Name) {
		return NewErrorResponse(fmt.Sprintf("Unknown background: %s", req.Name))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleListApps() *Response {
	resp, _ := NewOKResponse(apps.All())
	return resp
}

func (s *Server) handleLaunchApp(payload json.RawMessage) *Response {
	var req LaunchAppPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid launch payload: %v", err))
	}
	if req.AppID == "" {
		return NewErrorResponse("app_id is required")
	}
	if !apps.Known(req.AppID) {
		return NewErrorResponse(fmt.Sprintf("Unknown app: %s", req.AppID))
	}

	app := apps.Lookup(req.AppID)
	var err error
	if req.Focus || app.Singleton {
		err = s.intents.LaunchOrFocusApp(req.AppID)
	} else {
		err = s.intents.LaunchApp(req.AppID)
	}
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to launch app: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleFocusWindow(payload json.RawMessage) *Response {
	var req FocusWindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid focus payload: %v", err))
	}

	if err := s.intents.FocusWindow(req.WindowID); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to focus window: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleSendInput(payload json.RawMessage) *Response {
	var req SendInputPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid input payload: %v", err))
	}
	if req.Text == "" {
		return NewErrorResponse("text is required")
	}

	if err := s.intents.SendInput(req.Text); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to send input: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
