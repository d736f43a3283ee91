package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/glasspane/glasspane/internal/frame"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus       CommandType = "GET_STATUS"
	CommandListWindows     CommandType = "LIST_WINDOWS"
	CommandListWorkspaces  CommandType = "LIST_WORKSPACES"
	CommandSwitchWorkspace CommandType = "SWITCH_WORKSPACE"
	CommandListBackgrounds CommandType = "LIST_BACKGROUNDS"
	CommandSetBackground   CommandType = "SET_BACKGROUND"
	CommandListApps        CommandType = "LIST_APPS"
	CommandLaunchApp       CommandType = "LAUNCH_APP"
	CommandFocusWindow     CommandType = "FOCUS_WINDOW"
	CommandSendInput       CommandType = "SEND_INPUT"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Running         bool    `json:"running"`
	UptimeSeconds   int64   `json:"uptime_seconds"`
	FrameSeq        uint64  `json:"frame_seq"`
	WindowCount     int     `json:"window_count"`
	ActiveWorkspace int     `json:"active_workspace"`
	Zoom            float64 `json:"zoom"`
	Background      string  `json:"background"`
}

// WindowsData represents the data returned by LIST_WINDOWS
type WindowsData struct {
	Windows []frame.WindowInfo `json:"windows"`
}

// WorkspacesData represents the data returned by LIST_WORKSPACES
type WorkspacesData struct {
	Workspaces []frame.WorkspaceInfo `json:"workspaces"`
	Active     int                   `json:"active"`
}

// BackgroundsData represents the data returned by LIST_BACKGROUNDS
type BackgroundsData struct {
	Backgrounds []string `json:"backgrounds"`
	Current     string   `json:"current"`
}

// SwitchWorkspacePayload represents the payload for SWITCH_WORKSPACE
type SwitchWorkspacePayload struct {
	Index int `json:"index"`
}

// SetBackgroundPayload represents the payload for SET_BACKGROUND
type SetBackgroundPayload struct {
	Name string `json:"name"`
}

// LaunchAppPayload represents the payload for LAUNCH_APP
type LaunchAppPayload struct {
	AppID string `json:"app_id"`
	Focus bool   `json:"focus,omitempty"` // raise an existing instance instead of launching another
}

// FocusWindowPayload represents the payload for FOCUS_WINDOW
type FocusWindowPayload struct {
	WindowID uint64 `json:"window_id"`
}

// SendInputPayload represents the payload for SEND_INPUT
type SendInputPayload struct {
	Text string `json:"text"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
