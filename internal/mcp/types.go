package mcp

import (
	"github.com/glasspane/glasspane/internal/frame"
)

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	Running         bool    `json:"running"`
	UptimeSeconds   int64   `json:"uptime_seconds"`
	FrameSeq        uint64  `json:"frame_seq"`
	WindowCount     int     `json:"window_count"`
	ActiveWorkspace int     `json:"active_workspace"`
	Zoom            float64 `json:"zoom"`
	Background      string  `json:"background"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	Workspace *int `json:"workspace,omitempty" jsonschema:"Optional workspace index to filter by"`
}

// WindowSummary describes one window in tool output.
type WindowSummary struct {
	ID        uint64  `json:"id"`
	AppID     string  `json:"app_id"`
	State     string  `json:"state"`
	ZOrder    int     `json:"z_order"`
	Workspace int     `json:"workspace"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowSummary `json:"windows"`
}

// ListWorkspacesInput is the input for the list_workspaces tool.
type ListWorkspacesInput struct{}

// ListWorkspacesOutput is the output for the list_workspaces tool.
type ListWorkspacesOutput struct {
	Workspaces []frame.WorkspaceInfo `json:"workspaces"`
	Active     int                   `json:"active"`
}

// SwitchWorkspaceInput is the input for the switch_workspace tool.
type SwitchWorkspaceInput struct {
	Index int `json:"index" jsonschema:"required,Workspace index to activate"`
}

// SwitchWorkspaceOutput is the output for the switch_workspace tool.
type SwitchWorkspaceOutput struct {
	Requested bool `json:"requested"`
	Index     int  `json:"index"`
}

// ListBackgroundsInput is the input for the list_backgrounds tool.
type ListBackgroundsInput struct{}

// ListBackgroundsOutput is the output for the list_backgrounds tool.
type ListBackgroundsOutput struct {
	Backgrounds []string `json:"backgrounds"`
	Current     string   `json:"current"`
}

// SetBackgroundInput is the input for the set_background tool.
type SetBackgroundInput struct {
	Name string `json:"name" jsonschema:"required,Background identifier from list_backgrounds"`
}

// SetBackgroundOutput is the output for the set_background tool.
type SetBackgroundOutput struct {
	Name string `json:"name"`
}

// LaunchAppInput is the input for the launch_app tool.
type LaunchAppInput struct {
	AppID string `json:"app_id" jsonschema:"required,Application identifier (e.g. terminal, calculator)"`
	Focus bool   `json:"focus,omitempty" jsonschema:"When true, raise an existing instance instead of launching another"`
}

// LaunchAppOutput is the output for the launch_app tool.
type LaunchAppOutput struct {
	AppID     string `json:"app_id"`
	Requested bool   `json:"requested"`
}

// FocusWindowInput is the input for the focus_window tool.
type FocusWindowInput struct {
	WindowID uint64 `json:"window_id" jsonschema:"required,Window identifier from list_windows"`
}

// FocusWindowOutput is the output for the focus_window tool.
type FocusWindowOutput struct {
	WindowID  uint64 `json:"window_id"`
	Requested bool   `json:"requested"`
}

// SendInputInput is the input for the send_input tool.
type SendInputInput struct {
	Text string `json:"text" jsonschema:"required,Text input to forward to the supervisor"`
}

// SendInputOutput is the output for the send_input tool.
type SendInputOutput struct {
	Requested bool `json:"requested"`
}
