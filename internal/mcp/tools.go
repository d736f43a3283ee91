package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}

	return nil, GetStatusOutput{
		Running:         status.Running,
		UptimeSeconds:   status.UptimeSeconds,
		FrameSeq:        status.FrameSeq,
		WindowCount:     status.WindowCount,
		ActiveWorkspace: status.ActiveWorkspace,
		Zoom:            status.Zoom,
		Background:      status.Background,
	}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.client.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	out := ListWindowsOutput{Windows: make([]WindowSummary, 0, len(data.Windows))}
	for _, w := range data.Windows {
		if args.Workspace != nil && w.Workspace != *args.Workspace {
			continue
		}
		out.Windows = append(out.Windows, WindowSummary{
			ID:        w.ID,
			AppID:     w.AppID,
			State:     w.State.String(),
			ZOrder:    w.ZOrder,
			Workspace: w.Workspace,
			X:         w.Frame.X,
			Y:         w.Frame.Y,
			Width:     w.Frame.Width,
			Height:    w.Frame.Height,
		})
	}
	return nil, out, nil
}

func (s *Server) handleListWorkspaces(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWorkspacesInput) (*mcpsdk.CallToolResult, ListWorkspacesOutput, error) {
	data, err := s.client.ListWorkspaces()
	if err != nil {
		return nil, ListWorkspacesOutput{}, err
	}
	return nil, ListWorkspacesOutput{Workspaces: data.Workspaces, Active: data.Active}, nil
}

func (s *Server) handleSwitchWorkspace(_ context.Context, _ *mcpsdk.CallToolRequest, args SwitchWorkspaceInput) (*mcpsdk.CallToolResult, SwitchWorkspaceOutput, error) {
	if args.Index < 0 {
		return nil, SwitchWorkspaceOutput{}, fmt.Errorf("workspace index must not be negative, got %d", args.Index)
	}
	if err := s.client.SwitchWorkspace(args.Index); err != nil {
		return nil, SwitchWorkspaceOutput{}, err
	}
	return nil, SwitchWorkspaceOutput{Requested: true, Index: args.Index}, nil
}

func (s *Server) handleListBackgrounds(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListBackgroundsInput) (*mcpsdk.CallToolResult, ListBackgroundsOutput, error) {
	data, err := s.client.ListBackgrounds()
	if err != nil {
		return nil, ListBackgroundsOutput{}, err
	}
	return nil, ListBackgroundsOutput{Backgrounds: data.Backgrounds, Current: data.Current}, nil
}

func (s *Server) handleSetBackground(_ context.Context, _ *mcpsdk.CallToolRequest, args SetBackgroundInput) (*mcpsdk.CallToolResult, SetBackgroundOutput, error) {
	if args.Name == "" {
		return nil, SetBackgroundOutput{}, fmt.Errorf("name is required")
	}
	if err := s.client.SetBackground(args.Name); err != nil {
		return nil, SetBackgroundOutput{}, err
	}
	return nil, SetBackgroundOutput{Name: args.Name}, nil
}

func (s *Server) handleLaunchApp(_ context.Context, _ *mcpsdk.CallToolRequest, args LaunchAppInput) (*mcpsdk.CallToolResult, LaunchAppOutput, error) {
	if args.AppID == "" {
		return nil, LaunchAppOutput{}, fmt.Errorf("app_id is required")
	}
	if err := s.client.LaunchApp(args.AppID, args.Focus); err != nil {
		return nil, LaunchAppOutput{}, err
	}
	return nil, LaunchAppOutput{AppID: args.AppID, Requested: true}, nil
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args FocusWindowInput) (*mcpsdk.CallToolResult, FocusWindowOutput, error) {
	if err := s.client.FocusWindow(args.WindowID); err != nil {
		return nil, FocusWindowOutput{}, err
	}
	return nil, FocusWindowOutput{WindowID: args.WindowID, Requested: true}, nil
}

func (s *Server) handleSendInput(_ context.Context, _ *mcpsdk.CallToolRequest, args SendInputInput) (*mcpsdk.CallToolResult, SendInputOutput, error) {
	if args.Text == "" {
		return nil, SendInputOutput{}, fmt.Errorf("text is required")
	}
	if err := s.client.SendInput(args.Text); err != nil {
		return nil, SendInputOutput{}, err
	}
	return nil, SendInputOutput{Requested: true}, nil
}
