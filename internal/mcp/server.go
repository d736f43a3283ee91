// Package mcp exposes a running shell session to MCP clients. Every tool is
// a thin wrapper over the session's control socket; commands that change
// state are acknowledged as requested, not completed, matching the one-way
// command model.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/glasspane/glasspane/internal/ipc"
)

const (
	ServerName    = "glasspane"
	ServerVersion = "0.1.0"
)

// Server is the MCP server bridging tools to a shell session.
type Server struct {
	mcpServer *mcpsdk.Server
	client    *ipc.Client
}

// NewServer creates an MCP server talking to the given session client.
func NewServer(client *ipc.Client) *Server {
	s := &Server{client: client}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Get the status of the running shell session: frame sequence, window count, active workspace, zoom, and background.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the windows of the last composited frame with geometry, state, z-order, and workspace. Optionally filter by workspace index.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_workspaces",
		Description: "List configured workspaces with labels and which one is active.",
	}, s.handleListWorkspaces)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "switch_workspace",
		Description: "Request activating a workspace by index. The change is applied by the supervisor and shows up in a later frame; poll get_status to confirm.",
	}, s.handleSwitchWorkspace)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_backgrounds",
		Description: "List available renderer backgrounds and the current selection.",
	}, s.handleListBackgrounds)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_background",
		Description: "Select a renderer background by identifier. Applies immediately in the running session.",
	}, s.handleSetBackground)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "launch_app",
		Description: "Request launching an application by id. Singleton apps are raised instead of launched twice. The window appears in a later frame.",
	}, s.handleLaunchApp)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Request focusing a window by id from list_windows. Focus changes show up in a later frame.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "send_input",
		Description: "Forward out-of-band text input to the supervisor (e.g. shutdown).",
	}, s.handleSendInput)
}
